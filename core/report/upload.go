package report

import (
	"context"
	"path"
	"sync"

	"db-compare/core/storage"
)

// Uploader copies report files to an object storage bucket.
type Uploader struct {
	client storage.Client
	bucket string
	region string
	prefix string

	once      sync.Once
	bucketErr error
}

// NewUploader creates an uploader for bucket. Objects are stored below prefix.
func NewUploader(client storage.Client, bucket, region, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, region: region, prefix: prefix}
}

// ObjectName returns the key a file of folder is stored under.
func (u *Uploader) ObjectName(folder, file string) string {
	return path.Join(u.prefix, folder, file)
}

// Upload stores one file. The bucket is created on first use.
func (u *Uploader) Upload(ctx context.Context, folder, file string, data []byte, contentType string) error {
	u.once.Do(func() {
		u.bucketErr = storage.EnsureBucket(ctx, u.client, u.bucket, u.region)
	})
	if u.bucketErr != nil {
		return u.bucketErr
	}
	return storage.Upload(ctx, u.client, u.bucket, u.ObjectName(folder, file), data, contentType)
}
