// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so comparison reports can be archived to AWS S3 or a
// self-hosted MinIO instance. The Client interface is small enough to mock in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
//	err = storage.Upload(ctx, client, config.Bucket, "reports/run/summary.txt", data, "text/plain")
package storage
