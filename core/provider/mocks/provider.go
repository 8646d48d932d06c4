package mocks

import (
	"context"

	"db-compare/core/record"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of provider.Provider
type Provider struct {
	mock.Mock
}

func (m *Provider) GetRecords(ctx context.Context, fields []string) ([]record.Record, error) {
	args := m.Called(ctx, fields)
	if recs, ok := args.Get(0).([]record.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Static returns a mock that serves the given records for any field list.
func Static(records ...record.Record) *Provider {
	m := new(Provider)
	m.On("GetRecords", mock.Anything, mock.Anything).Return(records, nil)
	m.On("Close").Return(nil)
	return m
}
