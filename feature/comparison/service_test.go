package comparison

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"db-compare/core/compare"
	"db-compare/core/config"
	"db-compare/core/provider"
	"db-compare/core/provider/mocks"
	"db-compare/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC) }

func person(id int, name string) record.Record {
	return record.New(record.Pair("id", id), record.Pair("name", name))
}

func descriptor(name, sourceConn, targetConn string) config.Comparison {
	return config.Comparison{
		Name:                           name,
		SummaryFilename:                name + "_summary.txt",
		DifferencesFilename:            name + "_differences.json",
		SourceOnlyFilename:             name + "_source_only.json",
		TargetOnlyFilename:             name + "_target_only.json",
		DifferencesMatchFieldsFilename: name + "_differences_match_fields.json",
		MatchFields:                    []string{"id"},
		CompareFields:                  []string{"name"},
		Source:                         provider.Settings{Type: "sqlite", ConnString: sourceConn, TableName: "people"},
		Target:                         provider.Settings{Type: "sqlite", ConnString: targetConn, TableName: "people"},
	}
}

// staticOpener serves canned providers keyed by connection string.
func staticOpener(providers map[string]provider.Provider) Opener {
	return func(ctx context.Context, settings provider.Settings) (provider.Provider, error) {
		p, ok := providers[settings.ConnString]
		if !ok {
			return nil, provider.NewError(provider.KindSQLite, "connect", errors.New("unknown database"))
		}
		return p, nil
	}
}

func newTestService(t *testing.T, comparisons []config.Comparison, open Opener) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(comparisons, compare.NewRunner(compare.WithWorkers(2)),
		WithOpener(open),
		WithOutputDir(dir),
		WithClock(fixedNow),
		WithLogger(zap.NewNop()),
	)
	return svc, dir
}

func TestService_RunOne(t *testing.T) {
	source := mocks.Static(person(1, "Ann"), person(2, "Bob"))
	target := mocks.Static(person(1, "Anne"), person(3, "Cid"))

	svc, dir := newTestService(t, []config.Comparison{descriptor("people", "src", "dst")},
		staticOpener(map[string]provider.Provider{"src": source, "dst": target}))

	res, err := svc.RunOne(context.Background(), "people")
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, filepath.Join(dir, "2024-05-01 0905 AM"), res.Folder)
	assert.Equal(t, 1, res.Summary.Differing)
	assert.Equal(t, 1, res.Summary.SourceOnly)
	assert.Equal(t, 1, res.Summary.TargetOnly)
	assert.Len(t, res.Files, 5)
	assert.FileExists(t, filepath.Join(res.Folder, "people_summary.txt"))

	last, ok := svc.Last("people")
	require.True(t, ok)
	assert.Equal(t, res.ID, last.ID)

	source.AssertCalled(t, "Close")
	target.AssertCalled(t, "Close")
}

func TestService_RunOne_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil, staticOpener(nil))

	_, err := svc.RunOne(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_RunOne_Shared(t *testing.T) {
	release := make(chan struct{})
	var loads atomic.Int32

	slow := new(mocks.Provider)
	slow.On("GetRecords", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			loads.Add(1)
			<-release
		}).
		Return([]record.Record{person(1, "Ann")}, nil)
	slow.On("Close").Return(nil)

	svc, _ := newTestService(t, []config.Comparison{descriptor("people", "src", "dst")},
		staticOpener(map[string]provider.Provider{"src": slow, "dst": mocks.Static(person(1, "Ann"))}))

	var wg sync.WaitGroup
	results := make([]*Result, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.RunOne(context.Background(), "people")
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	require.Eventually(t, func() bool { return loads.Load() == 1 }, time.Second, time.Millisecond)
	// Give the other callers time to join the in-flight run
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, results[0].ID, res.ID)
	}
}

func TestService_RunAll_Isolation(t *testing.T) {
	ok := descriptor("good", "src", "dst")
	broken := descriptor("broken", "src", "offline")
	invalid := descriptor("invalid", "src", "dst")
	invalid.MatchFields = nil

	svc, dir := newTestService(t, []config.Comparison{broken, invalid, ok},
		staticOpener(map[string]provider.Provider{
			"src": mocks.Static(person(1, "Ann")),
			"dst": mocks.Static(person(1, "Ann")),
		}))

	results, err := svc.RunAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "2 of 3 comparisons failed")
	assert.ErrorIs(t, err, provider.ErrProvider)
	assert.ErrorIs(t, err, compare.ErrConfiguration)

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Name)
	assert.Equal(t, 1, results[0].Summary.Identical)

	// Identical records produce only the summary file
	entries, err := os.ReadDir(filepath.Join(dir, "2024-05-01 0905 AM"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good_summary.txt", entries[0].Name())

	_, ran := svc.Last("broken")
	assert.False(t, ran)
}

func TestService_RunAll_Cancelled(t *testing.T) {
	svc, _ := newTestService(t, []config.Comparison{descriptor("people", "src", "dst")},
		staticOpener(map[string]provider.Provider{
			"src": mocks.Static(person(1, "Ann")),
			"dst": mocks.Static(person(1, "Ann")),
		}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := svc.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestService_ProviderFailure(t *testing.T) {
	failing := new(mocks.Provider)
	failing.On("GetRecords", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	failing.On("Close").Return(nil)

	svc, _ := newTestService(t, []config.Comparison{descriptor("people", "src", "dst")},
		staticOpener(map[string]provider.Provider{"src": failing, "dst": mocks.Static()}))

	_, err := svc.RunOne(context.Background(), "people")
	assert.ErrorIs(t, err, provider.ErrProvider)
	failing.AssertCalled(t, "Close")
}

func TestOpenProvider(t *testing.T) {
	t.Run("Unknown Kind", func(t *testing.T) {
		_, err := OpenProvider(context.Background(), provider.Settings{Type: "oracle", ConnString: "x"})
		assert.ErrorIs(t, err, compare.ErrConfiguration)
		assert.ErrorIs(t, err, provider.ErrUnsupportedKind)
	})

	t.Run("SQLite", func(t *testing.T) {
		p, err := OpenProvider(context.Background(), provider.Settings{Type: "sqlite", ConnString: ":memory:", TableName: "t"})
		require.NoError(t, err)
		assert.NoError(t, p.Close())
	})
}
