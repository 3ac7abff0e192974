package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/unidirectory-go/universities"
)

type memStore struct {
	mu        sync.Mutex
	rows      []universities.University
	batches   int
	truncated bool
	failAfter int
}

func (m *memStore) InsertBatch(_ context.Context, items []universities.University) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAfter > 0 && m.batches >= m.failAfter {
		return 0, errors.New("disk full")
	}
	m.batches++
	m.rows = append(m.rows, items...)
	return int64(len(items)), nil
}

func (m *memStore) Truncate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.truncated = true
	m.rows = nil
	return nil
}

const sample = `[
  {"name": "Harvard University", "country": "United States", "state-province": "Massachusetts",
   "web_pages": ["http://www.harvard.edu/", "http://harvard.edu/"], "domains": ["harvard.edu"]},
  {"name": "University of Toronto", "country": "Canada", "state-province": null,
   "web_pages": ["http://www.utoronto.ca/"]},
  {"name": "Single Page College", "country": "Canada", "state-province": "",
   "web_pages": "http://single.example/"},
  {"name": "", "country": "Nowhere", "web_pages": ["http://x"]},
  {"country": "Nowhere", "web_pages": ["http://y"]},
  {"name": "No Pages", "country": "Nowhere", "web_pages": []}
]`

func TestRunImportsValidRecords(t *testing.T) {
	store := &memStore{}
	im, err := New(store, Options{Workers: 2, BatchSize: 2})
	require.NoError(t, err)

	res, err := im.Run(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, Result{Read: 6, Skipped: 3, Inserted: 3}, res)

	byName := map[string]universities.University{}
	for _, u := range store.rows {
		byName[u.Name] = u
	}
	require.Len(t, byName, 3)

	harvard := byName["Harvard University"]
	assert.Equal(t, "http://www.harvard.edu/", harvard.Website)
	require.NotNil(t, harvard.StateProvince)
	assert.Equal(t, "Massachusetts", *harvard.StateProvince)

	assert.Nil(t, byName["University of Toronto"].StateProvince)
	assert.Nil(t, byName["Single Page College"].StateProvince)
	assert.Equal(t, "http://single.example/", byName["Single Page College"].Website)
}

func TestRunBatchesAcrossWorkers(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 1050; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name":"U%04d","country":"C","web_pages":["http://u%d"]}`, i, i)
	}
	b.WriteString("]")

	store := &memStore{}
	im, err := New(store, Options{Workers: 4, BatchSize: 100})
	require.NoError(t, err)

	res, err := im.Run(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(1050), res.Inserted)
	assert.Equal(t, 11, store.batches)

	names := make([]string, 0, len(store.rows))
	for _, u := range store.rows {
		names = append(names, u.Name)
	}
	sort.Strings(names)
	assert.Equal(t, "U0000", names[0])
	assert.Equal(t, "U1049", names[len(names)-1])
}

func TestRunReplaceTruncatesFirst(t *testing.T) {
	store := &memStore{rows: []universities.University{{Name: "stale"}}}
	im, err := New(store, Options{Replace: true})
	require.NoError(t, err)

	_, err = im.Run(context.Background(), strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.True(t, store.truncated)
	assert.Empty(t, store.rows)
}

func TestRunRejectsNonArray(t *testing.T) {
	im, err := New(&memStore{}, Options{})
	require.NoError(t, err)

	_, err = im.Run(context.Background(), strings.NewReader(`{"name":"x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestRunStopsOnStoreFailure(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 50; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name":"U%d","country":"C","web_pages":["http://u"]}`, i)
	}
	b.WriteString("]")

	im, err := New(&memStore{failAfter: 1}, Options{Workers: 1, BatchSize: 10})
	require.NoError(t, err)

	res, err := im.Run(context.Background(), strings.NewReader(b.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(10), res.Inserted)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im, err := New(&memStore{}, Options{Workers: 1, BatchSize: 1})
	require.NoError(t, err)

	_, err = im.Run(ctx, strings.NewReader(sample))
	assert.ErrorIs(t, err, context.Canceled)
}
