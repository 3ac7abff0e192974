package universities

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/user/unidirectory-go/cache"
	"github.com/user/unidirectory-go/listquery"
)

// fakeRepo serves a fixed slice and records every call. Search calls it from two goroutines.
type fakeRepo struct {
	mu        sync.Mutex
	items     []University
	err       error
	counts    []listquery.Filter
	lists     []listquery.Query
	listDelay time.Duration
}

func (f *fakeRepo) matching(filter listquery.Filter) []University {
	var out []University
	for _, u := range f.items {
		ok := true
		for _, p := range filter.Predicates() {
			field := u.Name
			if p.Field == FieldCountry {
				field = u.Country
			}
			if !strings.Contains(strings.ToLower(field), strings.ToLower(p.Value)) {
				ok = false
			}
		}
		if ok {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeRepo) Count(_ context.Context, filter listquery.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = append(f.counts, filter)
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.matching(filter))), nil
}

func (f *fakeRepo) List(_ context.Context, q listquery.Query) ([]University, error) {
	time.Sleep(f.listDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, q)
	if f.err != nil {
		return nil, f.err
	}
	all := f.matching(q.Filter)
	start := min(q.Params.Skip(), len(all))
	end := min(start+q.Params.Take(), len(all))
	return all[start:end], nil
}

func seed(n int) []University {
	out := make([]University, 0, n)
	for i := 1; i <= n; i++ {
		country := "USA"
		if i%2 == 0 {
			country = "Canada"
		}
		out = append(out, University{ID: i, Name: "University " + string(rune('A'+i%26)), Country: country})
	}
	return out
}

// memCache is an in-memory JSONCache.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	gets    int
	setKeys []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.setKeys = append(m.setKeys, key)
	return nil
}
