package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Table names one memoization table. Each reference kind gets its own
// so a topic titled "report.pdf" can't collide with a file upload.
type Table string

const (
	Transcripts Table = "transcripts"
	Documents   Table = "documents"
	Pages       Table = "pages"
	Topics      Table = "topics"
	Summaries   Table = "summaries"
)

var tables = []Table{Transcripts, Documents, Pages, Topics, Summaries}

// Store memoizes extraction results per table and key. Entries live
// for the process lifetime unless a TTL is configured; Reset is the
// only other way anything leaves the store. Misses run under
// singleflight so at most one extraction runs per key at a time.
type Store struct {
	ttl    time.Duration
	tables map[Table]*gocache.Cache
	flight singleflight.Group
}

// New builds a store. ttl <= 0 keeps entries forever, preserving the
// original no-eviction behavior; a positive ttl bounds growth for
// long-running deployments.
func New(ttl time.Duration) *Store {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}
	s := &Store{ttl: ttl, tables: make(map[Table]*gocache.Cache, len(tables))}
	for _, t := range tables {
		s.tables[t] = gocache.New(expiration, cleanup)
	}
	return s
}

// GetOrCompute returns the cached text for key, computing and storing
// it on a miss. Failed computations are not cached, so a transient
// extraction error doesn't poison the key.
func (s *Store) GetOrCompute(ctx context.Context, table Table, key string, compute func(ctx context.Context) (string, error)) (string, error) {
	tbl := s.tables[table]
	if v, ok := tbl.Get(key); ok {
		return v.(string), nil
	}
	v, err, _ := s.flight.Do(string(table)+"\x00"+key, func() (interface{}, error) {
		if v, ok := tbl.Get(key); ok {
			return v.(string), nil
		}
		text, err := compute(ctx)
		if err != nil {
			return "", err
		}
		tbl.SetDefault(key, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of live entries in a table.
func (s *Store) Len(table Table) int {
	return s.tables[table].ItemCount()
}

// Reset empties every table. Idempotent.
func (s *Store) Reset() {
	for _, t := range tables {
		s.tables[t].Flush()
	}
}
