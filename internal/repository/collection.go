package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// Repository is a typed view over one collection key
type Repository[T models.Record] interface {
	All(ctx context.Context) ([]T, error)
	List(ctx context.Context, query *ListQuery) ([]T, int64, error)
	FindByID(ctx context.Context, id string) (*T, bool, error)
	Create(ctx context.Context, record T) error
	CreateUnless(ctx context.Context, record T, conflicts func(existing T) bool) (bool, error)
	Update(ctx context.Context, id string, apply func(*T)) (*T, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ReplaceAll(ctx context.Context, records []T) error
	Key() string
}

// MatchFunc decides whether a record passes the search and filters of a query
type MatchFunc[T models.Record] func(record T, query *ListQuery) bool

type collection[T models.Record] struct {
	store  kvstore.Store
	locker kvstore.Locker
	key    string
	match  MatchFunc[T]
}

// NewCollection creates a repository stored as a JSON array under key
func NewCollection[T models.Record](store kvstore.Store, locker kvstore.Locker, key string, match MatchFunc[T]) Repository[T] {
	return &collection[T]{store: store, locker: locker, key: key, match: match}
}

func (c *collection[T]) Key() string { return c.key }

// All returns every record in stored order. A document that fails to parse reads as empty.
func (c *collection[T]) All(ctx context.Context) ([]T, error) {
	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !found || len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Log.WarnContext(ctx, "stored collection is malformed, treating as empty",
			"collection", c.key, "error", err)
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *collection[T]) List(ctx context.Context, query *ListQuery) ([]T, int64, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, 0, err
	}
	if query == nil {
		query = NewListQuery()
	}

	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if c.match == nil || c.match(r, query) {
			filtered = append(filtered, r)
		}
	}

	if query.SortBy == "createdAt" || query.SortDir != "" {
		desc := query.SortDir == "desc"
		sort.SliceStable(filtered, func(i, j int) bool {
			a := models.ParseTimestamp(filtered[i].RecordCreatedAt())
			b := models.ParseTimestamp(filtered[j].RecordCreatedAt())
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	}

	page, total := Paginate(filtered, query)
	return page, total, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, bool, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range records {
		if records[i].RecordID() == id {
			return &records[i], true, nil
		}
	}
	return nil, false, nil
}

func (c *collection[T]) Create(ctx context.Context, record T) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		return append(records, record), nil
	})
}

// CreateUnless appends record unless an existing one conflicts with it. The check and
// the write happen under the same lock.
func (c *collection[T]) CreateUnless(ctx context.Context, record T, conflicts func(existing T) bool) (bool, error) {
	created := false
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		for _, r := range records {
			if conflicts(r) {
				return nil, nil
			}
		}
		created = true
		return append(records, record), nil
	})
	return created, err
}

// Update loads the record, lets apply merge the changes and writes the collection back
func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, bool, error) {
	var updated *T
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		for i := range records {
			if records[i].RecordID() == id {
				apply(&records[i])
				rec := records[i]
				updated = &rec
				return records, nil
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, updated != nil, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		kept := records[:0]
		for _, r := range records {
			if r.RecordID() == id {
				deleted = true
				continue
			}
			kept = append(kept, r)
		}
		if !deleted {
			return nil, nil
		}
		return kept, nil
	})
	return deleted, err
}

func (c *collection[T]) ReplaceAll(ctx context.Context, records []T) error {
	return c.mutate(ctx, func([]T) ([]T, error) {
		if records == nil {
			return []T{}, nil
		}
		return records, nil
	})
}

// mutate runs a locked read-modify-write. fn returning nil records skips the write.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	release, err := c.locker.Lock(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", c.key, err)
	}
	defer release()

	records, err := c.All(ctx)
	if err != nil {
		return err
	}

	next, err := fn(records)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}
