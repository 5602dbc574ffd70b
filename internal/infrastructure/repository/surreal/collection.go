package surreal

import (
	"context"
	"fmt"
	"sort"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

// Collection is the tenant-scoped repository for one entity table.
type Collection[T any] struct {
	store   *Store
	table   string
	orderBy string
}

func newCollection[T any](store *Store, table, orderBy string) *Collection[T] {
	return &Collection[T]{store: store, table: table, orderBy: orderBy}
}

// Create inserts a record owned by userID. createdAt is stamped from the
// database clock, never the caller's, so ordering stays consistent across
// clients with skewed local time. Field names come from the domain drafts,
// never from callers; values are always bound parameters.
func (c *Collection[T]) Create(ctx context.Context, userID string, fields domain.Fields) (*T, error) {
	sets := []string{"userId = $userId", "createdAt = time::now()"}
	vars := map[string]any{
		"tb":     c.table,
		"userId": userID,
	}
	for _, key := range sortedKeys(fields) {
		sets = append(sets, fmt.Sprintf("%s = $f_%s", key, key))
		vars["f_"+key] = fields[key]
	}

	query := fmt.Sprintf(
		"CREATE ONLY type::table($tb) SET %s RETURN *, record::id(id) AS id",
		strings.Join(sets, ", "),
	)
	results, err := surrealdb.Query[T](ctx, c.store.db, query, vars)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "create "+c.table, err)
	}
	if len(*results) == 0 {
		return nil, domain.WrapError(domain.ErrRemoteService, "create "+c.table, fmt.Errorf("empty result"))
	}
	record := (*results)[len(*results)-1].Result
	return &record, nil
}

// Update merges the normalized field map into the record if and only if it
// belongs to userID. The merge never carries id, userId, or createdAt.
func (c *Collection[T]) Update(ctx context.Context, userID, id string, fields domain.Fields) (*T, error) {
	const query = `UPDATE type::thing($tb, $id) MERGE $patch WHERE userId = $userId RETURN *, record::id(id) AS id`
	results, err := surrealdb.Query[[]T](ctx, c.store.db, query, map[string]any{
		"tb":     c.table,
		"id":     id,
		"userId": userID,
		"patch":  map[string]any(fields),
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "update "+c.table, err)
	}
	return c.single(results, id)
}

func (c *Collection[T]) Get(ctx context.Context, userID, id string) (*T, error) {
	const query = `SELECT *, record::id(id) AS id FROM type::thing($tb, $id) WHERE userId = $userId`
	results, err := surrealdb.Query[[]T](ctx, c.store.db, query, map[string]any{
		"tb":     c.table,
		"id":     id,
		"userId": userID,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "get "+c.table, err)
	}
	return c.single(results, id)
}

func (c *Collection[T]) List(ctx context.Context, userID string) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT *, record::id(id) AS id FROM type::table($tb) WHERE userId = $userId ORDER BY %s",
		c.orderBy,
	)
	results, err := surrealdb.Query[[]T](ctx, c.store.db, query, map[string]any{
		"tb":     c.table,
		"userId": userID,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "list "+c.table, err)
	}
	if len(*results) == 0 {
		return []T{}, nil
	}
	records := (*results)[len(*results)-1].Result
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Delete removes the record when it belongs to userID. Deleting an absent or
// foreign record is a no-op: weak references elsewhere may already dangle,
// and deletes never cascade.
func (c *Collection[T]) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE type::thing($tb, $id) WHERE userId = $userId`
	_, err := surrealdb.Query[any](ctx, c.store.db, query, map[string]any{
		"tb":     c.table,
		"id":     id,
		"userId": userID,
	})
	if err != nil {
		return domain.WrapError(domain.ErrRemoteService, "delete "+c.table, err)
	}
	return nil
}

func (c *Collection[T]) single(results *[]surrealdb.QueryResult[[]T], id string) (*T, error) {
	if results == nil || len(*results) == 0 {
		return nil, fmt.Errorf("%s %s: %w", c.table, id, domain.ErrNotFound)
	}
	records := (*results)[len(*results)-1].Result
	if len(records) == 0 {
		return nil, fmt.Errorf("%s %s: %w", c.table, id, domain.ErrNotFound)
	}
	return &records[0], nil
}

func sortedKeys(fields domain.Fields) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
