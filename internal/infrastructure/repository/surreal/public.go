package surreal

import (
	"context"
	"fmt"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

const publicTable = "public_jobfile"

// PublicCollection holds the published job-file projections. Records here
// are deliberately not tenant scoped: anyone holding a public ID may read
// the projection, and the projection itself was stripped of private fields
// before it reached this layer.
type PublicCollection struct {
	store *Store
}

// Publish inserts a projection and returns the generated public record ID.
// Empty status and notes are omitted so the stored record mirrors what the
// public view will render.
func (p *PublicCollection) Publish(ctx context.Context, projection domain.PublicJobFile) (string, error) {
	assignments := []string{"createdAt = time::now()", "jobTitle = $jobTitle"}
	vars := map[string]any{
		"tb":       publicTable,
		"jobTitle": projection.JobTitle,
	}
	if projection.Status != "" {
		assignments = append(assignments, "status = $status")
		vars["status"] = projection.Status
	}
	if projection.SharedNotes != "" {
		assignments = append(assignments, "sharedNotes = $sharedNotes")
		vars["sharedNotes"] = projection.SharedNotes
	}

	sql := fmt.Sprintf(
		"CREATE ONLY type::table($tb) SET %s RETURN *, record::id(id) AS id",
		strings.Join(assignments, ", "),
	)
	results, err := surrealdb.Query[domain.PublicJobFile](ctx, p.store.db, sql, vars)
	if err != nil {
		return "", domain.WrapError(domain.ErrRemoteService, "publish "+publicTable, err)
	}
	if results == nil || len(*results) == 0 {
		return "", domain.WrapError(domain.ErrRemoteService, "publish "+publicTable, fmt.Errorf("empty result"))
	}
	created := (*results)[len(*results)-1].Result
	return created.ID, nil
}

// Get fetches a published projection by its public ID.
func (p *PublicCollection) Get(ctx context.Context, publicID string) (*domain.PublicJobFile, error) {
	sql := "SELECT *, record::id(id) AS id FROM type::thing($tb, $id)"
	vars := map[string]any{"tb": publicTable, "id": publicID}

	results, err := surrealdb.Query[[]domain.PublicJobFile](ctx, p.store.db, sql, vars)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "get "+publicTable, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, fmt.Errorf("%s %s: %w", publicTable, publicID, domain.ErrNotFound)
	}
	rows := (*results)[len(*results)-1].Result
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", publicTable, publicID, domain.ErrNotFound)
	}
	return &rows[0], nil
}
