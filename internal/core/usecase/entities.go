package usecase

import (
	"context"
	"strings"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// Draft is any per-entity optional-field record that can be validated and
// normalized into a persistable field map. Validate enforces the full
// create-time contract; ValidatePatch checks only the fields the draft
// carries, for partial updates.
type Draft interface {
	Validate() error
	ValidatePatch() error
	Fields() domain.Fields
}

// EntityUseCase implements the uniform save/read contract for one private
// collection: validate and normalize on create, format-check present fields
// on update (dropped empty fields keep partial updates from blanking stored
// values), tenant-scoped reads, and live Watch subscriptions.
type EntityUseCase[T any, D Draft] struct {
	repo     ports.Collection[T]
	defaults func(domain.Fields)
}

// NewEntityUseCase builds a use case for one collection. defaults, if not
// nil, fills create-time defaults (such as an initial status) into the
// normalized field map before the insert.
func NewEntityUseCase[T any, D Draft](repo ports.Collection[T], defaults func(domain.Fields)) *EntityUseCase[T, D] {
	return &EntityUseCase[T, D]{repo: repo, defaults: defaults}
}

// DefaultStatus returns a defaults func that sets key to value when the draft
// did not carry one.
func DefaultStatus(key, value string) func(domain.Fields) {
	return func(f domain.Fields) {
		if _, ok := f[key]; !ok {
			f[key] = value
		}
	}
}

func (uc *EntityUseCase[T, D]) Create(ctx context.Context, userID string, draft D) (*T, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrAuthentication, "create", domain.ErrAuthentication)
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	fields := draft.Fields()
	if uc.defaults != nil {
		uc.defaults(fields)
	}
	return uc.repo.Create(ctx, userID, fields)
}

func (uc *EntityUseCase[T, D]) Update(ctx context.Context, userID, id string, draft D) (*T, error) {
	if err := draft.ValidatePatch(); err != nil {
		return nil, err
	}
	fields := draft.Fields()
	if len(fields) == 0 {
		return nil, domain.Validationf("update carries no non-empty fields")
	}
	return uc.repo.Update(ctx, userID, id, fields)
}

func (uc *EntityUseCase[T, D]) Get(ctx context.Context, userID, id string) (*T, error) {
	return uc.repo.Get(ctx, userID, id)
}

func (uc *EntityUseCase[T, D]) List(ctx context.Context, userID string) ([]T, error) {
	return uc.repo.List(ctx, userID)
}

func (uc *EntityUseCase[T, D]) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}

func (uc *EntityUseCase[T, D]) Watch(ctx context.Context, userID string) (<-chan []T, ports.CancelFunc, error) {
	return uc.repo.Watch(ctx, userID)
}
