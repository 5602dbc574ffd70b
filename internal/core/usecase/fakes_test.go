package usecase

import (
	"context"
	"fmt"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// collectionFake is a configurable in-test stand-in for one collection.
// Unset hooks fall back to a not-implemented error so a test only wires what
// it exercises.
type collectionFake[T any] struct {
	createFn func(ctx context.Context, userID string, fields domain.Fields) (*T, error)
	updateFn func(ctx context.Context, userID, id string, fields domain.Fields) (*T, error)
	getFn    func(ctx context.Context, userID, id string) (*T, error)
	listFn   func(ctx context.Context, userID string) ([]T, error)
	deleteFn func(ctx context.Context, userID, id string) error
	watchFn  func(ctx context.Context, userID string) (<-chan []T, ports.CancelFunc, error)
}

func (f *collectionFake[T]) Create(ctx context.Context, userID string, fields domain.Fields) (*T, error) {
	if f.createFn == nil {
		return nil, fmt.Errorf("create not wired")
	}
	return f.createFn(ctx, userID, fields)
}

func (f *collectionFake[T]) Update(ctx context.Context, userID, id string, fields domain.Fields) (*T, error) {
	if f.updateFn == nil {
		return nil, fmt.Errorf("update not wired")
	}
	return f.updateFn(ctx, userID, id, fields)
}

func (f *collectionFake[T]) Get(ctx context.Context, userID, id string) (*T, error) {
	if f.getFn == nil {
		return nil, fmt.Errorf("get not wired")
	}
	return f.getFn(ctx, userID, id)
}

func (f *collectionFake[T]) List(ctx context.Context, userID string) ([]T, error) {
	if f.listFn == nil {
		return nil, fmt.Errorf("list not wired")
	}
	return f.listFn(ctx, userID)
}

func (f *collectionFake[T]) Delete(ctx context.Context, userID, id string) error {
	if f.deleteFn == nil {
		return fmt.Errorf("delete not wired")
	}
	return f.deleteFn(ctx, userID, id)
}

func (f *collectionFake[T]) Watch(ctx context.Context, userID string) (<-chan []T, ports.CancelFunc, error) {
	if f.watchFn == nil {
		return nil, nil, fmt.Errorf("watch not wired")
	}
	return f.watchFn(ctx, userID)
}

type publicFake struct {
	published  []domain.PublicJobFile
	publishID  string
	publishErr error
	getFn      func(ctx context.Context, publicID string) (*domain.PublicJobFile, error)
}

func (f *publicFake) Publish(_ context.Context, projection domain.PublicJobFile) (string, error) {
	if f.publishErr != nil {
		return "", f.publishErr
	}
	f.published = append(f.published, projection)
	return f.publishID, nil
}

func (f *publicFake) Get(ctx context.Context, publicID string) (*domain.PublicJobFile, error) {
	if f.getFn == nil {
		return nil, fmt.Errorf("get not wired")
	}
	return f.getFn(ctx, publicID)
}

type mailerFake struct {
	sent []domain.ShareEmail
	err  error
}

func (f *mailerFake) SendShareEmail(_ context.Context, msg domain.ShareEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type parserFake struct {
	prefill *domain.AppointmentPrefill
	err     error

	gotText     string
	gotClients  []domain.RosterEntry
	gotContacts []domain.RosterEntry
	gotYear     int
}

func (f *parserFake) Parse(_ context.Context, text string, clients, contacts []domain.RosterEntry, year int) (*domain.AppointmentPrefill, error) {
	f.gotText = text
	f.gotClients = clients
	f.gotContacts = contacts
	f.gotYear = year
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.prefill
	return &copied, nil
}
