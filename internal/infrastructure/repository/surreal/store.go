// Package surreal implements the tenant-scoped entity store on SurrealDB.
//
// Records live in per-entity tables scoped by a userId field; every query and
// mutation carries the caller's userId so no cross-tenant read or write is
// possible. The one exception is the public_jobfile table, which has no
// tenant scoping on purpose: access is "anyone with the ID".
//
// The connection uses the surrealcbor codec so time.Time and record IDs
// survive the round trip intact. Record IDs are projected to plain strings
// with record::id(id) at query time, which keeps the domain types free of
// driver-specific ID wrappers.
package surreal

import (
	"context"
	"fmt"
	"net/url"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Store owns the SurrealDB connection and hands out typed collections.
// Open it once at process start and Close it at shutdown; it is not a
// module-level singleton.
type Store struct {
	db *surrealdb.DB
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse surrealdb url: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}

	if cfg.Username != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			return nil, fmt.Errorf("surrealdb signin: %w", err)
		}
	}
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("surrealdb use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}

// Orderings are part of the read contract: clients and job files newest
// first, contacts and certifications by name, appointments by date
// descending, proposals newest first.

func (s *Store) Clients() *Collection[domain.Client] {
	return newCollection[domain.Client](s, "client", "createdAt DESC")
}

func (s *Store) Contacts() *Collection[domain.Contact] {
	return newCollection[domain.Contact](s, "contact", "name ASC")
}

func (s *Store) JobFiles() *Collection[domain.JobFile] {
	return newCollection[domain.JobFile](s, "jobfile", "createdAt DESC")
}

func (s *Store) Appointments() *Collection[domain.Appointment] {
	return newCollection[domain.Appointment](s, "appointment", "date DESC")
}

func (s *Store) Certifications() *Collection[domain.Certification] {
	return newCollection[domain.Certification](s, "certification", "name ASC")
}

func (s *Store) Proposals() *Collection[domain.Proposal] {
	return newCollection[domain.Proposal](s, "proposal", "createdAt DESC")
}

func (s *Store) PublicJobFiles() *PublicCollection {
	return &PublicCollection{store: s}
}
