package ports

import (
	"context"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

// CancelFunc releases a standing subscription. Safe to call more than once.
type CancelFunc func()

// Collection is the tenant-scoped store contract shared by every private
// entity. Field maps come from a draft's Fields() and never contain id,
// userId, or createdAt: the store assigns the id, scopes the record to the
// given user, and stamps createdAt from its own clock on create only.
//
// Watch returns a live sequence: the full re-queried, ordered result set is
// delivered on every underlying change, not a diff. Consumers replace their
// view wholesale. The CancelFunc must be called on every exit path; it stops
// notifications and releases the underlying live query.
type Collection[T any] interface {
	Create(ctx context.Context, userID string, fields domain.Fields) (*T, error)
	Update(ctx context.Context, userID, id string, fields domain.Fields) (*T, error)
	Get(ctx context.Context, userID, id string) (*T, error)
	List(ctx context.Context, userID string) ([]T, error)
	Delete(ctx context.Context, userID, id string) error
	Watch(ctx context.Context, userID string) (<-chan []T, CancelFunc, error)
}

// PublicJobFiles is the unscoped public collection. Access control is
// "anyone with the ID"; there is deliberately no tenant scoping and no
// revocation beyond deleting the record.
type PublicJobFiles interface {
	Publish(ctx context.Context, projection domain.PublicJobFile) (string, error)
	Get(ctx context.Context, publicID string) (*domain.PublicJobFile, error)
}

// Mailer delivers a share notification. Implementations surface delivery
// failures to the caller verbatim; nothing retries automatically.
type Mailer interface {
	SendShareEmail(ctx context.Context, msg domain.ShareEmail) error
}

// AppointmentParser turns free text into an untrusted appointment draft.
// The roster is embedded in the request so known clients and contacts can be
// referenced by ID; the caller still validates any returned IDs.
type AppointmentParser interface {
	Parse(ctx context.Context, text string, clients, contacts []domain.RosterEntry, year int) (*domain.AppointmentPrefill, error)
}

// ProposalQueue carries externally submitted appointment proposals.
type ProposalQueue interface {
	PublishProposal(ctx context.Context, draft domain.ProposalDraft) error
	SubscribeProposals(ctx context.Context, handler func(context.Context, domain.ProposalDraft) error) error
}

// SessionStore resolves opaque bearer sessions to user IDs.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// CalendarRenderer serializes a user's appointments into an iCalendar feed.
type CalendarRenderer interface {
	Render(appointments []domain.Appointment) ([]byte, error)
}
