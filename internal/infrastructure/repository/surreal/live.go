package surreal

import (
	"context"
	"log/slog"
	"sync"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// Watch opens a live query on the collection's table and re-runs the scoped,
// ordered List on every change notification, pushing the full refreshed
// result set to the channel. The initial result set is delivered
// immediately. The live query watches the whole table; scoping happens at
// re-query time, so a change by another tenant costs a refresh but never
// leaks records.
//
// The returned CancelFunc kills the live query and stops the goroutine; it
// must be called on every exit path. The channel is closed once the
// subscription is torn down.
func (c *Collection[T]) Watch(ctx context.Context, userID string) (<-chan []T, ports.CancelFunc, error) {
	liveID, err := surrealdb.Live(ctx, c.store.db, models.Table(c.table), false)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrRemoteService, "live "+c.table, err)
	}

	notifications, err := c.store.db.LiveNotifications(liveID.String())
	if err != nil {
		c.kill(liveID.String())
		return nil, nil, domain.WrapError(domain.ErrRemoteService, "live notifications "+c.table, err)
	}

	initial, err := c.List(ctx, userID)
	if err != nil {
		c.kill(liveID.String())
		return nil, nil, err
	}

	out := make(chan []T, 1)
	out <- initial

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			c.kill(liveID.String())
		})
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				cancel()
				return
			case _, ok := <-notifications:
				if !ok {
					return
				}
				refreshed, err := c.List(ctx, userID)
				if err != nil {
					slog.Warn("live requery failed", "table", c.table, "error", err)
					continue
				}
				c.push(out, stop, refreshed)
			}
		}
	}()

	return out, cancel, nil
}

// push delivers the latest result set, displacing a stale undelivered one:
// consumers replace their view wholesale, so only the newest set matters.
func (c *Collection[T]) push(out chan []T, stop <-chan struct{}, records []T) {
	for {
		select {
		case <-stop:
			return
		case out <- records:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

func (c *Collection[T]) kill(liveID string) {
	if err := surrealdb.Kill(context.Background(), c.store.db, liveID); err != nil {
		slog.Warn("kill live query failed", "table", c.table, "error", err)
	}
}
