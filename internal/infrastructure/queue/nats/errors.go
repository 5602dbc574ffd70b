package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/infrastructure/resilience"
)

func recordNATSFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

func wrapRemote(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrRemoteService) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if resilience.IsCircuitOpen(err) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrDisconnected) {
		return domain.WrapError(domain.ErrRemoteService, "nats publish", err)
	}
	return err
}
