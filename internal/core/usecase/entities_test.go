package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func TestEntityCreateValidatesDraft(t *testing.T) {
	repo := &collectionFake[domain.Client]{}
	uc := NewEntityUseCase[domain.Client, domain.ClientDraft](repo, nil)

	_, err := uc.Create(context.Background(), "user-1", domain.ClientDraft{Email: "a@b.c"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error before any write, got %v", err)
	}
}

func TestEntityCreateAppliesDefaultStatus(t *testing.T) {
	var gotFields domain.Fields
	repo := &collectionFake[domain.JobFile]{
		createFn: func(_ context.Context, _ string, fields domain.Fields) (*domain.JobFile, error) {
			gotFields = fields
			return &domain.JobFile{ID: "jobfile-1", JobTitle: "Deposition"}, nil
		},
	}
	uc := NewEntityUseCase[domain.JobFile, domain.JobFileDraft](
		repo, DefaultStatus("status", string(domain.JobFilePending)))

	_, err := uc.Create(context.Background(), "user-1", domain.JobFileDraft{JobTitle: "Deposition"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotFields["status"] != string(domain.JobFilePending) {
		t.Fatalf("expected default status %q, got %v", domain.JobFilePending, gotFields["status"])
	}
}

func TestEntityCreateKeepsExplicitStatus(t *testing.T) {
	var gotFields domain.Fields
	repo := &collectionFake[domain.JobFile]{
		createFn: func(_ context.Context, _ string, fields domain.Fields) (*domain.JobFile, error) {
			gotFields = fields
			return &domain.JobFile{ID: "jobfile-1"}, nil
		},
	}
	uc := NewEntityUseCase[domain.JobFile, domain.JobFileDraft](
		repo, DefaultStatus("status", string(domain.JobFilePending)))

	_, err := uc.Create(context.Background(), "user-1", domain.JobFileDraft{
		JobTitle: "Deposition",
		Status:   domain.JobFileUpcoming,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotFields["status"] != string(domain.JobFileUpcoming) {
		t.Fatalf("explicit status must win, got %v", gotFields["status"])
	}
}

func TestEntityUpdateRejectsMalformedFields(t *testing.T) {
	updated := false
	repo := &collectionFake[domain.Appointment]{
		updateFn: func(context.Context, string, string, domain.Fields) (*domain.Appointment, error) {
			updated = true
			return &domain.Appointment{ID: "appt-1"}, nil
		},
	}
	uc := NewEntityUseCase[domain.Appointment, domain.AppointmentDraft](repo, nil)

	_, err := uc.Update(context.Background(), "user-1", "appt-1", domain.AppointmentDraft{
		Status: "tentative-bogus",
		Date:   "September 12th",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for malformed patch, got %v", err)
	}
	if updated {
		t.Fatal("malformed patch must not reach the store")
	}
}

func TestEntityCreateRequiresUser(t *testing.T) {
	uc := NewEntityUseCase[domain.Client, domain.ClientDraft](&collectionFake[domain.Client]{}, nil)
	_, err := uc.Create(context.Background(), "  ", domain.ClientDraft{Name: "Dana"})
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestEntityUpdateRejectsEmptyPatch(t *testing.T) {
	uc := NewEntityUseCase[domain.Client, domain.ClientDraft](&collectionFake[domain.Client]{}, nil)
	_, err := uc.Update(context.Background(), "user-1", "client-1", domain.ClientDraft{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}
}

func TestEntityUpdateAllowsAnyStatusOverwrite(t *testing.T) {
	var gotFields domain.Fields
	repo := &collectionFake[domain.Appointment]{
		updateFn: func(_ context.Context, _ string, _ string, fields domain.Fields) (*domain.Appointment, error) {
			gotFields = fields
			return &domain.Appointment{ID: "appt-1", Status: domain.AppointmentCanceled}, nil
		},
	}
	uc := NewEntityUseCase[domain.Appointment, domain.AppointmentDraft](repo, nil)

	// completed -> canceled is permitted: status overwrites are free-form.
	updated, err := uc.Update(context.Background(), "user-1", "appt-1", domain.AppointmentDraft{
		Status: domain.AppointmentCanceled,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotFields["status"] != string(domain.AppointmentCanceled) {
		t.Fatalf("expected status patch, got %v", gotFields)
	}
	if updated.Status != domain.AppointmentCanceled {
		t.Fatalf("expected canceled appointment back, got %q", updated.Status)
	}
}
