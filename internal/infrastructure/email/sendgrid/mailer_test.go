package sendgrid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func validEmail() domain.ShareEmail {
	return domain.ShareEmail{
		To:      "coordinator@agency.com",
		From:    "noreply@ten99.app",
		Subject: "A job file has been shared with you: Keynote interpreting",
		Link:    "https://ten99.app/shared/job-file/pub-1",
	}
}

func TestSendShareEmailDelivers(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := New(server.URL, "sg-key")
	if err := mailer.SendShareEmail(context.Background(), validEmail()); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "Bearer sg-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["subject"] != "A job file has been shared with you: Keynote interpreting" {
		t.Fatalf("unexpected subject %v", gotBody["subject"])
	}
	content, _ := json.Marshal(gotBody["content"])
	if !strings.Contains(string(content), "https://ten99.app/shared/job-file/pub-1") {
		t.Fatalf("expected link verbatim in body, got %s", content)
	}
}

func TestSendShareEmailFailsWithoutAPIKey(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := New(server.URL, "")
	err := mailer.SendShareEmail(context.Background(), validEmail())
	if !errors.Is(err, domain.ErrRemoteService) {
		t.Fatalf("expected config error, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("missing key must fail before any network call")
	}
}

func TestSendShareEmailValidatesMessage(t *testing.T) {
	mailer := New("http://127.0.0.1:1", "sg-key")

	msg := validEmail()
	msg.Link = ""
	err := mailer.SendShareEmail(context.Background(), msg)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendShareEmailSurfacesUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad request"}]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	mailer := New(server.URL, "sg-key")
	err := mailer.SendShareEmail(context.Background(), validEmail())
	if !errors.Is(err, domain.ErrRemoteService) {
		t.Fatalf("expected remote-service error, got %v", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected upstream status in error, got %v", err)
	}
}
