package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
	"github.com/LoriCiv/ten99/internal/core/usecase"
	"github.com/LoriCiv/ten99/internal/infrastructure/auth"
)

type clientRepoFake struct {
	records map[string]domain.Client
}

func (f *clientRepoFake) Create(_ context.Context, userID string, fields domain.Fields) (*domain.Client, error) {
	client := domain.Client{ID: "client-1", UserID: userID}
	if name, ok := fields["name"].(string); ok {
		client.Name = name
	}
	if f.records == nil {
		f.records = map[string]domain.Client{}
	}
	f.records[client.ID] = client
	return &client, nil
}

func (f *clientRepoFake) Update(_ context.Context, _, id string, fields domain.Fields) (*domain.Client, error) {
	client, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	if name, ok := fields["name"].(string); ok {
		client.Name = name
	}
	f.records[id] = client
	return &client, nil
}

func (f *clientRepoFake) Get(_ context.Context, _, id string) (*domain.Client, error) {
	client, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	return &client, nil
}

func (f *clientRepoFake) List(_ context.Context, _ string) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(f.records))
	for _, c := range f.records {
		out = append(out, c)
	}
	return out, nil
}

func (f *clientRepoFake) Delete(_ context.Context, _, id string) error {
	delete(f.records, id)
	return nil
}

func (f *clientRepoFake) Watch(context.Context, string) (<-chan []domain.Client, ports.CancelFunc, error) {
	ch := make(chan []domain.Client, 1)
	ch <- nil
	return ch, func() { close(ch) }, nil
}

type contactRepoFake struct {
	records map[string]domain.Contact
}

func (f *contactRepoFake) Create(_ context.Context, userID string, fields domain.Fields) (*domain.Contact, error) {
	if f.records == nil {
		f.records = map[string]domain.Contact{}
	}
	contact := domain.Contact{ID: fmt.Sprintf("contact-%d", len(f.records)+1), UserID: userID}
	if name, ok := fields["name"].(string); ok {
		contact.Name = name
	}
	if clientID, ok := fields["clientId"].(string); ok {
		contact.ClientID = clientID
	}
	f.records[contact.ID] = contact
	return &contact, nil
}

func (f *contactRepoFake) Update(_ context.Context, _, id string, fields domain.Fields) (*domain.Contact, error) {
	contact, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	if name, ok := fields["name"].(string); ok {
		contact.Name = name
	}
	f.records[id] = contact
	return &contact, nil
}

func (f *contactRepoFake) Get(_ context.Context, _, id string) (*domain.Contact, error) {
	contact, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return &contact, nil
}

func (f *contactRepoFake) List(_ context.Context, _ string) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(f.records))
	for _, c := range f.records {
		out = append(out, c)
	}
	return out, nil
}

func (f *contactRepoFake) Delete(_ context.Context, _, id string) error {
	delete(f.records, id)
	return nil
}

func (f *contactRepoFake) Watch(context.Context, string) (<-chan []domain.Contact, ports.CancelFunc, error) {
	ch := make(chan []domain.Contact, 1)
	ch <- nil
	return ch, func() { close(ch) }, nil
}

type sessionFake struct {
	sessions map[string]string
}

func (f *sessionFake) Create(_ context.Context, userID string, _ time.Duration) (string, error) {
	if f.sessions == nil {
		f.sessions = map[string]string{}
	}
	id := fmt.Sprintf("sess-%d", len(f.sessions)+1)
	f.sessions[id] = userID
	return id, nil
}

func (f *sessionFake) Lookup(_ context.Context, sessionID string) (string, error) {
	userID, ok := f.sessions[sessionID]
	if !ok {
		return "", domain.WrapError(domain.ErrAuthentication, "lookup session", errors.New("unknown session"))
	}
	return userID, nil
}

func (f *sessionFake) Revoke(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type publicRepoFake struct {
	files map[string]domain.PublicJobFile
}

func (f *publicRepoFake) Publish(_ context.Context, projection domain.PublicJobFile) (string, error) {
	if f.files == nil {
		f.files = map[string]domain.PublicJobFile{}
	}
	id := fmt.Sprintf("pub-%d", len(f.files)+1)
	projection.ID = id
	f.files[id] = projection
	return id, nil
}

func (f *publicRepoFake) Get(_ context.Context, publicID string) (*domain.PublicJobFile, error) {
	file, ok := f.files[publicID]
	if !ok {
		return nil, fmt.Errorf("public file %s: %w", publicID, domain.ErrNotFound)
	}
	return &file, nil
}

type jobFileRepoFake struct {
	file domain.JobFile
}

func (f *jobFileRepoFake) Create(context.Context, string, domain.Fields) (*domain.JobFile, error) {
	return &f.file, nil
}

func (f *jobFileRepoFake) Update(context.Context, string, string, domain.Fields) (*domain.JobFile, error) {
	return &f.file, nil
}

func (f *jobFileRepoFake) Get(_ context.Context, _, id string) (*domain.JobFile, error) {
	if id != f.file.ID {
		return nil, fmt.Errorf("job file %s: %w", id, domain.ErrNotFound)
	}
	return &f.file, nil
}

func (f *jobFileRepoFake) List(context.Context, string) ([]domain.JobFile, error) {
	return []domain.JobFile{f.file}, nil
}

func (f *jobFileRepoFake) Delete(context.Context, string, string) error { return nil }

func (f *jobFileRepoFake) Watch(context.Context, string) (<-chan []domain.JobFile, ports.CancelFunc, error) {
	ch := make(chan []domain.JobFile, 1)
	ch <- []domain.JobFile{f.file}
	return ch, func() { close(ch) }, nil
}

type routerMailerFake struct {
	err  error
	sent []domain.ShareEmail
}

func (f *routerMailerFake) SendShareEmail(_ context.Context, msg domain.ShareEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

var testSecret = []byte("router-test-secret")

func newTestRouter(mailer ports.Mailer) (*Router, *sessionFake, *publicRepoFake) {
	sessions := &sessionFake{}
	public := &publicRepoFake{}
	jobFiles := &jobFileRepoFake{file: domain.JobFile{
		ID:       "jobfile-1",
		UserID:   "user-1",
		JobTitle: "Keynote interpreting",
		Status:   domain.JobFileUpcoming,
		PrepMaterials: domain.PrepMaterials{
			PrivateNotes: "secret",
			SharedNotes:  "Arrive early",
		},
	}}
	if mailer == nil {
		mailer = &routerMailerFake{}
	}

	rt := NewRouter(RouterConfig{
		Clients:  usecase.NewEntityUseCase[domain.Client, domain.ClientDraft](&clientRepoFake{}, nil),
		Contacts: usecase.NewEntityUseCase[domain.Contact, domain.ContactDraft](&contactRepoFake{}, nil),
		JobFiles: usecase.NewEntityUseCase[domain.JobFile, domain.JobFileDraft](jobFiles, nil),
		Share: usecase.NewShareJobFileUseCase(
			jobFiles, public, mailer, "https://ten99.app/shared/job-file", "noreply@ten99.app"),
		Public:     public,
		Sessions:   sessions,
		AuthSecret: testSecret,
		SessionTTL: time.Hour,
	})
	return rt, sessions, public
}

func authedRequest(t *testing.T, sessions *sessionFake, method, target string, body any) *http.Request {
	t.Helper()
	sessionID, err := sessions.Create(context.Background(), "user-1", time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+sessionID)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	rt, _, _ := newTestRouter(nil)
	handler := rt.Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer, got %d", res.Code)
	}
}

func TestCreateSessionFromSignedToken(t *testing.T) {
	rt, _, _ := newTestRouter(nil)
	handler := rt.Handler()

	token, err := auth.IssueToken(testSecret, auth.Claims{
		Sub: "user-1",
		Exp: time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{"token": token})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/session", bytes.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(res.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["userId"] != "user-1" || got["sessionId"] == "" {
		t.Fatalf("unexpected session response %v", got)
	}
}

func TestCreateSessionRejectsBadSignature(t *testing.T) {
	rt, _, _ := newTestRouter(nil)
	handler := rt.Handler()

	token, _ := auth.IssueToken([]byte("some-other-secret"), auth.Claims{
		Sub: "user-1",
		Exp: time.Now().Add(time.Hour).Unix(),
	})
	payload, _ := json.Marshal(map[string]string{"token": token})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/session", bytes.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", res.Code)
	}
}

func TestCreateClientValidationMapsTo400(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodPost, "/v1/clients", map[string]string{"email": "a@b.c"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid draft, got %d: %s", res.Code, res.Body.String())
	}
}

func TestGetMissingClientMapsTo404(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodGet, "/v1/clients/nope", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing client, got %d", res.Code)
	}
}

func TestPublicJobFileViewNeedsNoAuth(t *testing.T) {
	rt, sessions, public := newTestRouter(nil)
	handler := rt.Handler()

	shareReq := authedRequest(t, sessions, http.MethodPost, "/v1/job-files/jobfile-1/share", nil)
	shareRes := httptest.NewRecorder()
	handler.ServeHTTP(shareRes, shareReq)
	if shareRes.Code != http.StatusCreated {
		t.Fatalf("share failed: %d %s", shareRes.Code, shareRes.Body.String())
	}
	if len(public.files) != 1 {
		t.Fatalf("expected one published file, got %d", len(public.files))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/public/job-files/pub-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for public view, got %d: %s", res.Code, res.Body.String())
	}
	body := res.Body.String()
	if !strings.Contains(body, "Keynote interpreting") {
		t.Fatalf("expected job title in public view, got %s", body)
	}
	if strings.Contains(body, "secret") || strings.Contains(body, "privateNotes") {
		t.Fatalf("public view leaked private data: %s", body)
	}
}

func TestSendShareEmailSuccess(t *testing.T) {
	mailer := &routerMailerFake{}
	rt, sessions, _ := newTestRouter(mailer)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodPost, "/v1/share/email", map[string]string{
		"to":      "coordinator@agency.com",
		"from":    "dana@ten99.app",
		"subject": "A job file has been shared with you: Keynote interpreting",
		"link":    "https://ten99.app/shared/job-file/pub-1",
	})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one delivered email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].From != "dana@ten99.app" {
		t.Fatalf("expected caller-supplied sender, got %q", mailer.sent[0].From)
	}
}

func TestSendShareEmailMissingFieldsMapTo400(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	complete := map[string]string{
		"to":      "coordinator@agency.com",
		"from":    "dana@ten99.app",
		"subject": "A job file has been shared with you: Keynote interpreting",
		"link":    "https://ten99.app/shared/job-file/pub-1",
	}
	for _, missing := range []string{"to", "from", "subject", "link"} {
		payload := map[string]string{}
		for k, v := range complete {
			if k != missing {
				payload[k] = v
			}
		}

		req := authedRequest(t, sessions, http.MethodPost, "/v1/share/email", payload)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without %s, got %d: %s", missing, res.Code, res.Body.String())
		}
	}
}

func TestSendShareEmailDeliveryFailureMapsTo500(t *testing.T) {
	mailer := &routerMailerFake{
		err: domain.WrapError(domain.ErrRemoteService, "send share email", errors.New("upstream down")),
	}
	rt, sessions, _ := newTestRouter(mailer)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodPost, "/v1/share/email", map[string]string{
		"to":      "coordinator@agency.com",
		"from":    "dana@ten99.app",
		"subject": "subject",
		"link":    "https://ten99.app/shared/job-file/pub-1",
	})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for delivery failure, got %d", res.Code)
	}
}

func TestShareNotifyReturnsConfirmation(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodPost, "/v1/share/notify", map[string]any{
		"recipientEmail": "coordinator@agency.com",
		"fileData":       map[string]string{"title": "Keynote interpreting"},
	})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "File has been successfully shared with coordinator@agency.com") {
		t.Fatalf("unexpected notify response %s", res.Body.String())
	}
}

func TestDeleteClientLeavesContactReferenceDangling(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	createClient := authedRequest(t, sessions, http.MethodPost, "/v1/clients", map[string]string{"name": "Dana Smith"})
	clientRes := httptest.NewRecorder()
	handler.ServeHTTP(clientRes, createClient)
	if clientRes.Code != http.StatusCreated {
		t.Fatalf("create client: %d %s", clientRes.Code, clientRes.Body.String())
	}

	createContact := authedRequest(t, sessions, http.MethodPost, "/v1/contacts", map[string]string{
		"name":     "Sam Ortiz",
		"clientId": "client-1",
	})
	contactRes := httptest.NewRecorder()
	handler.ServeHTTP(contactRes, createContact)
	if contactRes.Code != http.StatusCreated {
		t.Fatalf("create contact: %d %s", contactRes.Code, contactRes.Body.String())
	}

	deleteClient := authedRequest(t, sessions, http.MethodDelete, "/v1/clients/client-1", nil)
	deleteRes := httptest.NewRecorder()
	handler.ServeHTTP(deleteRes, deleteClient)
	if deleteRes.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting a referenced client, got %d", deleteRes.Code)
	}

	getContact := authedRequest(t, sessions, http.MethodGet, "/v1/contacts/contact-1", nil)
	getRes := httptest.NewRecorder()
	handler.ServeHTTP(getRes, getContact)
	if getRes.Code != http.StatusOK {
		t.Fatalf("contact must survive the client delete, got %d", getRes.Code)
	}
	var contact domain.Contact
	if err := json.Unmarshal(getRes.Body.Bytes(), &contact); err != nil {
		t.Fatalf("decode contact: %v", err)
	}
	if contact.ClientID != "client-1" {
		t.Fatalf("expected dangling clientId to remain, got %q", contact.ClientID)
	}

	getClient := authedRequest(t, sessions, http.MethodGet, "/v1/clients/client-1", nil)
	goneRes := httptest.NewRecorder()
	handler.ServeHTTP(goneRes, getClient)
	if goneRes.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for the deleted client, got %d", goneRes.Code)
	}
}

func TestDeleteSessionRevokes(t *testing.T) {
	rt, sessions, _ := newTestRouter(nil)
	handler := rt.Handler()

	req := authedRequest(t, sessions, http.MethodDelete, "/v1/auth/session", nil)
	sessionID := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if _, err := sessions.Lookup(context.Background(), sessionID); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected revoked session to fail lookup, got %v", err)
	}
}
