package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

const defaultBaseURL = "https://api.sendgrid.com"

type Mailer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Mailer {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Mailer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendShareEmail delivers a share-link notification. The message body is a
// fixed template; the link goes in verbatim. A missing API key fails before
// any network traffic.
func (m *Mailer) SendShareEmail(ctx context.Context, email domain.ShareEmail) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if m.apiKey == "" {
		return domain.WrapError(domain.ErrRemoteService, "send share email",
			fmt.Errorf("sendgrid api key is not configured"))
	}

	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": email.To}}},
		},
		"from":    map[string]string{"email": email.From},
		"subject": email.Subject,
		"content": []map[string]string{
			{"type": "text/html", "value": shareBody(email.Link)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(domain.ErrRemoteService, "send share email", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.WrapError(domain.ErrRemoteService, "send share email",
			fmt.Errorf("sendgrid status: %s: %s", resp.Status, strings.TrimSpace(string(raw))))
	}
	return nil
}

func shareBody(link string) string {
	return fmt.Sprintf(
		"<p>A job file has been shared with you.</p><p><a href=%q>View the job file</a></p><p>%s</p>",
		link, link,
	)
}
