// Package httpadapter exposes the business operations over a JSON HTTP API.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
	"github.com/LoriCiv/ten99/internal/core/usecase"
	"github.com/LoriCiv/ten99/internal/observability/metrics"
)

type Router struct {
	clients        *usecase.EntityUseCase[domain.Client, domain.ClientDraft]
	contacts       *usecase.EntityUseCase[domain.Contact, domain.ContactDraft]
	jobFiles       *usecase.EntityUseCase[domain.JobFile, domain.JobFileDraft]
	appointments   *usecase.EntityUseCase[domain.Appointment, domain.AppointmentDraft]
	certifications *usecase.EntityUseCase[domain.Certification, domain.CertificationDraft]

	share    *usecase.ShareJobFileUseCase
	prefill  *usecase.ParseAppointmentUseCase
	inbox    *usecase.InboxUseCase
	calendar *usecase.CalendarExportUseCase

	public   ports.PublicJobFiles
	sessions ports.SessionStore

	authSecret []byte
	sessionTTL time.Duration

	metrics *metrics.HTTPServerMetrics
	service string
}

type RouterConfig struct {
	Clients        *usecase.EntityUseCase[domain.Client, domain.ClientDraft]
	Contacts       *usecase.EntityUseCase[domain.Contact, domain.ContactDraft]
	JobFiles       *usecase.EntityUseCase[domain.JobFile, domain.JobFileDraft]
	Appointments   *usecase.EntityUseCase[domain.Appointment, domain.AppointmentDraft]
	Certifications *usecase.EntityUseCase[domain.Certification, domain.CertificationDraft]

	Share    *usecase.ShareJobFileUseCase
	Prefill  *usecase.ParseAppointmentUseCase
	Inbox    *usecase.InboxUseCase
	Calendar *usecase.CalendarExportUseCase

	Public   ports.PublicJobFiles
	Sessions ports.SessionStore

	AuthSecret []byte
	SessionTTL time.Duration

	Metrics *metrics.HTTPServerMetrics
	Service string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.Service == "" {
		cfg.Service = "api"
	}
	return &Router{
		clients:        cfg.Clients,
		contacts:       cfg.Contacts,
		jobFiles:       cfg.JobFiles,
		appointments:   cfg.Appointments,
		certifications: cfg.Certifications,
		share:          cfg.Share,
		prefill:        cfg.Prefill,
		inbox:          cfg.Inbox,
		calendar:       cfg.Calendar,
		public:         cfg.Public,
		sessions:       cfg.Sessions,
		authSecret:     cfg.AuthSecret,
		sessionTTL:     cfg.SessionTTL,
		metrics:        cfg.Metrics,
		service:        cfg.Service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("POST /v1/auth/session", rt.createSession)
	mux.HandleFunc("GET /v1/public/job-files/{id}", rt.viewPublicJobFile)

	protected := http.NewServeMux()
	registerEntityRoutes(protected, rt, "clients", rt.clients)
	registerEntityRoutes(protected, rt, "contacts", rt.contacts)
	registerEntityRoutes(protected, rt, "job-files", rt.jobFiles)
	registerEntityRoutes(protected, rt, "appointments", rt.appointments)
	registerEntityRoutes(protected, rt, "certifications", rt.certifications)

	protected.HandleFunc("DELETE /v1/auth/session", rt.deleteSession)

	protected.HandleFunc("POST /v1/job-files/{id}/share", rt.createShareLink)
	protected.HandleFunc("POST /v1/job-files/{id}/share-email", rt.emailShareLink)
	protected.HandleFunc("POST /v1/share/email", rt.sendShareEmail)
	protected.HandleFunc("POST /v1/share/notify", rt.shareNotify)

	protected.HandleFunc("POST /v1/appointments/parse", rt.parseAppointment)
	protected.HandleFunc("GET /v1/appointments/calendar.ics", rt.exportCalendar)

	protected.HandleFunc("GET /v1/inbox", rt.listInbox)
	protected.HandleFunc("POST /v1/inbox/{id}/accept", rt.acceptProposal)
	protected.HandleFunc("POST /v1/inbox/{id}/decline", rt.declineProposal)

	mux.Handle("/v1/", rt.authMiddleware(protected))

	handler := http.Handler(mux)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return withRequestID(withAccessLog(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) viewPublicJobFile(w http.ResponseWriter, r *http.Request) {
	file, err := usecase.ViewPublic(r.Context(), rt.public, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
