package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/LoriCiv/ten99/internal/config"
	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
	"github.com/LoriCiv/ten99/internal/core/usecase"
	"github.com/LoriCiv/ten99/internal/infrastructure/calendar"
	"github.com/LoriCiv/ten99/internal/infrastructure/email/sendgrid"
	"github.com/LoriCiv/ten99/internal/infrastructure/llm/gemini"
	"github.com/LoriCiv/ten99/internal/infrastructure/queue/nats"
	"github.com/LoriCiv/ten99/internal/infrastructure/repository/surreal"
	"github.com/LoriCiv/ten99/internal/infrastructure/resilience"
	"github.com/LoriCiv/ten99/internal/infrastructure/session"
)

type App struct {
	Config config.Config

	Store *surreal.Store
	Queue *nats.Queue

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

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := surreal.Open(ctx, surreal.Config{
		URL:       cfg.SurrealURL,
		Namespace: cfg.SurrealNamespace,
		Database:  cfg.SurrealDatabase,
		Username:  cfg.SurrealUsername,
		Password:  cfg.SurrealPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("open surrealdb: %w", err)
	}

	sessions, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init proposal queue: %w", err)
	}

	mailer := sendgrid.New(cfg.SendGridURL, cfg.SendGridAPIKey)
	parser := gemini.New(cfg.GeminiURL, cfg.GeminiModel, cfg.GeminiAPIKey, executor)

	clients := usecase.NewEntityUseCase[domain.Client, domain.ClientDraft](
		store.Clients(), usecase.DefaultStatus("status", string(domain.ClientActive)))
	contacts := usecase.NewEntityUseCase[domain.Contact, domain.ContactDraft](store.Contacts(), nil)
	jobFiles := usecase.NewEntityUseCase[domain.JobFile, domain.JobFileDraft](
		store.JobFiles(), usecase.DefaultStatus("status", string(domain.JobFileUpcoming)))
	appointments := usecase.NewEntityUseCase[domain.Appointment, domain.AppointmentDraft](
		store.Appointments(), usecase.DefaultStatus("status", string(domain.AppointmentScheduled)))
	certifications := usecase.NewEntityUseCase[domain.Certification, domain.CertificationDraft](store.Certifications(), nil)

	public := store.PublicJobFiles()

	return &App{
		Config: cfg,
		Store:  store,
		Queue:  queue,

		Clients:        clients,
		Contacts:       contacts,
		JobFiles:       jobFiles,
		Appointments:   appointments,
		Certifications: certifications,

		Share:    usecase.NewShareJobFileUseCase(store.JobFiles(), public, mailer, cfg.PublicBaseURL, cfg.MailFrom),
		Prefill:  usecase.NewParseAppointmentUseCase(store.Clients(), store.Contacts(), parser, time.Now),
		Inbox:    usecase.NewInboxUseCase(store.Proposals(), store.Appointments()),
		Calendar: usecase.NewCalendarExportUseCase(store.Appointments(), calendar.New()),

		Public:   public,
		Sessions: sessions,

		closeFn: func() {
			queue.Close()
			_ = sessions.Close()
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
