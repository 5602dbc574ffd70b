package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// ShareJobFileUseCase drives the Unshared -> Sharing -> Shared workflow.
// Each share publishes a fresh projection; repeated shares of the same job
// file accumulate independent public documents (no dedupe). A failed publish
// leaves the job file unshared and is reported without retry.
type ShareJobFileUseCase struct {
	jobFiles      ports.Collection[domain.JobFile]
	public        ports.PublicJobFiles
	mailer        ports.Mailer
	publicBaseURL string
	fromAddress   string
}

func NewShareJobFileUseCase(
	jobFiles ports.Collection[domain.JobFile],
	public ports.PublicJobFiles,
	mailer ports.Mailer,
	publicBaseURL string,
	fromAddress string,
) *ShareJobFileUseCase {
	return &ShareJobFileUseCase{
		jobFiles:      jobFiles,
		public:        public,
		mailer:        mailer,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		fromAddress:   fromAddress,
	}
}

// CreateShareLink loads the owner's job file, publishes its restricted
// projection into the public collection, and returns the opaque publicId
// with the composed viewing URL.
func (uc *ShareJobFileUseCase) CreateShareLink(ctx context.Context, userID, jobFileID string) (*domain.ShareLink, error) {
	file, err := uc.jobFiles.Get(ctx, userID, jobFileID)
	if err != nil {
		return nil, err
	}

	publicID, err := uc.public.Publish(ctx, domain.ProjectJobFile(*file))
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "publish projection", err)
	}

	return &domain.ShareLink{
		PublicID: publicID,
		URL:      uc.publicBaseURL + "/" + publicID,
	}, nil
}

// ShareSubject is the fixed subject line for share notifications.
func ShareSubject(jobTitle string) string {
	return fmt.Sprintf("A job file has been shared with you: %s", jobTitle)
}

// SendShareEmail validates the message locally and hands it to the email
// collaborator. Delivery failures come back raw; the operator retries by
// resubmitting.
func (uc *ShareJobFileUseCase) SendShareEmail(ctx context.Context, msg domain.ShareEmail) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return uc.mailer.SendShareEmail(ctx, msg)
}

// EmailShareLink is the owner-facing composite: publish a projection for the
// job file and email the resulting link. The two steps are independent
// writes; a delivery failure leaves the projection in place.
func (uc *ShareJobFileUseCase) EmailShareLink(ctx context.Context, userID, jobFileID, recipient string) (*domain.ShareLink, error) {
	file, err := uc.jobFiles.Get(ctx, userID, jobFileID)
	if err != nil {
		return nil, err
	}

	publicID, err := uc.public.Publish(ctx, domain.ProjectJobFile(*file))
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "publish projection", err)
	}
	link := &domain.ShareLink{
		PublicID: publicID,
		URL:      uc.publicBaseURL + "/" + publicID,
	}

	err = uc.SendShareEmail(ctx, domain.ShareEmail{
		To:      recipient,
		From:    uc.fromAddress,
		Subject: ShareSubject(file.JobTitle),
		Link:    link.URL,
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Notify implements the authenticated share-callable contract: it confirms
// the share intent without publishing anything.
func (uc *ShareJobFileUseCase) Notify(ctx context.Context, userID, recipientEmail, title string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.WrapError(domain.ErrAuthentication, "share notify", domain.ErrAuthentication)
	}
	if strings.TrimSpace(recipientEmail) == "" {
		return "", domain.Validationf("share notify requires a recipientEmail")
	}
	if strings.TrimSpace(title) == "" {
		return "", domain.Validationf("share notify requires fileData.title")
	}
	return fmt.Sprintf("File has been successfully shared with %s", recipientEmail), nil
}

// ViewPublic resolves a public projection by its opaque ID. No
// authentication and no tenant scoping: anyone with the ID may read it.
func ViewPublic(ctx context.Context, public ports.PublicJobFiles, publicID string) (*domain.PublicJobFile, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, domain.Validationf("public file id is required")
	}
	return public.Get(ctx, publicID)
}
