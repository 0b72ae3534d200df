package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ekoi-website/internal/models"
	"ekoi-website/internal/repository"
	"ekoi-website/pkg/logger"
	"ekoi-website/pkg/validator"
)

// InquiryValidationError lists the contact form fields that were rejected,
// keyed by form field name with the failing rule as value.
type InquiryValidationError struct {
	Fields map[string]string
}

func (e *InquiryValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid inquiry fields: %s", strings.Join(names, ", "))
}

func (e *InquiryValidationError) Unwrap() error {
	return ErrInvalidInquiry
}

type ContactService struct {
	repo      repository.InquiryRepository
	mailer    Mailer
	recipient string
}

// NewContactService accepts a nil repository when no database is configured;
// inquiries are then only delivered by mail.
func NewContactService(repo repository.InquiryRepository, mailer Mailer, recipient string) *ContactService {
	return &ContactService{
		repo:      repo,
		mailer:    mailer,
		recipient: strings.TrimSpace(recipient),
	}
}

func (s *ContactService) mailEnabled() bool {
	return s.mailer != nil && s.mailer.Enabled() && s.recipient != ""
}

// Submit validates, sanitizes and stores a contact form submission, then
// notifies the configured recipient. A failed notification is logged but does
// not fail a stored inquiry.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest, meta models.InquiryMeta) (*models.Inquiry, error) {
	req = normalizeContactRequest(req)

	if err := validator.Validate(req); err != nil {
		if fields := validator.FieldErrors(err); len(fields) > 0 {
			return nil, &InquiryValidationError{Fields: fields}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInquiry, err)
	}

	if s.repo == nil && !s.mailEnabled() {
		return nil, ErrInquiryStoreUnavailable
	}

	inquiry := &models.Inquiry{
		Name:      plainLine(req.Name),
		Email:     req.Email,
		Company:   plainLine(req.Company),
		Subject:   plainLine(req.Subject),
		Message:   validator.StripTags(req.Message),
		Locale:    meta.Locale,
		IP:        meta.IP,
		RequestID: meta.RequestID,
	}

	log := logger.FromContext(ctx)

	if s.repo != nil {
		if err := s.repo.Create(ctx, inquiry); err != nil {
			return nil, fmt.Errorf("failed to store inquiry: %w", err)
		}
	}

	if s.mailEnabled() {
		if err := s.mailer.Send(s.recipient, inquirySubject(inquiry), inquiryBody(inquiry)); err != nil {
			if s.repo == nil {
				return nil, fmt.Errorf("failed to deliver inquiry: %w", err)
			}
			log.WithError(err).Error("Failed to send inquiry notification")
		}
	}

	log.WithField("inquiry_id", inquiry.ID).WithField("locale", inquiry.Locale).Info("Contact inquiry received")
	return inquiry, nil
}

func normalizeContactRequest(req models.ContactRequest) models.ContactRequest {
	req.Name = validator.NormalizeSpaces(strings.TrimSpace(req.Name))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Company = validator.NormalizeSpaces(strings.TrimSpace(req.Company))
	req.Subject = validator.NormalizeSpaces(strings.TrimSpace(req.Subject))
	req.Message = strings.TrimSpace(req.Message)
	return req
}

// plainLine strips markup and then collapses all whitespace, so entities that
// decode to line breaks cannot survive into single-line fields.
func plainLine(s string) string {
	return strings.TrimSpace(validator.NormalizeSpaces(validator.StripTags(s)))
}

func inquirySubject(inquiry *models.Inquiry) string {
	subject := inquiry.Subject
	if subject == "" {
		subject = "New inquiry"
	}
	return fmt.Sprintf("[EKOI contact] %s", subject)
}

func inquiryBody(inquiry *models.Inquiry) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Name: %s\n", inquiry.Name)
	fmt.Fprintf(&builder, "Email: %s\n", inquiry.Email)
	if inquiry.Company != "" {
		fmt.Fprintf(&builder, "Company: %s\n", inquiry.Company)
	}
	fmt.Fprintf(&builder, "Locale: %s\n", inquiry.Locale)
	if inquiry.RequestID != "" {
		fmt.Fprintf(&builder, "Request: %s\n", inquiry.RequestID)
	}
	builder.WriteString("\n")
	builder.WriteString(inquiry.Message)
	return builder.String()
}
