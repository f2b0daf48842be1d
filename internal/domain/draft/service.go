package draft

import (
	"context"
	"strings"
	"time"

	"themis/internal/adapters/ai"
	"themis/internal/domain/document"
	"themis/internal/metrics"
	"themis/pkg/errors"
	"themis/pkg/logger"
)

// Service generates formal legal letters and caches them for download.
type Service struct {
	provider ai.ChatProvider
	repo     Repository
	ttl      time.Duration
	maxChars int
	log      *logger.Logger
}

// NewService creates a new draft service. maxChars caps the document excerpt
// embedded in the drafting prompt.
func NewService(provider ai.ChatProvider, repo Repository, ttl time.Duration, maxChars int) *Service {
	return &Service{
		provider: provider,
		repo:     repo,
		ttl:      ttl,
		maxChars: maxChars,
		log:      logger.Get().With("component", "draft_service"),
	}
}

// Generate drafts a formal response letter grounded in an uploaded document.
// The template follows the document category; message is the user's request,
// instructions the drafting guidance.
func (s *Service) Generate(ctx context.Context, doc *document.Document, message, instructions string) (*Draft, error) {
	if doc == nil || doc.Text == "" {
		return nil, errors.ErrNoDocument
	}

	tmpl := TemplateForCategory(doc.Category)

	var b strings.Builder
	b.WriteString("You are a professional legal document drafter. Create a formal response document based on the following instructions:\n\n")
	b.WriteString("Instructions: ")
	b.WriteString(instructions)
	b.WriteString("\n\nThis is related to a ")
	b.WriteString(string(doc.Category))
	b.WriteString(" document. Here's the relevant context from the document:\n")
	b.WriteString(doc.Truncate(s.maxChars))
	b.WriteString("\n\nYour draft should be well-structured and professionally formatted. Include:\n")
	b.WriteString("1. A clear header/title\n")
	b.WriteString("2. Today's date (" + time.Now().Format(tmpl.DateLayout) + ")\n")
	b.WriteString("3. Appropriate salutation\n")
	b.WriteString("4. Well-organized body content\n")
	b.WriteString("5. Proper closing\n")
	b.WriteString("6. Signature line\n\n")
	b.WriteString("Format the content as if it were going to be printed on letterhead. Do not include any explanatory text or notes - just the actual document content.")

	return s.draft(ctx, tmpl, b.String(), message)
}

// GenerateGeneral drafts a formal letter without an underlying document,
// always using the general letter template.
func (s *Service) GenerateGeneral(ctx context.Context, message, instructions string) (*Draft, error) {
	tmpl, _ := TemplateByName(TemplateGeneralLetter)

	var b strings.Builder
	b.WriteString("You are a professional legal document drafter. Create a formal document based on the following instructions:\n\n")
	b.WriteString("Instructions: ")
	b.WriteString(instructions)
	b.WriteString("\n\nYour draft should be well-structured and professionally formatted. Include:\n")
	b.WriteString("1. A clear header/title\n")
	b.WriteString("2. Today's date (" + time.Now().Format(tmpl.DateLayout) + ")\n")
	b.WriteString("3. Appropriate salutation (if applicable)\n")
	b.WriteString("4. Well-organized body content\n")
	b.WriteString("5. Proper closing\n")
	b.WriteString("6. Signature line (if applicable)\n\n")
	b.WriteString("Format the content as if it were going to be printed on letterhead. Do not include any explanatory text or notes - just the actual document content.")

	return s.draft(ctx, tmpl, b.String(), message)
}

// Get retrieves a previously generated draft by its download ID.
func (s *Service) Get(ctx context.Context, id string) (*Draft, error) {
	if id == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "draft id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) draft(ctx context.Context, tmpl Template, systemPrompt, message string) (*Draft, error) {
	resp, err := s.provider.Chat(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: systemPrompt},
			{Role: ai.RoleUser, Content: message},
		},
	})
	if err != nil {
		metrics.RecordDraft(tmpl.Name, err)
		return nil, errors.Wrap(err, "draft generation call failed")
	}

	d := NewDraft(tmpl.Name, strings.TrimSpace(resp.Content))
	if err := s.repo.Save(ctx, d, s.ttl); err != nil {
		metrics.RecordDraft(tmpl.Name, err)
		return nil, errors.Wrap(err, "failed to cache draft")
	}

	metrics.RecordDraft(tmpl.Name, nil)
	s.log.Infof("Generated %s draft %s", tmpl.Name, d.ID)
	return d, nil
}
