package document

import (
	"context"
	"strings"
	"time"

	"themis/internal/adapters/ai"
	"themis/internal/metrics"
	"themis/pkg/errors"
	"themis/pkg/logger"
)

const classifyInstruction = "You are a document classification agent. Classify the document into one of these categories: " +
	"Legal Notice, Ownership Documents, Contracts & Agreements, Financial Documents, " +
	"Terms & Conditions / Privacy Policies, Intellectual Property Documents, Criminal Offense Documents, " +
	"Regulatory Compliance Documents, Employment Documents, Court Judgments & Legal Precedents. " +
	"Reply with the category name only."

// Limits controls prompt truncation per operation.
type Limits struct {
	ClassifyMaxChars int
	SummaryMaxChars  int
	ChatMaxChars     int
}

// Service provides classification, metric extraction and document-grounded
// chat over uploaded documents.
type Service struct {
	provider ai.ChatProvider
	repo     Repository
	ttl      time.Duration
	limits   Limits
	log      *logger.Logger
}

// NewService creates a new document service
func NewService(provider ai.ChatProvider, repo Repository, ttl time.Duration, limits Limits) *Service {
	return &Service{
		provider: provider,
		repo:     repo,
		ttl:      ttl,
		limits:   limits,
		log:      logger.Get().With("component", "document_service"),
	}
}

// Store caches the document text for its session.
func (s *Service) Store(ctx context.Context, doc *Document) error {
	if doc.Text == "" {
		return errors.ErrEmptyDocument
	}
	return s.repo.Save(ctx, doc, s.ttl)
}

// Current returns the session's cached document.
func (s *Service) Current(ctx context.Context, sessionID string) (*Document, error) {
	doc, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrNoDocument
		}
		return nil, err
	}
	return doc, nil
}

// Classify determines the document category from its text.
func (s *Service) Classify(ctx context.Context, doc *Document) (Category, error) {
	if doc.Text == "" {
		return "", errors.ErrEmptyDocument
	}

	resp, err := s.provider.Chat(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: classifyInstruction},
			{Role: ai.RoleUser, Content: doc.Truncate(s.limits.ClassifyMaxChars)},
		},
	})
	if err != nil {
		metrics.RecordDocumentOperation("classify", err)
		return "", errors.Wrap(err, "classification call failed")
	}

	category := parseCategory(resp.Content)
	if category == "" {
		err := errors.Wrapf(errors.ErrUnknownCategory, "classifier returned %q", strings.TrimSpace(resp.Content))
		metrics.RecordDocumentOperation("classify", err)
		return "", err
	}

	metrics.RecordDocumentOperation("classify", nil)
	s.log.Infof("Classified document for session %s as %s", doc.SessionID, category)
	return category, nil
}

// Summarize extracts the category-specific metrics from the document.
func (s *Service) Summarize(ctx context.Context, doc *Document) (string, error) {
	if doc.Text == "" {
		return "", errors.ErrEmptyDocument
	}
	if !doc.Category.IsValid() {
		return "", errors.Wrapf(errors.ErrUnknownCategory, "category %q", doc.Category)
	}

	prompt := "You are an expert summarizer for " + string(doc.Category) + " documents. " +
		"Extract the following relevant metrics: " + strings.Join(doc.Category.Metrics(), ", ") + ". " +
		"Format each metric as '**Metric Name**: Value' to make it bold and easily readable."

	resp, err := s.provider.Chat(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: prompt},
			{Role: ai.RoleUser, Content: doc.Truncate(s.limits.SummaryMaxChars)},
		},
	})
	if err != nil {
		metrics.RecordDocumentOperation("summarize", err)
		return "", errors.Wrap(err, "summary call failed")
	}

	metrics.RecordDocumentOperation("summarize", nil)
	return strings.TrimSpace(resp.Content), nil
}

// Chat answers a question grounded in the document text. chatContext is the
// session's accumulated document conversation; detailed switches between
// thorough and concise answer styles.
func (s *Service) Chat(ctx context.Context, doc *Document, chatContext, message string, detailed bool) (string, error) {
	if message == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "message is required")
	}

	var b strings.Builder
	b.WriteString("You are a legal assistant specializing in ")
	b.WriteString(string(doc.Category))
	b.WriteString(" documents.\n")
	b.WriteString("You will answer only the questions related to the document and not any external questions like generating code or writing a story.\n")
	b.WriteString("You have access to the following document text (truncated if necessary):\n\n")
	b.WriteString(doc.Truncate(s.limits.ChatMaxChars))
	b.WriteString("\n\nchat Context:\n")
	b.WriteString(chatContext)
	b.WriteString("\n\n")

	if detailed {
		b.WriteString("Provide a detailed analysis with comprehensive explanations, legal references, and thorough examination of all relevant aspects. ")
	} else {
		b.WriteString("Provide concise, clear answers focused on the most important points. ")
	}
	b.WriteString("Provide helpful, accurate information based on this document. If you cannot find information in the document to answer a question, clearly state that. Use **bold** for important points.")

	resp, err := s.provider.Chat(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: b.String()},
			{Role: ai.RoleUser, Content: message},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "document chat call failed")
	}

	return strings.TrimSpace(resp.Content), nil
}

// parseCategory maps classifier output onto the fixed category set. The
// model sometimes decorates the answer, so a containment match is accepted
// when the exact form does not.
func parseCategory(raw string) Category {
	cleaned := Category(strings.TrimSpace(raw))
	if cleaned.IsValid() {
		return cleaned
	}
	for _, known := range AllCategories() {
		if strings.Contains(raw, string(known)) {
			return known
		}
	}
	return ""
}
