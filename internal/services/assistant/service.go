package assistant

import (
	"context"
	"strings"

	"themis/internal/adapters/ai"
	"themis/internal/agents"
	"themis/internal/domain/document"
	"themis/internal/domain/draft"
	"themis/internal/domain/session"
	"themis/pkg/errors"
	"themis/pkg/logger"
)

const generalChatInstruction = "You are a knowledgeable legal assistant who can provide general information about legal topics. " +
	"You are not a lawyer and should clarify that your responses do not constitute legal advice. " +
	"You should recommend consulting with a qualified attorney for specific legal situations. " +
	"Provide concise, clear answers focused on the most important points. " +
	"Use **bold** for important points and structure your response in a clear, organized manner."

const draftReadyMessage = "I've prepared a draft document based on your instructions. You can download it using the link below."

// excerptLimit caps the document text echoed back after processing.
const excerptLimit = 200

// Service is the application facade: it composes sessions, documents,
// drafts and the consultation pipeline behind the HTTP surface.
type Service struct {
	sessions     *session.Service
	documents    *document.Service
	drafts       *draft.Service
	orchestrator *agents.Orchestrator
	provider     ai.ChatProvider
	log          *logger.Logger
}

// NewService creates the assistant service
func NewService(
	sessions *session.Service,
	documents *document.Service,
	drafts *draft.Service,
	orchestrator *agents.Orchestrator,
	provider ai.ChatProvider,
) *Service {
	return &Service{
		sessions:     sessions,
		documents:    documents,
		drafts:       drafts,
		orchestrator: orchestrator,
		provider:     provider,
		log:          logger.Get().With("component", "assistant"),
	}
}

// ClassifyResult is the outcome of a document upload.
type ClassifyResult struct {
	SessionID string
	Category  document.Category
}

// ClassifyDocument stores the uploaded document text for the session and
// classifies it into one of the fixed categories.
func (s *Service) ClassifyDocument(ctx context.Context, sessionID, filename, text string) (*ClassifyResult, error) {
	sess, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	doc := document.NewDocument(sess.ID, filename, text)
	category, err := s.documents.Classify(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.Category = category
	if err := s.documents.Store(ctx, doc); err != nil {
		return nil, err
	}

	return &ClassifyResult{SessionID: sess.ID, Category: category}, nil
}

// ProcessResult is the outcome of document processing.
type ProcessResult struct {
	SessionID string
	Summary   string
	Excerpt   string
}

// ProcessDocument stores the document under the confirmed category and
// extracts the category-specific metrics summary.
func (s *Service) ProcessDocument(ctx context.Context, sessionID, filename, text string, category document.Category) (*ProcessResult, error) {
	if !category.IsValid() {
		return nil, errors.Wrapf(errors.ErrUnknownCategory, "category %q", category)
	}

	sess, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	doc := document.NewDocument(sess.ID, filename, text)
	doc.Category = category
	if err := s.documents.Store(ctx, doc); err != nil {
		return nil, err
	}

	summary, err := s.documents.Summarize(ctx, doc)
	if err != nil {
		return nil, err
	}

	excerpt := doc.Text
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit] + "..."
	}

	return &ProcessResult{SessionID: sess.ID, Summary: summary, Excerpt: excerpt}, nil
}

// ChatRequest is a document-grounded chat turn.
type ChatRequest struct {
	SessionID         string
	Message           string
	Detailed          bool
	GenerateDraft     bool
	DraftInstructions string
}

// ChatResult carries the reply and, when a draft was requested, its
// download ID.
type ChatResult struct {
	SessionID string
	Response  string
	DraftID   string
}

// DocumentChat answers a question about the session's uploaded document, or
// generates a response draft when the turn requests one.
func (s *Service) DocumentChat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if req.Message == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "message is required")
	}

	sess, err := s.sessions.GetOrCreate(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Current(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	if req.GenerateDraft {
		d, err := s.drafts.Generate(ctx, doc, req.Message, req.DraftInstructions)
		if err != nil {
			return nil, err
		}
		return &ChatResult{SessionID: sess.ID, Response: draftReadyMessage, DraftID: d.ID}, nil
	}

	answer, err := s.documents.Chat(ctx, doc, sess.DocumentContext, req.Message, req.Detailed)
	if err != nil {
		return nil, err
	}

	sess.AppendDocumentExchange(req.Message, answer)
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Errorf("Failed to persist session %s: %v", sess.ID, err)
	}

	return &ChatResult{SessionID: sess.ID, Response: answer}, nil
}

// GeneralChatRequest is a general legal chat turn, independent of any
// uploaded document.
type GeneralChatRequest struct {
	SessionID         string
	Message           string
	Detailed          bool
	GenerateDraft     bool
	DraftInstructions string
}

// GeneralChatResult carries the reply and, for detailed turns, the
// consultation reasoning trace.
type GeneralChatResult struct {
	SessionID string
	Response  string
	Reasoning []string
	DraftID   string
}

// GeneralChat answers a general legal question. Detailed turns run the full
// multi-role consultation and fold the answer into the session context;
// plain turns use a single completion and leave the context untouched.
func (s *Service) GeneralChat(ctx context.Context, req GeneralChatRequest) (*GeneralChatResult, error) {
	if req.Message == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "message is required")
	}

	sess, err := s.sessions.GetOrCreate(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if req.GenerateDraft {
		d, err := s.drafts.GenerateGeneral(ctx, req.Message, req.DraftInstructions)
		if err != nil {
			return nil, err
		}
		return &GeneralChatResult{SessionID: sess.ID, Response: draftReadyMessage, DraftID: d.ID}, nil
	}

	if req.Detailed {
		result, err := s.orchestrator.Consult(ctx, req.Message, sess.GeneralContext)
		if err != nil {
			return nil, err
		}

		sess.AppendGeneralExchange(req.Message, result.FinalAnswer)
		if err := s.sessions.Save(ctx, sess); err != nil {
			s.log.Errorf("Failed to persist session %s: %v", sess.ID, err)
		}

		return &GeneralChatResult{
			SessionID: sess.ID,
			Response:  result.FinalAnswer,
			Reasoning: result.ReasoningTrace,
		}, nil
	}

	resp, err := s.provider.Chat(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: generalChatInstruction + "\n\nContext: " + sess.GeneralContext},
			{Role: ai.RoleUser, Content: req.Message},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "general chat call failed")
	}

	return &GeneralChatResult{
		SessionID: sess.ID,
		Response:  strings.TrimSpace(resp.Content),
		Reasoning: []string{},
	}, nil
}

// Draft retrieves a generated draft for download.
func (s *Service) Draft(ctx context.Context, id string) (*draft.Draft, error) {
	return s.drafts.Get(ctx, id)
}

// CurrentDocument returns the session's uploaded document, if any.
func (s *Service) CurrentDocument(ctx context.Context, sessionID string) (*document.Document, error) {
	if sessionID == "" {
		return nil, errors.ErrNoDocument
	}
	return s.documents.Current(ctx, sessionID)
}
