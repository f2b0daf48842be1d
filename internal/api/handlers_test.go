package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themis/internal/adapters/ai"
	"themis/internal/agents"
	"themis/internal/domain/document"
	"themis/internal/domain/draft"
	"themis/internal/domain/session"
	"themis/internal/services/assistant"
	"themis/pkg/errors"
)

type fakeProvider struct {
	content string
	err     error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Chat(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ai.CompletionResponse{Content: p.content}, nil
}

type memoryStore[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

func newMemoryStore[T any]() *memoryStore[T] {
	return &memoryStore[T]{items: make(map[string]T)}
}

func (s *memoryStore[T]) get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *memoryStore[T]) put(key string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = v
}

func (s *memoryStore[T]) del(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

type sessionStore struct{ *memoryStore[*session.Session] }

func (s sessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	v, ok := s.get(id)
	if !ok {
		return nil, errors.ErrNotFound
	}
	return v, nil
}

func (s sessionStore) Save(ctx context.Context, sess *session.Session, ttl time.Duration) error {
	s.put(sess.ID, sess)
	return nil
}

func (s sessionStore) Delete(ctx context.Context, id string) error {
	s.del(id)
	return nil
}

type documentStore struct{ *memoryStore[*document.Document] }

func (s documentStore) Get(ctx context.Context, sessionID string) (*document.Document, error) {
	v, ok := s.get(sessionID)
	if !ok {
		return nil, errors.ErrNotFound
	}
	return v, nil
}

func (s documentStore) Save(ctx context.Context, doc *document.Document, ttl time.Duration) error {
	s.put(doc.SessionID, doc)
	return nil
}

func (s documentStore) Delete(ctx context.Context, sessionID string) error {
	s.del(sessionID)
	return nil
}

type draftStore struct{ *memoryStore[*draft.Draft] }

func (s draftStore) Get(ctx context.Context, id string) (*draft.Draft, error) {
	v, ok := s.get(id)
	if !ok {
		return nil, errors.ErrNotFound
	}
	return v, nil
}

func (s draftStore) Save(ctx context.Context, d *draft.Draft, ttl time.Duration) error {
	s.put(d.ID, d)
	return nil
}

func (s draftStore) Delete(ctx context.Context, id string) error {
	s.del(id)
	return nil
}

type testEnv struct {
	mux      *http.ServeMux
	sessions sessionStore
	docs     documentStore
	drafts   draftStore
}

func newTestEnv(provider ai.ChatProvider) *testEnv {
	sessions := sessionStore{newMemoryStore[*session.Session]()}
	docs := documentStore{newMemoryStore[*document.Document]()}
	drafts := draftStore{newMemoryStore[*draft.Draft]()}

	limits := document.Limits{ClassifyMaxChars: 3000, SummaryMaxChars: 4000, ChatMaxChars: 3000}
	svc := assistant.NewService(
		session.NewService(sessions, time.Hour),
		document.NewService(provider, docs, time.Hour, limits),
		draft.NewService(provider, drafts, time.Hour, 1500),
		agents.NewOrchestrator(agents.NewRoleInvoker(provider, "test-model")),
		provider,
	)

	mux := http.NewServeMux()
	NewHandler(svc, 1<<20).Register(mux)

	return &testEnv{mux: mux, sessions: sessions, docs: docs, drafts: drafts}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func uploadRequest(t *testing.T, path, text string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("document", "doc.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte(text))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestClassifyEndpoint(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "Legal Notice"})

	rec := env.do(t, uploadRequest(t, "/classify", "notice text", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "Legal Notice", body["category"])
	assert.NotEmpty(t, body["session_id"])
}

func TestClassifyEndpoint_NoFile(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "Legal Notice"})

	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(""))
	rec := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyEndpoint_EmptyDocument(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "Legal Notice"})

	rec := env.do(t, uploadRequest(t, "/classify", "   \n  ", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessEndpoint(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "**Severity Score**: 8"})

	rec := env.do(t, uploadRequest(t, "/process", "notice text", map[string]string{
		"category": "Legal Notice",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "**Severity Score**: 8", body["summary"])
	assert.Equal(t, "notice text", body["document_text"])
}

func TestProcessEndpoint_MissingCategory(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "summary"})

	rec := env.do(t, uploadRequest(t, "/process", "text", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "The deadline is 30 days."})

	sess := session.NewSession()
	env.sessions.put(sess.ID, sess)
	doc := document.NewDocument(sess.ID, "n.pdf", "reply within 30 days")
	doc.Category = document.CategoryLegalNotice
	env.docs.put(sess.ID, doc)

	req := jsonRequest(t, "/chat", map[string]any{"message": "What is the deadline?"})
	req.Header.Set(sessionHeader, sess.ID)
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "The deadline is 30 days.", body["response"])
	assert.Equal(t, sess.ID, body["session_id"])
	assert.NotContains(t, body, "draft_id")
}

func TestChatEndpoint_NoDocument(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "ok"})

	rec := env.do(t, jsonRequest(t, "/chat", map[string]any{"message": "hi"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatEndpoint_DraftFlow(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "DRAFT CONTENT"})

	sess := session.NewSession()
	env.sessions.put(sess.ID, sess)
	doc := document.NewDocument(sess.ID, "n.pdf", "notice")
	doc.Category = document.CategoryLegalNotice
	env.docs.put(sess.ID, doc)

	req := jsonRequest(t, "/chat", map[string]any{
		"message":            "Draft a response",
		"generate_draft":     true,
		"draft_instructions": "Be firm",
	})
	req.Header.Set(sessionHeader, sess.ID)
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	draftID, _ := body["draft_id"].(string)
	require.NotEmpty(t, draftID)

	download := env.do(t, httptest.NewRequest(http.MethodGet, "/download-draft/"+draftID, nil))
	require.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "DRAFT CONTENT", download.Body.String())
	assert.Contains(t, download.Header().Get("Content-Disposition"), "attachment")
}

func TestDownloadDraft_Unknown(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "ok"})

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/download-draft/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeneralChatEndpoint(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "General info."})

	rec := env.do(t, jsonRequest(t, "/general_chat", map[string]any{"message": "What is a tort?"}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "General info.", body["response"])
	assert.Equal(t, []any{}, body["reasoning"])
}

func TestGeneralChatEndpoint_Detailed(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "consultation answer"})

	rec := env.do(t, jsonRequest(t, "/general_chat", map[string]any{
		"message":           "Am I liable?",
		"detailed_analysis": true,
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "consultation answer", body["response"])
	reasoning, ok := body["reasoning"].([]any)
	require.True(t, ok)
	assert.Len(t, reasoning, 5)
}

func TestGeneralChatEndpoint_MissingMessage(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "ok"})

	rec := env.do(t, jsonRequest(t, "/general_chat", map[string]any{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneralChatEndpoint_QuotaExceeded(t *testing.T) {
	env := newTestEnv(&fakeProvider{err: errors.ErrQuotaExceeded})

	rec := env.do(t, jsonRequest(t, "/general_chat", map[string]any{"message": "q"}))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestViewDocumentEndpoint(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "ok"})

	sess := session.NewSession()
	env.sessions.put(sess.ID, sess)
	doc := document.NewDocument(sess.ID, "n.pdf", "document body")
	doc.Category = document.CategoryLegalNotice
	env.docs.put(sess.ID, doc)

	req := httptest.NewRequest(http.MethodGet, "/view-document", nil)
	req.Header.Set(sessionHeader, sess.ID)
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "document body", body["document_text"])
	assert.Equal(t, "n.pdf", body["filename"])
}

func TestViewDocumentEndpoint_NoSession(t *testing.T) {
	env := newTestEnv(&fakeProvider{content: "ok"})

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/view-document", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
