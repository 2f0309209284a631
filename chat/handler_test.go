package chat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stackwalls-backend/cache"
	chatpkg "stackwalls-backend/chat"
	"stackwalls-backend/config"
	"stackwalls-backend/extract"
	"stackwalls-backend/history"
	"stackwalls-backend/prompt"
)

type stubGen struct {
	prompts    []string
	reply      string
	fail       bool
	summarized []string
	merges     int
}

func (g *stubGen) GenerateOrFallback(ctx context.Context, p, errFallback, emptyFallback string) string {
	g.prompts = append(g.prompts, p)
	if g.fail {
		return errFallback
	}
	if g.reply == "" {
		return emptyFallback
	}
	return g.reply
}

func (g *stubGen) Summarize(ctx context.Context, content, title, author string, wordLimit, maxChars int) (string, error) {
	if g.fail {
		return "", errors.New("summarize failed")
	}
	g.summarized = append(g.summarized, content)
	return "summary of " + title, nil
}

func (g *stubGen) MergeSummaries(ctx context.Context, summaries ...string) (string, error) {
	g.merges++
	return strings.Join(summaries, " | "), nil
}

type stubDocs struct {
	calls int
	text  string
	err   error
}

func (s *stubDocs) Extract(ctx context.Context, d extract.Document) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubTopics struct{ err error }

func (s *stubTopics) Extract(ctx context.Context, t extract.Topic) (string, error) {
	return "", s.err
}

type stubLinks struct{ err error }

func (s *stubLinks) Extract(ctx context.Context, l extract.Link) (string, error) {
	return "", s.err
}

type stubMedia struct {
	err  error
	meta extract.MediaMeta
}

func (s *stubMedia) Extract(ctx context.Context, m extract.Media) (string, error) {
	return "", s.err
}

func (s *stubMedia) Metadata(ctx context.Context, mediaURL string) extract.MediaMeta {
	return s.meta
}

type fixture struct {
	router *gin.Engine
	gen    *stubGen
	docs   *stubDocs
	hist   *history.Store
	caches *cache.Store
	cfg    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cfg := &config.Config{
		HistoryWindow:     5,
		StackWallsWindow:  10,
		MaxReferenceChars: 10000,
		ExtractTimeout:    time.Minute,
		UploadsDir:        filepath.Join(dir, "uploads"),
		StackWallsPath:    filepath.Join(dir, "stackwalls.txt"),
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		gen:    &stubGen{reply: "generated answer"},
		docs:   &stubDocs{text: "doc text"},
		hist:   history.NewStore(),
		caches: cache.New(0),
		cfg:    cfg,
	}
	notFound := &extract.NotFoundError{Title: "x"}
	h := chatpkg.NewHandler(cfg, f.gen, f.hist, f.caches, f.docs,
		&stubTopics{err: notFound}, &stubLinks{err: errors.New("no fetch")}, &stubMedia{err: errors.New("no media")})
	r := gin.New()
	h.Register(r)
	f.router = r
	return f
}

func (f *fixture) writeAsset(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(f.cfg.StackWallsPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) postForm(t *testing.T, path string, form url.Values) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestEmptyQuestionRejectedNoSideEffects(t *testing.T) {
	f := newFixture(t)
	rec, body := f.postForm(t, "/api/project_discussion_route/chat", url.Values{"username": {"alice"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["error"] == "" {
		t.Fatal("missing error message")
	}
	if f.hist.Len("alice") != 0 {
		t.Fatal("conversation store changed")
	}
	if len(f.gen.prompts) != 0 {
		t.Fatal("generation call made")
	}
}

func TestProjectDiscussionRefusesWithoutReferences(t *testing.T) {
	f := newFixture(t)
	rec, body := f.postForm(t, "/api/project_discussion_route/chat", url.Values{
		"username": {"alice"}, "question": {"Hi"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["answer"] != prompt.ProjectDiscussion.Refusal {
		t.Fatalf("answer = %q", body["answer"])
	}
	if len(f.gen.prompts) != 0 {
		t.Fatal("generation call made despite refusal")
	}
	turns := f.hist.Window("alice", 5)
	if len(turns) != 1 || turns[0].Question != "Hi" || turns[0].Answer != prompt.ProjectDiscussion.Refusal {
		t.Fatalf("turn = %+v", turns)
	}
}

func TestStackWallsAssetVerbatimInPrompt(t *testing.T) {
	f := newFixture(t)
	f.writeAsset(t, "StackWalls helps you hire.")
	rec, body := f.postForm(t, "/api/stackwalls_route/chat", url.Values{
		"username": {"alice"}, "question": {"What is StackWalls?"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["answer"] != "generated answer" {
		t.Fatalf("answer = %q", body["answer"])
	}
	if len(f.gen.prompts) != 1 || !strings.Contains(f.gen.prompts[0], "StackWalls helps you hire.") {
		t.Fatalf("asset text missing from prompt")
	}
	if f.hist.Len("alice") != 1 {
		t.Fatalf("history len = %d, want 1", f.hist.Len("alice"))
	}
}

func TestStackWallsMissingAssetIs500(t *testing.T) {
	f := newFixture(t)
	rec, body := f.postForm(t, "/api/stackwalls_route/chat", url.Values{"question": {"hello"}})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "Missing stackwalls.txt on server." {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestCofounderProceedsWithPlaceholder(t *testing.T) {
	f := newFixture(t)
	rec, body := f.postForm(t, "/api/cofounder_route/chat", url.Values{"question": {"what next?"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["answer"] != "generated answer" {
		t.Fatalf("answer = %q", body["answer"])
	}
	if !strings.Contains(f.gen.prompts[0], prompt.NoReferencesPlaceholder) {
		t.Fatal("placeholder missing from prompt")
	}
	if f.hist.Len(history.DefaultUser) != 1 {
		t.Fatal("default-user turn not recorded")
	}
}

func TestFreelancerAppendsFixedAsset(t *testing.T) {
	f := newFixture(t)
	f.writeAsset(t, "StackWalls finds freelancers.")
	rec, _ := f.postForm(t, "/api/freelancer_route/chat", url.Values{"question": {"who to hire?"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(f.gen.prompts) != 1 || !strings.Contains(f.gen.prompts[0], "StackWalls finds freelancers.") {
		t.Fatal("fixed asset not folded into references")
	}
}

func TestFreelancerRefusesWhenAssetMissingAndNoRefs(t *testing.T) {
	f := newFixture(t)
	_, body := f.postForm(t, "/api/freelancer_route/chat", url.Values{"question": {"who?"}})
	if body["answer"] != prompt.Freelancer.Refusal {
		t.Fatalf("answer = %q", body["answer"])
	}
}

func TestInteractiveOption4RefusalWording(t *testing.T) {
	f := newFixture(t)
	_, body := f.postForm(t, "/api/interactive_chat", url.Values{
		"question": {"hi"}, "option": {"4"},
	})
	if body["answer"] != "No resources provided. Please upload or link relevant data." {
		t.Fatalf("answer = %q", body["answer"])
	}
}

func TestUnsupportedExtensionSkippedValidFileUsed(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("question", "summarize")
	fw, _ := w.CreateFormFile("uploaded_file1", "tool.exe")
	fw.Write([]byte("MZ..."))
	fw2, _ := w.CreateFormFile("uploaded_file2", "notes.txt")
	fw2.Write([]byte("notes body"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/project_discussion_route/chat", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if f.docs.calls != 1 {
		t.Fatalf("document extractor ran %d times, want 1 (exe skipped)", f.docs.calls)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["answer"] != "generated answer" {
		t.Fatalf("answer = %q", body["answer"])
	}
	if !strings.Contains(f.gen.prompts[0], "doc text") {
		t.Fatal("extracted document text missing from prompt")
	}
}

func TestGeneratorFallbackNeverAnHTTPError(t *testing.T) {
	f := newFixture(t)
	f.gen.fail = true
	f.writeAsset(t, "asset")
	rec, body := f.postForm(t, "/api/stackwalls_route/chat", url.Values{"question": {"q"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["answer"] != prompt.StackWalls.ErrFallback {
		t.Fatalf("answer = %q", body["answer"])
	}
}

func TestResetClearsEverythingAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.hist.Append("alice", "q", "a")
	_, _ = f.caches.GetOrCompute(context.Background(), cache.Documents, "k", func(ctx context.Context) (string, error) {
		return "v", nil
	})
	for i := 0; i < 2; i++ {
		rec, body := f.postForm(t, "/api/end_conversation", url.Values{})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if body["message"] != "Conversation ended and in-memory caches cleared." {
			t.Fatalf("message = %q", body["message"])
		}
		if f.hist.Len("alice") != 0 {
			t.Fatal("history not cleared")
		}
		if f.caches.Len(cache.Documents) != 0 {
			t.Fatal("caches not cleared")
		}
	}
}

func (f *fixture) postFiles(t *testing.T, path string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for name, content := range files {
		fw, err := w.CreateFormFile("uploaded_file1", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	w.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestSummarizeRequiresReference(t *testing.T) {
	f := newFixture(t)
	rec, body := f.postForm(t, "/api/summarize", url.Values{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["error"] != "At least one valid reference is required." {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestSummarizeSingleReference(t *testing.T) {
	f := newFixture(t)
	rec := f.postFiles(t, "/api/summarize", nil, map[string]string{"notes.txt": "notes body"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["summary"] != "summary of notes.txt" {
		t.Fatalf("summary = %q", body["summary"])
	}
	if f.gen.merges != 0 {
		t.Fatal("merge called for a single reference")
	}
}

func TestSummarizeIsMemoizedPerSource(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 2; i++ {
		rec := f.postFiles(t, "/api/summarize", nil, map[string]string{"notes.txt": "notes body"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	}
	if len(f.gen.summarized) != 1 {
		t.Fatalf("Summarize ran %d times, want 1", len(f.gen.summarized))
	}
}

func TestHistoryWindowBoundInPrompt(t *testing.T) {
	f := newFixture(t)
	f.writeAsset(t, "asset")
	for i := 0; i < 10; i++ {
		f.hist.Append("alice", "old question", "old answer")
	}
	f.hist.Append("alice", "newest question", "newest answer")
	_, _ = f.postForm(t, "/api/stackwalls_route/chat", url.Values{
		"username": {"alice"}, "question": {"q"},
	})
	p := f.gen.prompts[0]
	if !strings.Contains(p, "newest question") {
		t.Fatal("most recent turn missing from prompt")
	}
	if got := strings.Count(p, "User: "); got != f.cfg.StackWallsWindow {
		t.Fatalf("prompt contains %d turns, want %d", got, f.cfg.StackWallsWindow)
	}
}
