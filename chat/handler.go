package chat

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"stackwalls-backend/cache"
	"stackwalls-backend/config"
	"stackwalls-backend/extract"
	"stackwalls-backend/history"
	"stackwalls-backend/prompt"
)

// AIClient abstracts the generation client for easier mocking in unit
// tests. Only the methods the handlers actually use are listed.
type AIClient interface {
	GenerateOrFallback(ctx context.Context, prompt, errFallback, emptyFallback string) string
	Summarize(ctx context.Context, content, title, author string, wordLimit, maxChars int) (string, error)
	MergeSummaries(ctx context.Context, summaries ...string) (string, error)
}

// Per-kind extractor interfaces, satisfied by the extract package.
type DocumentExtractor interface {
	Extract(ctx context.Context, d extract.Document) (string, error)
}

type TopicExtractor interface {
	Extract(ctx context.Context, t extract.Topic) (string, error)
}

type LinkExtractor interface {
	Extract(ctx context.Context, l extract.Link) (string, error)
}

type MediaExtractor interface {
	Extract(ctx context.Context, m extract.Media) (string, error)
	Metadata(ctx context.Context, mediaURL string) extract.MediaMeta
}

// Handler wires the chat endpoints: gather references, consult the
// caches, assemble the variant prompt, call the generator, record the
// turn. One parameterized pipeline; the variants differ only in their
// prompt.Policy and in which references are mandatory.
type Handler struct {
	cfg    *config.Config
	gen    AIClient
	hist   *history.Store
	caches *cache.Store
	docs   DocumentExtractor
	topics TopicExtractor
	links  LinkExtractor
	media  MediaExtractor

	// Reset barrier: requests hold the read side, EndConversation the
	// write side, so a reset is never partially observable.
	mu sync.RWMutex
}

func NewHandler(cfg *config.Config, gen AIClient, hist *history.Store, caches *cache.Store,
	docs DocumentExtractor, topics TopicExtractor, links LinkExtractor, media MediaExtractor) *Handler {
	return &Handler{
		cfg: cfg, gen: gen, hist: hist, caches: caches,
		docs: docs, topics: topics, links: links, media: media,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.POST("/api/project_discussion_route/chat", h.ProjectDiscussion)
	r.POST("/api/stackwalls_route/chat", h.StackWalls)
	r.POST("/api/cofounder_route/chat", h.Cofounder)
	r.POST("/api/freelancer_route/chat", h.Freelancer)
	r.POST("/api/interactive_chat", h.Interactive)
	r.POST("/api/summarize", h.Summarize)
	r.POST("/api/end_conversation", h.EndConversation)
}

// ProjectDiscussion is the strict technical-advisor variant: references
// are optional to supply but mandatory to answer.
func (h *Handler) ProjectDiscussion(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	username, question, ok := h.requireQuestion(c, "Question is required.")
	if !ok {
		return
	}
	refs := h.gatherReferences(c)
	p := h.sized(prompt.ProjectDiscussion)
	if len(refs) == 0 {
		h.refuse(c, username, question, p.Refusal)
		return
	}
	h.respond(c, p, username, question, texts(refs))
}

// StackWalls ignores user-supplied references and answers from the
// fixed local asset alone.
func (h *Handler) StackWalls(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	username, question, ok := h.requireQuestion(c, "A question is required for StackWalls info.")
	if !ok {
		return
	}
	text, err := h.readStackWallsAsset(c, "Missing stackwalls.txt on server.", "Error reading stackwalls.txt")
	if err != nil {
		return
	}
	h.respond(c, h.sized(prompt.StackWalls), username, question, []string{text})
}

// Cofounder proceeds without references, folding a placeholder into
// the prompt instead of refusing.
func (h *Handler) Cofounder(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	username, question, ok := h.requireQuestion(c, "Question is required.")
	if !ok {
		return
	}
	h.respond(c, h.sized(prompt.Cofounder), username, question, texts(h.gatherReferences(c)))
}

// Freelancer always appends the StackWalls asset to the reference set
// and refuses only when the combined set is still empty.
func (h *Handler) Freelancer(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	username, question, ok := h.requireQuestion(c, "Question is required.")
	if !ok {
		return
	}
	refs := texts(h.gatherReferences(c))
	if sw := h.stackWallsAssetText(); sw != "" {
		refs = append(refs, sw)
	}
	p := h.sized(prompt.Freelancer)
	if len(refs) == 0 {
		h.refuse(c, username, question, p.Refusal)
		return
	}
	h.respond(c, p, username, question, refs)
}

// Interactive is the combined-dispatch endpoint: one route, an
// "option" discriminator in {1,2,3,4}, same policy table with its own
// refusal wordings.
func (h *Handler) Interactive(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	option := strings.TrimSpace(c.PostForm("option"))

	if option == "2" {
		username, question, ok := h.requireQuestion(c, "No question provided for StackWalls info.")
		if !ok {
			return
		}
		text, err := h.readStackWallsAsset(c, "Internal error reading stackwalls.txt", "Internal error reading stackwalls.txt")
		if err != nil {
			return
		}
		h.respond(c, h.sized(prompt.InteractiveStackWalls), username, question, []string{text})
		return
	}

	username, question, ok := h.requireQuestion(c, "A question or message is required.")
	if !ok {
		return
	}
	refs := h.gatherReferences(c)
	p := h.sized(prompt.Interactive(option))
	if len(refs) == 0 {
		h.refuse(c, username, question, p.Refusal)
		return
	}
	h.respond(c, p, username, question, texts(refs))
}

// Summarize produces one merged summary of the declared references.
// Per-reference summaries are memoized by source key; media links are
// labeled with oEmbed title/author when the lookup succeeds.
func (h *Handler) Summarize(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	refs := h.gatherReferences(c)
	if len(refs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one valid reference is required."})
		return
	}
	ctx := c.Request.Context()
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		sum, err := h.caches.GetOrCompute(ctx, cache.Summaries, ref.Key, func(ctx context.Context) (string, error) {
			title, author := ref.Key, ""
			if ref.Kind == "media" {
				if meta := h.media.Metadata(ctx, ref.Key); meta.Title != "" {
					title, author = meta.Title, meta.Author
				}
			}
			return h.gen.Summarize(ctx, ref.Text, title, author, h.cfg.SummaryWordLimit, h.cfg.MaxReferenceChars)
		})
		if err != nil {
			log.Printf("[chat][summary_skip] kind=%s key=%q err=%v", ref.Kind, ref.Key, err)
			continue
		}
		parts = append(parts, sum)
	}
	if len(parts) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not summarize the provided references."})
		return
	}
	if len(parts) == 1 {
		c.JSON(http.StatusOK, gin.H{"summary": parts[0]})
		return
	}
	merged, err := h.gen.MergeSummaries(ctx, parts...)
	if err != nil || merged == "" {
		log.Printf("[chat][summary_merge] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not summarize the provided references."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": merged})
}

// EndConversation clears every cache table and all conversation
// histories behind the write barrier, so callers never observe a
// partial reset. Idempotent.
func (h *Handler) EndConversation(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hist.ClearAll()
	h.caches.Reset()
	log.Printf("[chat][reset] caches and conversation history cleared")
	c.JSON(http.StatusOK, gin.H{"message": "Conversation ended and in-memory caches cleared."})
}

// requireQuestion validates the common form fields. An empty question
// rejects with a 400 before any extraction or generation side effect.
func (h *Handler) requireQuestion(c *gin.Context, missingMsg string) (username, question string, ok bool) {
	username = strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		username = history.DefaultUser
	}
	question = strings.TrimSpace(c.PostForm("question"))
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingMsg})
		return "", "", false
	}
	return username, question, true
}

// respond assembles the prompt, generates the answer under the
// fallback contract, records the turn, and replies.
func (h *Handler) respond(c *gin.Context, p prompt.Policy, username, question string, refs []string) {
	turns := h.hist.Window(username, p.Window)
	full := prompt.Build(p, turns, refs, question, h.cfg.MaxReferenceChars)
	answer := h.gen.GenerateOrFallback(c.Request.Context(), full, p.ErrFallback, p.EmptyFallback)
	h.hist.Append(username, question, answer)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// refuse returns the variant's canned no-resources answer. Refusals
// are recorded as turns like any other answer.
func (h *Handler) refuse(c *gin.Context, username, question, msg string) {
	h.hist.Append(username, question, msg)
	c.JSON(http.StatusOK, gin.H{"answer": msg})
}

// sized applies the configured history windows to a policy.
func (h *Handler) sized(p prompt.Policy) prompt.Policy {
	if p.ID == prompt.StackWalls.ID {
		p.Window = h.cfg.StackWallsWindow
	} else {
		p.Window = h.cfg.HistoryWindow
	}
	return p
}

// readStackWallsAsset loads the fixed reference asset, shaping the
// HTTP error itself on failure.
func (h *Handler) readStackWallsAsset(c *gin.Context, missingMsg, readMsg string) (string, error) {
	data, err := os.ReadFile(h.cfg.StackWallsPath)
	if err != nil {
		log.Printf("[chat][stackwalls_asset] path=%s err=%v", h.cfg.StackWallsPath, err)
		msg := readMsg
		if os.IsNotExist(err) {
			msg = missingMsg
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return "", err
	}
	return string(data), nil
}

// stackWallsAssetText is the best-effort read used by the freelancer
// variant; a missing asset just logs.
func (h *Handler) stackWallsAssetText() string {
	data, err := os.ReadFile(h.cfg.StackWallsPath)
	if err != nil {
		log.Printf("[chat][stackwalls_asset] path=%s err=%v continuing without it", h.cfg.StackWallsPath, err)
		return ""
	}
	if strings.TrimSpace(string(data)) == "" {
		return ""
	}
	return string(data)
}
