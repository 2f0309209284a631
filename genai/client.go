package genai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the external generation API. Provider failures never
// escape GenerateOrFallback; callers that need the raw error use
// Generate directly.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model, timeout: timeout}
}

// Generate executes one completion for the fully assembled prompt and
// returns the trimmed text. Empty output comes back as ("", nil).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("generation timed out after %s: %w", c.timeout, err)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateOrFallback enforces the uniform answer contract: provider
// failure returns errFallback, empty output returns emptyFallback, and
// the cause is logged either way. The caller always gets an answer.
func (c *Client) GenerateOrFallback(ctx context.Context, prompt, errFallback, emptyFallback string) string {
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[genai][generate_failed] model=%s err=%v", c.model, err)
		return errFallback
	}
	if text == "" {
		log.Printf("[genai][empty_response] model=%s", c.model)
		return emptyFallback
	}
	return text
}

// Transcribe runs the speech-to-text pass over a local audio asset.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Summarize produces a detailed summary of content, labeled with the
// media title and author when known.
func (c *Client) Summarize(ctx context.Context, content, title, author string, wordLimit, maxChars int) (string, error) {
	if maxChars > 0 && len(content) > maxChars {
		content = content[:maxChars]
	}
	prompt := fmt.Sprintf(
		"You are Dev, a professional and creative summarizer. "+
			"Carefully review the following content and produce a detailed, thorough summary of approximately %d words:\n\n"+
			"Title: %s\nAuthor: %s\n\n%s\n\n"+
			"Highlight key points in a concise, well-structured manner.",
		wordLimit, title, author, content)
	return c.Generate(ctx, prompt)
}

// MergeSummaries combines partial summaries into one refined summary.
func (c *Client) MergeSummaries(ctx context.Context, summaries ...string) (string, error) {
	var sb strings.Builder
	for i, s := range summaries {
		fmt.Fprintf(&sb, "Summary %d:\n%s\n\n", i+1, s)
	}
	prompt := fmt.Sprintf(
		"You are Dev, a skilled summarizer. Combine the partial summaries below into one cohesive, "+
			"thorough, and refined summary:\n\n%sFinal summary:", sb.String())
	return c.Generate(ctx, prompt)
}

// MergeAnswers combines partial answers from different sources into a
// single coherent answer to question. Blank partials are dropped.
func (c *Client) MergeAnswers(ctx context.Context, question string, answers ...string) (string, error) {
	valid := make([]string, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a) != "" {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return "No valid information available to answer the question.", nil
	}
	var sb strings.Builder
	for i, a := range valid {
		fmt.Fprintf(&sb, "Answer %d:\n%s\n\n", i+1, a)
	}
	prompt := fmt.Sprintf(
		"You are Dev, a dedicated assistant. The user asked:\n%s\n\n"+
			"Below are partial answers from various sources:\n%s"+
			"Combine them into a single, coherent, and thorough answer:", question, sb.String())
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "No valid information to merge.", nil
	}
	return text, nil
}

func (c *Client) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
