package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Transcriber is the speech-to-text pass over a local audio asset.
// Satisfied by genai.Client.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// MediaMeta labels a media reference for prompts and summaries.
type MediaMeta struct {
	Title  string `json:"title"`
	Author string `json:"author_name"`
}

// MediaExtractor turns an audio or video asset into transcript text.
// Link-derived media is probed against the optional transcript service
// first, then downloaded and transcribed; the downloaded asset is
// always removed afterwards. Uploaded media is transcribed in place.
type MediaExtractor struct {
	Transcriber   Transcriber
	Client        *http.Client
	TranscriptURL string // optional external transcript service
	WorkDir       string
}

func (m *MediaExtractor) Extract(ctx context.Context, med Media) (string, error) {
	path := med.Path
	deleteAfter := med.DeleteAfter
	if path == "" {
		if txt, ok := m.fetchRemoteTranscript(ctx, med.ID); ok {
			return txt, nil
		}
		downloaded, err := m.downloadAudio(ctx, med.ID)
		if err != nil {
			return "", err
		}
		path = downloaded
		deleteAfter = true
	}
	if deleteAfter {
		defer func() {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Printf("[media][cleanup] path=%s err=%v", path, err)
			}
		}()
	}
	text, err := m.Transcriber.Transcribe(ctx, path)
	if err != nil {
		return "", &ExtractionError{Kind: med.Kind(), Key: med.Key(), Err: wrapCtx(err)}
	}
	return text, nil
}

// fetchRemoteTranscript asks the configured transcript service for a
// ready-made transcript. Best effort; any failure falls through to the
// download path.
func (m *MediaExtractor) fetchRemoteTranscript(ctx context.Context, mediaURL string) (string, bool) {
	if m.TranscriptURL == "" {
		return "", false
	}
	payload, _ := json.Marshal(map[string]string{"video_url": mediaURL})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.TranscriptURL, bytes.NewReader(payload))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.client().Do(req)
	if err != nil {
		log.Printf("[media][transcript_probe] url=%s err=%v", mediaURL, err)
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	var body struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Transcript == "" {
		return "", false
	}
	return body.Transcript, true
}

func (m *MediaExtractor) downloadAudio(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", &FetchError{URL: mediaURL, Err: err}
	}
	resp, err := m.client().Do(req)
	if err != nil {
		return "", &FetchError{URL: mediaURL, Err: wrapCtx(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: mediaURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	dir := m.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+".mp4")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", &FetchError{URL: mediaURL, Err: wrapCtx(err)}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Metadata fetches oEmbed-style title/author for a media link.
// Failures are non-fatal; callers get zero values.
func (m *MediaExtractor) Metadata(ctx context.Context, mediaURL string) MediaMeta {
	endpoint := "https://www.youtube.com/oembed?format=json&url=" + url.QueryEscape(mediaURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return MediaMeta{}
	}
	resp, err := m.client().Do(req)
	if err != nil {
		log.Printf("[media][metadata] url=%s err=%v", mediaURL, err)
		return MediaMeta{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return MediaMeta{}
	}
	var meta MediaMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return MediaMeta{}
	}
	return meta
}

func (m *MediaExtractor) client() *http.Client {
	if m.Client != nil {
		return m.Client
	}
	return http.DefaultClient
}
