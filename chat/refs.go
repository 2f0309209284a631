package chat

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stackwalls-backend/cache"
	"stackwalls-backend/extract"
)

// allowedExtensions are the upload types the endpoints accept. Any
// other extension is rejected per file, logged and skipped, without
// aborting the request.
var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "txt": true, "csv": true,
	"xls": true, "xlsx": true, "html": true, "mp3": true, "mp4": true,
	"wav": true, "avi": true, "mkv": true, "flv": true, "mov": true,
}

// reference is one successfully extracted source, keyed for the
// summary cache.
type reference struct {
	Kind string
	Key  string
	Text string
}

func texts(refs []reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Text
	}
	return out
}

// gatherReferences extracts text for every declared reference: media
// links, one encyclopedia title, optional web links, and up to two
// uploads. Results are memoized per source key. A failed reference is
// logged and dropped; the request proceeds with whatever remains.
func (h *Handler) gatherReferences(c *gin.Context) []reference {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.ExtractTimeout)
	defer cancel()

	var refs []reference
	add := func(kind, key string, text string, err error) {
		if err != nil {
			log.Printf("[chat][ref_skip] kind=%s key=%q err=%v", kind, key, err)
			return
		}
		refs = append(refs, reference{Kind: kind, Key: key, Text: text})
	}

	for i := 1; i <= 2; i++ {
		link := c.PostForm(fmt.Sprintf("youtube_link%d", i))
		if link == "" {
			continue
		}
		text, err := h.caches.GetOrCompute(ctx, cache.Transcripts, link, func(ctx context.Context) (string, error) {
			return h.media.Extract(ctx, extract.Media{ID: link})
		})
		add("media", link, text, err)
	}

	if title := c.PostForm("wikipedia_title1"); title != "" {
		text, err := h.caches.GetOrCompute(ctx, cache.Topics, title, func(ctx context.Context) (string, error) {
			return h.topics.Extract(ctx, extract.Topic{Title: title})
		})
		add("topic", title, text, err)
	}

	for i := 1; i <= 2; i++ {
		link := c.PostForm(fmt.Sprintf("web_link%d", i))
		if link == "" {
			continue
		}
		text, err := h.caches.GetOrCompute(ctx, cache.Pages, link, func(ctx context.Context) (string, error) {
			return h.links.Extract(ctx, extract.Link{URL: link})
		})
		add("link", link, text, err)
	}

	for i := 1; i <= 2; i++ {
		fh, err := c.FormFile(fmt.Sprintf("uploaded_file%d", i))
		if err != nil || fh == nil {
			continue
		}
		name := filepath.Base(fh.Filename)
		ext := extract.FileExt(name)
		if !allowedExtensions[ext] {
			log.Printf("[chat][ref_skip] kind=upload key=%q reason=unsupported_type", name)
			continue
		}
		path := filepath.Join(h.cfg.UploadsDir, uuid.NewString()+"."+ext)
		if err := c.SaveUploadedFile(fh, path); err != nil {
			log.Printf("[chat][ref_skip] kind=upload key=%q err=%v", name, err)
			continue
		}
		if extract.AudioExts[ext] {
			// Uploaded media is kept on disk after transcription; the
			// user may reference it again.
			text, err := h.caches.GetOrCompute(ctx, cache.Transcripts, name, func(ctx context.Context) (string, error) {
				return h.media.Extract(ctx, extract.Media{ID: name, Path: path})
			})
			add("media", name, text, err)
			continue
		}
		text, err := h.caches.GetOrCompute(ctx, cache.Documents, name, func(ctx context.Context) (string, error) {
			return h.docs.Extract(ctx, extract.Document{Name: name, Ext: ext, Path: path})
		})
		add("document", name, text, err)
	}

	return refs
}
