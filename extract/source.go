package extract

import "strings"

// Source is one externally supplied reference. Extraction and caching
// are keyed by the variant's identity field, so a Source never changes
// after construction.
type Source interface {
	// Key returns the cache identity for this source.
	Key() string
	// Kind names the variant for logs.
	Kind() string
}

// Document is an uploaded file already saved under the uploads dir.
type Document struct {
	Name string // client-supplied file name, cache key
	Ext  string // lowercased extension without the dot
	Path string // local path the upload was saved to
}

func (d Document) Key() string  { return d.Name }
func (d Document) Kind() string { return "document" }

// Topic is an encyclopedia article referenced by exact title.
type Topic struct {
	Title string
}

func (t Topic) Key() string  { return t.Title }
func (t Topic) Kind() string { return "topic" }

// Link is a web page to scrape for visible text.
type Link struct {
	URL string
}

func (l Link) Key() string  { return l.URL }
func (l Link) Kind() string { return "link" }

// Media is an audio or video asset to transcribe. Path is empty for
// link-derived media; the extractor downloads it first. DeleteAfter
// controls removal of the local asset once transcribed: on for
// downloads, off for user uploads, which may be reused.
type Media struct {
	ID          string // media link or uploaded file name, cache key
	Path        string
	DeleteAfter bool
}

func (m Media) Key() string  { return m.ID }
func (m Media) Kind() string { return "media" }

// AudioExts are the upload extensions routed to transcription rather
// than document parsing.
var AudioExts = map[string]bool{
	"mp3": true, "mp4": true, "wav": true, "avi": true,
	"mkv": true, "flv": true, "mov": true,
}

// FileExt returns the lowercased extension of name without the dot,
// or "" when name has none.
func FileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
