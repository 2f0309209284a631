package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/markusmobius/go-trafilatura"
	"github.com/xuri/excelize/v2"
	"rsc.io/pdf"
)

// documentReaders maps upload extensions to format-specific readers.
// Dispatch happens here; unknown extensions fail with
// ErrUnsupportedType before any reader runs.
var documentReaders = map[string]func(path string) (string, error){
	"pdf":  readPDF,
	"doc":  readWord,
	"docx": readWord,
	"txt":  readPlainText,
	"csv":  readDelimited,
	"xls":  readSpreadsheet,
	"xlsx": readSpreadsheet,
	"html": readMarkup,
}

// DocumentReader turns a saved upload into plain text.
type DocumentReader struct {
	// MaxChars bounds PDF extraction so a huge scan can't blow the
	// prompt budget. <= 0 falls back to a sane default.
	MaxChars int
}

func (r *DocumentReader) Extract(ctx context.Context, doc Document) (string, error) {
	read, ok := documentReaders[doc.Ext]
	if !ok {
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedType, doc.Ext)
	}
	if err := ctx.Err(); err != nil {
		return "", wrapCtx(err)
	}
	var text string
	var err error
	if doc.Ext == "pdf" {
		text, err = readPDFMax(doc.Path, r.MaxChars)
	} else {
		text, err = read(doc.Path)
	}
	if err != nil {
		return "", &ExtractionError{Kind: doc.Kind(), Key: doc.Key(), Err: wrapCtx(err)}
	}
	return text, nil
}

func readPDF(path string) (string, error) { return readPDFMax(path, 0) }

// readPDFMax extracts text page by page up to maxChars. Some PDFs have
// no text layer; those fall back to the raw content stream with NUL
// bytes blanked so the result is still usable as prompt text.
func readPDFMax(path string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = 12000
	}
	r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	total := r.NumPage()
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		for _, t := range p.Content().Text {
			buf.WriteString(t.S)
		}
		buf.WriteString("\n\n")
		if buf.Len() >= maxChars {
			return buf.String()[:maxChars], nil
		}
	}
	if buf.Len() == 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		if len(data) == 0 {
			return "", fmt.Errorf("pdf appears empty")
		}
		if len(data) > maxChars {
			data = data[:maxChars]
		}
		return string(bytes.ReplaceAll(data, []byte{'\x00'}, []byte{' '})), nil
	}
	return buf.String(), nil
}

func readWord(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readDelimited(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	var lines []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, strings.Join(record, ", "))
	}
	return strings.Join(lines, "\n"), nil
}

func readSpreadsheet(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sheet)
		sb.WriteString("\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ", "))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func readMarkup(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	pageURL, _ := url.Parse("file:///" + url.PathEscape(path))
	return readableText(f, pageURL)
}

// readableText strips script/style markup and returns the visible
// text of an HTML document. Shared with the web-page extractor.
func readableText(r io.Reader, pageURL *url.URL) (string, error) {
	result, err := trafilatura.Extract(r, trafilatura.Options{OriginalURL: pageURL})
	if err != nil {
		return "", err
	}
	if result == nil || result.ContentText == "" {
		return "", fmt.Errorf("no visible text extracted")
	}
	return result.ContentText, nil
}
