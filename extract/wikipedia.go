package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultWikiAPI = "https://en.wikipedia.org/w/api.php"

// WikiClient looks up encyclopedia articles by exact title through the
// MediaWiki Action API. Three outcomes: body text, AmbiguityError with
// the candidate titles, or NotFoundError.
type WikiClient struct {
	Client  *http.Client
	BaseURL string
}

type wikiResponse struct {
	Query struct {
		Pages map[string]struct {
			Missing   *string `json:"missing"`
			Title     string  `json:"title"`
			Extract   string  `json:"extract"`
			PageProps struct {
				Disambiguation *string `json:"disambiguation"`
			} `json:"pageprops"`
			Links []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
}

func (w *WikiClient) Extract(ctx context.Context, topic Topic) (string, error) {
	base := w.BaseURL
	if base == "" {
		base = defaultWikiAPI
	}
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"redirects":   {"1"},
		"prop":        {"extracts|pageprops|links"},
		"explaintext": {"1"},
		"plnamespace": {"0"},
		"pllimit":     {"20"},
		"titles":      {topic.Title},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return "", &FetchError{URL: base, Err: err}
	}
	resp, err := w.client().Do(req)
	if err != nil {
		return "", &FetchError{URL: base, Err: wrapCtx(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: base, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	var parsed wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ExtractionError{Kind: topic.Kind(), Key: topic.Key(), Err: err}
	}
	for id, page := range parsed.Query.Pages {
		if id == "-1" || page.Missing != nil {
			return "", &NotFoundError{Title: topic.Title}
		}
		if page.PageProps.Disambiguation != nil {
			options := make([]string, 0, len(page.Links))
			for _, l := range page.Links {
				options = append(options, l.Title)
			}
			return "", &AmbiguityError{Title: topic.Title, Options: options}
		}
		if page.Extract == "" {
			return "", &ExtractionError{Kind: topic.Kind(), Key: topic.Key(),
				Err: fmt.Errorf("article %q has no extractable text", page.Title)}
		}
		return page.Extract, nil
	}
	return "", &NotFoundError{Title: topic.Title}
}

func (w *WikiClient) client() *http.Client {
	if w.Client != nil {
		return w.Client
	}
	return http.DefaultClient
}
