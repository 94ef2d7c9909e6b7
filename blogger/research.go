package blogger

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type ResearchInput struct {
	URL string `json:"url" jsonschema_description:"The web page to fetch and summarize for research" jsonschema:"required"`
}

type PageExtract struct {
	Title      string   `json:"title"`
	Headings   []string `json:"headings"`
	Paragraphs []string `json:"paragraphs"`
}

// maxParagraphs caps how much page text is handed back to the model.
const maxParagraphs = 40

// ResearchTopic fetches a web page and extracts its title, headings and
// paragraph text so the planner and writer can ground their output in real
// references.
func ResearchTopic(ctx context.Context, in ResearchInput) (PageExtract, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
	if err != nil {
		return PageExtract{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return PageExtract{}, fmt.Errorf("error fetching the page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PageExtract{}, fmt.Errorf("failed to load page: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return PageExtract{}, fmt.Errorf("error parsing HTML: %w", err)
	}

	var extract PageExtract
	extract.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("h1, h2, h3").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			extract.Headings = append(extract.Headings, text)
		}
	})
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			extract.Paragraphs = append(extract.Paragraphs, text)
		}
		return len(extract.Paragraphs) < maxParagraphs
	})
	return extract, nil
}
