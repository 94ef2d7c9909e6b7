// Package marketing implements the marketing agency website creator agent.
package marketing

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
)

// maxReferenceLinks bounds how much of a reference site is handed to the
// model.
const maxReferenceLinks = 30

type FetchReferenceInput struct {
	URL string `json:"url" jsonschema_description:"The reference website to scrape for structure and tone" jsonschema:"required"`
}

// FetchReferenceSite scrapes a reference site's headings, navigation and
// meta description so the generated website can echo its structure.
func FetchReferenceSite(ctx context.Context, in FetchReferenceInput) (map[string]any, error) {
	var (
		title       string
		description string
		headings    []string
		navLinks    []string
		visitErr    error
	)

	c := colly.NewCollector()

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`meta[name="description"]`, func(e *colly.HTMLElement) {
		if description == "" {
			description = e.Attr("content")
		}
	})
	c.OnHTML("h1, h2, h3", func(e *colly.HTMLElement) {
		if text := strings.TrimSpace(e.Text); text != "" {
			headings = append(headings, text)
		}
	})
	c.OnHTML("nav a[href]", func(e *colly.HTMLElement) {
		if len(navLinks) >= maxReferenceLinks {
			return
		}
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return
		}
		navLinks = append(navLinks, fmt.Sprintf("%s (%s)", text, e.Attr("href")))
	})
	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(in.URL); err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	c.Wait()
	if visitErr != nil {
		return map[string]any{"status": "error", "error": visitErr.Error()}, nil
	}

	return map[string]any{
		"status":      "success",
		"title":       title,
		"description": description,
		"headings":    headings,
		"nav_links":   navLinks,
	}, nil
}
