package blogger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const researchPage = `<html>
<head><title>Understanding Goroutines</title></head>
<body>
<h1>Understanding Goroutines</h1>
<h2>Scheduling</h2>
<p>Goroutines are lightweight threads managed by the runtime.</p>
<p></p>
<p>The scheduler multiplexes them onto OS threads.</p>
</body>
</html>`

func TestResearchTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(researchPage))
	}))
	defer srv.Close()

	extract, err := ResearchTopic(context.Background(), ResearchInput{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "Understanding Goroutines", extract.Title)
	assert.Equal(t, []string{"Understanding Goroutines", "Scheduling"}, extract.Headings)
	// Empty paragraphs are dropped.
	assert.Equal(t, []string{
		"Goroutines are lightweight threads managed by the runtime.",
		"The scheduler multiplexes them onto OS threads.",
	}, extract.Paragraphs)
}

func TestResearchTopicHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := ResearchTopic(context.Background(), ResearchInput{URL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load page")
}
