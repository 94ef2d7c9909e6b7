package marketing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referencePage = `<html>
<head>
<title>Acme Consulting</title>
<meta name="description" content="Strategy for growing brands.">
</head>
<body>
<nav>
<a href="/about">About</a>
<a href="/services">Services</a>
<a href="/contact"> </a>
</nav>
<h1>Acme Consulting</h1>
<h2>What we do</h2>
</body>
</html>`

func TestFetchReferenceSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(referencePage))
	}))
	defer srv.Close()

	result, err := FetchReferenceSite(context.Background(), FetchReferenceInput{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Acme Consulting", result["title"])
	assert.Equal(t, "Strategy for growing brands.", result["description"])
	assert.Equal(t, []string{"Acme Consulting", "What we do"}, result["headings"])
	// Links without visible text are skipped.
	assert.Equal(t, []string{"About (/about)", "Services (/services)"}, result["nav_links"])
}

func TestFetchReferenceSiteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result, err := FetchReferenceSite(context.Background(), FetchReferenceInput{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
}
