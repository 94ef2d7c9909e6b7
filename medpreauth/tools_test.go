package medpreauth

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPdfTextRoundTrip(t *testing.T) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 5, "Pre-Authorization Decision: APPROVED", "", "L", false)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	text, err := pdfText(buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "APPROVED")
}

func TestPdfTextRejectsGarbage(t *testing.T) {
	_, err := pdfText([]byte("not a pdf at all"))
	assert.Error(t, err)
}
