// Package medpreauth implements a medical pre-authorization agent: it
// extracts treatment, policy and medical-record details from user-provided
// PDF documents and produces an accept/reject decision report.
package medpreauth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// Tools bundles the model and storage access the pre-authorization agents
// share.
type Tools struct {
	storage *storage.Client
	llm     core.LLM
	cfg     *config.Config
}

func NewTools(ctx context.Context, cfg *config.Config, llm core.LLM) (*Tools, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Tools{storage: client, llm: llm, cfg: cfg}, nil
}

type TreatmentNameInput struct {
	UserQuery string `json:"user_query" jsonschema_description:"The user's pre-authorization request text" jsonschema:"required"`
}

// ExtractTreatmentName pulls the treatment name out of a free-form user
// request. Returns "None" when no specific treatment is mentioned.
func (t *Tools) ExtractTreatmentName(ctx context.Context, in TreatmentNameInput) (map[string]any, error) {
	instruction := fmt.Sprintf(treatmentNamePrompt, in.UserQuery)
	name, err := core.GenerateText(ctx, t.llm, t.cfg.FlashModel, instruction, in.UserQuery, nil)
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	return map[string]any{"status": "success", "treatment_name": strings.TrimSpace(name)}, nil
}

type PolicyInput struct {
	PolicyFile    string `json:"policy_file" jsonschema_description:"Name of the insurance policy PDF in the policy bucket" jsonschema:"required"`
	TreatmentName string `json:"treatment_name" jsonschema_description:"The treatment to find coverage details for" jsonschema:"required"`
}

// ExtractPolicyInformation reads the insurance policy PDF from the policy
// bucket and summarizes every clause relevant to the treatment. Document
// read failures propagate and abort the run.
func (t *Tools) ExtractPolicyInformation(ctx context.Context, in PolicyInput) (map[string]any, error) {
	text, err := t.readPDF(ctx, t.cfg.PolicyBucket, in.PolicyFile)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(policyExtractionPrompt,
		in.TreatmentName, in.TreatmentName, in.TreatmentName, text)
	summary, err := core.GenerateText(ctx, t.llm, t.cfg.FlashModel, "", prompt, nil)
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": "success", "policy_details": summary}, nil
}

type MedicalInput struct {
	MedicalReportFile string `json:"medical_report_file" jsonschema_description:"Name of the medical report PDF in the policy bucket" jsonschema:"required"`
	TreatmentName     string `json:"treatment_name" jsonschema_description:"The treatment to find medical details for" jsonschema:"required"`
}

// ExtractMedicalDetails reads the medical report PDF and summarizes the
// diagnosis, plans and outcomes relevant to the treatment.
func (t *Tools) ExtractMedicalDetails(ctx context.Context, in MedicalInput) (map[string]any, error) {
	text, err := t.readPDF(ctx, t.cfg.PolicyBucket, in.MedicalReportFile)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(medicalExtractionPrompt,
		in.TreatmentName, in.TreatmentName, in.TreatmentName, text)
	summary, err := core.GenerateText(ctx, t.llm, t.cfg.FlashModel, "", prompt, nil)
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": "success", "medical_details": summary}, nil
}

type StorePDFInput struct {
	PDFText string `json:"pdf_text" jsonschema_description:"The decision report text to render as a PDF" jsonschema:"required"`
}

// StorePDF renders the decision report to PDF and uploads it to the report
// bucket. Render and upload failures propagate; the model cannot recover
// from a missing report.
func (t *Tools) StorePDF(ctx context.Context, in StorePDFInput) (map[string]any, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(in.PDFText, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		doc.MultiCell(0, 5, paragraph, "", "L", false)
		doc.Ln(3)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report PDF: %w", err)
	}

	object := fmt.Sprintf("pre_authorization_report_%s.pdf", time.Now().Format("20060102_150405"))
	w := t.storage.Bucket(t.cfg.ReportBucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return nil, fmt.Errorf("upload report to gs://%s/%s: %w", t.cfg.ReportBucket, object, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload report to gs://%s/%s: %w", t.cfg.ReportBucket, object, err)
	}
	return map[string]any{
		"status": "success",
		"path":   fmt.Sprintf("gs://%s/%s", t.cfg.ReportBucket, object),
	}, nil
}

// readPDF downloads a PDF object from GCS and extracts its plain text.
func (t *Tools) readPDF(ctx context.Context, bucket, object string) (string, error) {
	r, err := t.storage.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read gs://%s/%s: %w", bucket, object, err)
	}
	return pdfText(data)
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse PDF: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract PDF text: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}
	return sb.String(), nil
}
