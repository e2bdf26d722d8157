package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/jslate/intake/internal/report"
	"github.com/jslate/intake/internal/schemas"
	"github.com/jslate/intake/pkg/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRenderer(t *testing.T) (report.Renderer, storage.System) {
	t.Helper()

	reports, err := storage.New(&storage.Config{Root: t.TempDir()}, discardLogger())
	if err != nil {
		t.Fatalf("reports storage: %v", err)
	}
	return report.New(reports, discardLogger()), reports
}

func payslipData(t *testing.T) json.RawMessage {
	t.Helper()

	doc := map[string]any{
		"employee_name":       "John Doe",
		"payroll_period":      "2024-01",
		"gross_salary_period": 5000.0,
		"net_salary_paid":     3550.0,
		"iban":                "NL02ABNA0123456789",
		"company_car":         false,
		"written_contract":    true,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestRenderWritesPDF(t *testing.T) {
	renderer, reports := newRenderer(t)

	path, err := renderer.Render(context.Background(), "job-123", schemas.TypePayslip, payslipData(t))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasSuffix(path, "job-123.pdf") {
		t.Errorf("path = %q, want <root>/job-123.pdf", path)
	}

	exists, err := reports.Exists(context.Background(), "job-123.pdf")
	if err != nil || !exists {
		t.Fatalf("report artifact missing: exists=%v err=%v", exists, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(content), "%PDF") {
		t.Errorf("report does not start with a PDF header: %q", content[:8])
	}
}

func TestRenderContractReport(t *testing.T) {
	renderer, _ := newRenderer(t)

	data, _ := json.Marshal(map[string]any{
		"employee_full_name":       "Jane Doe",
		"employer_name":            "Tech Company B.V.",
		"job_title":                "Engineer",
		"gross_monthly_salary_eur": 5000.0,
		"contract_type":            "indefinite",
	})

	if _, err := renderer.Render(context.Background(), "job-456", schemas.TypeEmploymentContract, data); err != nil {
		t.Fatalf("render failed: %v", err)
	}
}

func TestRenderUnknownDocumentType(t *testing.T) {
	renderer, _ := newRenderer(t)

	_, err := renderer.Render(context.Background(), "job-789", "invoice", payslipData(t))
	if !errors.Is(err, report.ErrRenderFailed) {
		t.Errorf("error = %v, want ErrRenderFailed", err)
	}
}

func TestRenderInvalidData(t *testing.T) {
	renderer, _ := newRenderer(t)

	_, err := renderer.Render(context.Background(), "job-000", schemas.TypePayslip, json.RawMessage("not json"))
	if !errors.Is(err, report.ErrRenderFailed) {
		t.Errorf("error = %v, want ErrRenderFailed", err)
	}
}
