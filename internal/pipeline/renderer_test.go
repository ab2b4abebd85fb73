package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kirthika85/appealgen/internal/model"
)

func sampleReport() *model.RunReport {
	return &model.RunReport{
		GeneratedAt: time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
		Patient:     model.PatientProfile{Name: "Jane Doe", PolicyNumber: "PX-99812"},
		Outcomes: []model.AppealOutcome{
			{ClaimNumber: "1001", ClaimDate: "2024-01-05", PatientName: "Jane Doe", Status: model.StatusSent},
			{ClaimNumber: "1004", ClaimDate: "2024-01-10", PatientName: "Jane Doe", Status: model.StatusNotSent, Reason: "No matching denial found"},
		},
		Letters:     map[string]string{"1001": "Dear Claims Review Department,\n..."},
		ClaimsFound: 2,
		SentCount:   1,
	}
}

func TestRenderCSV(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	if err := r.RenderCSV(sampleReport(), "results.csv"); err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "results.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Claim Number" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "1001" || rows[1][3] != "sent" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][4] != "No matching denial found" {
		t.Errorf("rejected row reason = %q", rows[2][4])
	}
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	if err := r.RenderJSON(sampleReport(), "report.json"); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.RunReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ClaimsFound != 2 || decoded.SentCount != 1 {
		t.Errorf("counts = %d/%d", decoded.ClaimsFound, decoded.SentCount)
	}
	if len(decoded.Outcomes) != 2 {
		t.Errorf("outcomes = %d", len(decoded.Outcomes))
	}
	// Letter bodies stay out of the report.
	if strings.Contains(string(data), "Dear Claims Review") {
		t.Error("letter text leaked into the JSON report")
	}
}

func TestRenderLetters(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	paths, err := r.RenderLetters(sampleReport())
	if err != nil {
		t.Fatalf("RenderLetters: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(paths))
	}

	want := filepath.Join(dir, "appeal_letter_claim_1001.txt")
	if paths[0] != want {
		t.Errorf("path = %q, want %q", paths[0], want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Dear Claims Review Department") {
		t.Errorf("letter content = %q", data)
	}
}

func TestRenderLetters_NoneSent(t *testing.T) {
	r := NewRenderer(t.TempDir())
	report := sampleReport()
	report.Letters = nil

	paths, err := r.RenderLetters(report)
	if err != nil {
		t.Fatalf("RenderLetters: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, want none", paths)
	}
}
