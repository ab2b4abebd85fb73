package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kirthika85/appealgen/internal/model"
)

// Renderer writes run artifacts: a results CSV, a JSON report, and
// one letter file per sent appeal.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer rooted at the given output directory
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// RenderCSV writes the per-claim results table
func (r *Renderer) RenderCSV(report *model.RunReport, filename string) error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(r.dir, filename))
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Claim Number", "Claim Date", "Patient Name", "Status", "Reason"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, o := range report.Outcomes {
		row := []string{o.ClaimNumber, o.ClaimDate, o.PatientName, string(o.Status), o.Reason}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// RenderJSON writes the full run report
func (r *Renderer) RenderJSON(report *model.RunReport, filename string) error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(r.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderLetters writes one text file per generated letter, named by
// claim number. Returns the paths written.
func (r *Renderer) RenderLetters(report *model.RunReport) ([]string, error) {
	if len(report.Letters) == 0 {
		return nil, nil
	}
	if err := r.ensureDir(); err != nil {
		return nil, err
	}

	var paths []string
	// Walk outcomes so files come out in first-seen claim order.
	for _, o := range report.Outcomes {
		letter, ok := report.Letters[o.ClaimNumber]
		if !ok {
			continue
		}
		path := filepath.Join(r.dir, fmt.Sprintf("appeal_letter_claim_%s.txt", o.ClaimNumber))
		if err := os.WriteFile(path, []byte(letter), 0o644); err != nil {
			return paths, fmt.Errorf("write letter for claim %s: %w", o.ClaimNumber, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RenderSummary prints a human-readable results table to stdout
func (r *Renderer) RenderSummary(report *model.RunReport) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println("  Appeal Processing Results")
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("  Patient:       %s\n", report.Patient.Name)
	fmt.Printf("  Claims found:  %d\n", report.ClaimsFound)
	fmt.Printf("  Letters sent:  %d\n", report.SentCount)
	fmt.Println("───────────────────────────────────────────────────")

	if len(report.Outcomes) == 0 {
		fmt.Println("  No claims found in the benefits statement.")
		fmt.Println("═══════════════════════════════════════════════════")
		return
	}

	for _, o := range report.Outcomes {
		marker := "✗"
		detail := o.Reason
		if o.Status == model.StatusSent {
			marker = "✓"
			detail = "Appeal letter generated"
		}
		fmt.Printf("  %s Claim %-12s %s\n", marker, o.ClaimNumber, detail)
	}
	fmt.Println("═══════════════════════════════════════════════════")
}

func (r *Renderer) ensureDir() error {
	if strings.TrimSpace(r.dir) == "" {
		return fmt.Errorf("output directory not set")
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
