package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ReportName is the run report written alongside the generated pages.
const ReportName = "report.json"

// Report summarizes one generation run.
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	OutputDir   string       `json:"output_dir"`
	Format      string       `json:"format"`
	Files       []FileReport `json:"files,omitempty"`
}

// FileReport records what happened to a single source file. Output is empty
// when no page was written, either because the file holds no documentation
// blocks or because Error is set.
type FileReport struct {
	Source   string   `json:"source"`
	Output   string   `json:"output,omitempty"`
	Blocks   int      `json:"blocks"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Documented counts the files that produced a page.
func (r *Report) Documented() int {
	n := 0
	for _, f := range r.Files {
		if f.Output != "" {
			n++
		}
	}
	return n
}

// WarningCount totals the scan warnings across all files.
func (r *Report) WarningCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Warnings)
	}
	return n
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
