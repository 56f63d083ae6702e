package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/streamseed/internal/seeder"
	"gopkg.in/yaml.v3"
)

// Report is the on-disk form of a run summary.
type Report struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Seed       uint64        `json:"seed" yaml:"seed"`
	CommitMode string        `json:"commit_mode" yaml:"commit_mode"`
	StartedAt  string        `json:"started_at" yaml:"started_at"`
	Duration   string        `json:"duration" yaml:"duration"`
	TotalRows  int           `json:"total_rows" yaml:"total_rows"`
	Tables     []TableReport `json:"tables" yaml:"tables"`
}

type TableReport struct {
	Table string `json:"table" yaml:"table"`
	Rows  int    `json:"rows" yaml:"rows"`
}

func NewReport(summary *seeder.Summary) Report {
	r := Report{
		RunID:      summary.RunID,
		Seed:       summary.Seed,
		CommitMode: summary.CommitMode,
		StartedAt:  summary.StartedAt.Format(time.RFC3339),
		Duration:   summary.Duration.Round(time.Millisecond).String(),
		Tables:     make([]TableReport, 0, len(summary.Tables)),
	}
	for _, tc := range summary.Tables {
		r.Tables = append(r.Tables, TableReport{Table: tc.Table, Rows: tc.Rows})
		r.TotalRows += tc.Rows
	}
	return r
}

// WriteReport writes summary to path. A .json extension selects JSON; any
// other extension is written as YAML.
func WriteReport(summary *seeder.Summary, path string) error {
	report := NewReport(summary)

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	default:
		data, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read report: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return r, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return r, nil
}
