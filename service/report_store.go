package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/plaincheck/domain"
)

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// JSONReportStore persists reports as JSON files
type JSONReportStore struct{}

// NewJSONReportStore creates a new JSON report store
func NewJSONReportStore() *JSONReportStore {
	return &JSONReportStore{}
}

// Save replaces the file at path with the report
func (s *JSONReportStore) Save(report *domain.Report, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, report); err != nil {
		return domain.NewReportError("failed to encode report", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewReportError(fmt.Sprintf("failed to create directory for %s", path), err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return domain.NewReportError(fmt.Sprintf("failed to write report %s", path), err)
	}
	return nil
}

// Load reads a report written by Save
func (s *JSONReportStore) Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewReportError(fmt.Sprintf("failed to read report %s", path), err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, domain.NewReportError(fmt.Sprintf("invalid report %s", path), err)
	}

	normalizeReport(&report)
	return &report, nil
}

// normalizeReport fills in buckets missing from hand-edited or older reports
func normalizeReport(report *domain.Report) {
	if report.Issues == nil {
		report.Issues = domain.NewScanResults()
	}
	issues := report.Issues
	if issues.BannedWords == nil {
		issues.BannedWords = []domain.BannedWordIssue{}
	}
	if issues.ComplexPhrases == nil {
		issues.ComplexPhrases = []domain.ComplexPhraseIssue{}
	}
	if issues.PassiveVoice == nil {
		issues.PassiveVoice = []domain.PassiveVoiceIssue{}
	}
	if issues.LongSentences == nil {
		issues.LongSentences = []domain.LongSentenceIssue{}
	}
}
