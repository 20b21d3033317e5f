package domain

import (
	"context"
	"io"
)

// ExtractionMode selects how text fragments are pulled out of source files
type ExtractionMode string

const (
	// ExtractionModeRegex runs the markup, string and template scans.
	// Fragments may overlap between scans.
	ExtractionModeRegex ExtractionMode = "regex"

	// ExtractionModeSyntax walks a tree-sitter parse tree
	ExtractionModeSyntax ExtractionMode = "syntax"
)

// ScanRequest represents a request to scan a source tree
type ScanRequest struct {
	// Root directory to scan
	Root string

	// File selection
	Extensions       []string
	ExcludeDirs      []string
	RespectGitignore bool

	// Files is filled in by the walker before the request reaches the
	// scan service
	Files []string

	// Mode selects the extractor
	Mode ExtractionMode

	// Output configuration
	ReportPath   string
	HTMLPath     string
	WriteHTML    bool
	OutputWriter io.Writer
}

// ScanResponse is the outcome of a scan
type ScanResponse struct {
	Report     *Report
	ReportPath string
	HTMLPath   string

	// SkippedEntries counts files or directories that could not be read
	SkippedEntries int
}

// RenderRequest represents a request to render a persisted report as HTML
type RenderRequest struct {
	ReportPath   string
	HTMLPath     string
	OutputWriter io.Writer
}

// Extractor pulls text fragments out of file content
type Extractor interface {
	Extract(content, filePath string) []TextFragment
}

// RuleEngine evaluates fragments and appends issues to an accumulator
type RuleEngine interface {
	Evaluate(fragment TextFragment, results *ScanResults)
}

// FileReader reads source files for the walker
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// ScanService walks a tree and evaluates every fragment
type ScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResults, error)
}

// ReportStore persists and loads reports
type ReportStore interface {
	Save(report *Report, path string) error
	Load(path string) (*Report, error)
}

// ReportFormatter writes a human-readable report
type ReportFormatter interface {
	Write(report *Report, writer io.Writer) error
}

// ProgressManager creates progress displays for scans
type ProgressManager interface {
	StartScan(totalFiles int) ScanProgress
	IsInteractive() bool
	Close()
}

// ScanProgress follows a single scan file by file
type ScanProgress interface {
	// FileScanned records a processed file and the running issue total
	FileScanned(path string, totalIssues int)
	// FileSkipped records a file that could not be read
	FileSkipped(path string)
	Complete()
}
