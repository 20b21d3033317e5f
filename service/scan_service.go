package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/extractor"
)

// osFileReader reads files from disk
type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ScanServiceImpl implements domain.ScanService. Files are read one at a
// time and every fragment goes through the rule engine.
type ScanServiceImpl struct {
	engine   domain.RuleEngine
	reader   domain.FileReader
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewScanService creates a scan service. A nil progress manager disables
// progress output and a nil logger uses slog.Default().
func NewScanService(engine domain.RuleEngine, progress domain.ProgressManager, logger *slog.Logger) *ScanServiceImpl {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanServiceImpl{
		engine:   engine,
		reader:   osFileReader{},
		progress: progress,
		logger:   logger,
	}
}

// WithFileReader replaces the reader used for source files
func (s *ScanServiceImpl) WithFileReader(reader domain.FileReader) *ScanServiceImpl {
	s.reader = reader
	return s
}

// Scan evaluates every file in req.Files. A file that cannot be read is
// logged and skipped; it is not counted in TotalFiles.
func (s *ScanServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResults, error) {
	results := domain.NewScanResults()
	x := extractor.New(req.Mode)

	progress := s.progress.StartScan(len(req.Files))
	defer progress.Complete()

	for _, path := range req.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := s.reader.ReadFile(path)
		if err != nil {
			s.logger.Error("failed to read file", "path", path, "error", err)
			results.MarkSkipped()
			progress.FileSkipped(path)
			continue
		}
		results.MarkFileProcessed()

		for _, fragment := range x.Extract(string(content), path) {
			s.engine.Evaluate(fragment, results)
		}

		s.logger.Debug("scanned file", "path", path, "issues", results.TotalIssues)
		progress.FileScanned(path, results.TotalIssues)
	}

	return results, nil
}
