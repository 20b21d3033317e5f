package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/plaincheck/domain"
)

// ScanUseCase orchestrates the scan workflow: walk, evaluate, report
type ScanUseCase struct {
	service    domain.ScanService
	fileHelper *FileHelper
	store      domain.ReportStore
	console    domain.ReportFormatter
	html       domain.ReportFormatter
	now        func() time.Time
}

// Execute performs the complete scan workflow
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.ScanRequest) (*domain.ScanResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	info, err := os.Stat(req.Root)
	if err != nil {
		return nil, domain.NewFileNotFoundError(req.Root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("scan root is not a directory: %s", req.Root), nil)
	}

	files, skipped := uc.fileHelper.CollectSourceFiles(req.Root, WalkOptions{
		Extensions:       req.Extensions,
		ExcludeDirs:      req.ExcludeDirs,
		RespectGitignore: req.RespectGitignore,
	})
	req.Files = files

	results, err := uc.service.Scan(ctx, req)
	if err != nil {
		return nil, err
	}
	results.SkippedEntries += skipped

	report := domain.NewReport(results, uc.now())

	if uc.console != nil && req.OutputWriter != nil {
		if err := uc.console.Write(report, req.OutputWriter); err != nil {
			return nil, domain.NewOutputError("failed to write console report", err)
		}
	}

	if err := uc.store.Save(report, req.ReportPath); err != nil {
		return nil, err
	}

	response := &domain.ScanResponse{
		Report:         report,
		ReportPath:     req.ReportPath,
		SkippedEntries: results.SkippedEntries,
	}

	if req.WriteHTML {
		if err := WriteHTMLFile(uc.html, report, req.HTMLPath); err != nil {
			return nil, err
		}
		response.HTMLPath = req.HTMLPath
	}

	return response, nil
}

// validateRequest validates the scan request
func (uc *ScanUseCase) validateRequest(req domain.ScanRequest) error {
	if strings.TrimSpace(req.Root) == "" {
		return fmt.Errorf("no scan root specified")
	}
	if len(req.Extensions) == 0 {
		return fmt.Errorf("no file extensions specified")
	}
	if strings.TrimSpace(req.ReportPath) == "" {
		return fmt.Errorf("no report path specified")
	}
	if req.WriteHTML {
		if uc.html == nil {
			return fmt.Errorf("HTML output requested without an HTML formatter")
		}
		if strings.TrimSpace(req.HTMLPath) == "" {
			return fmt.Errorf("no HTML path specified")
		}
	}
	return nil
}

// WriteHTMLFile renders report with formatter and replaces the file at path
func WriteHTMLFile(formatter domain.ReportFormatter, report *domain.Report, path string) error {
	var buf bytes.Buffer
	if err := formatter.Write(report, &buf); err != nil {
		return domain.NewOutputError("failed to render HTML report", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create directory for %s", path), err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// ScanUseCaseBuilder provides a builder pattern for creating ScanUseCase
type ScanUseCaseBuilder struct {
	service    domain.ScanService
	fileHelper *FileHelper
	store      domain.ReportStore
	console    domain.ReportFormatter
	html       domain.ReportFormatter
	logger     *slog.Logger
	now        func() time.Time
}

// NewScanUseCaseBuilder creates a new builder
func NewScanUseCaseBuilder() *ScanUseCaseBuilder {
	return &ScanUseCaseBuilder{}
}

// WithService sets the scan service
func (b *ScanUseCaseBuilder) WithService(service domain.ScanService) *ScanUseCaseBuilder {
	b.service = service
	return b
}

// WithFileHelper sets the file helper
func (b *ScanUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *ScanUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// WithReportStore sets the JSON report store
func (b *ScanUseCaseBuilder) WithReportStore(store domain.ReportStore) *ScanUseCaseBuilder {
	b.store = store
	return b
}

// WithConsoleFormatter sets the console formatter
func (b *ScanUseCaseBuilder) WithConsoleFormatter(formatter domain.ReportFormatter) *ScanUseCaseBuilder {
	b.console = formatter
	return b
}

// WithHTMLFormatter sets the HTML formatter used when HTML output is requested
func (b *ScanUseCaseBuilder) WithHTMLFormatter(formatter domain.ReportFormatter) *ScanUseCaseBuilder {
	b.html = formatter
	return b
}

// WithLogger sets the logger used by the default file helper
func (b *ScanUseCaseBuilder) WithLogger(logger *slog.Logger) *ScanUseCaseBuilder {
	b.logger = logger
	return b
}

// WithClock sets the time source for report timestamps
func (b *ScanUseCaseBuilder) WithClock(now func() time.Time) *ScanUseCaseBuilder {
	b.now = now
	return b
}

// Build creates the ScanUseCase with the configured dependencies
func (b *ScanUseCaseBuilder) Build() (*ScanUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("scan service is required")
	}
	if b.store == nil {
		return nil, fmt.Errorf("report store is required")
	}

	uc := &ScanUseCase{
		service:    b.service,
		fileHelper: b.fileHelper,
		store:      b.store,
		console:    b.console,
		html:       b.html,
		now:        b.now,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper(b.logger)
	}
	if uc.now == nil {
		uc.now = time.Now
	}

	return uc, nil
}
