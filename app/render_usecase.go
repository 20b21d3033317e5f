package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/plaincheck/domain"
)

// RenderUseCase turns a persisted JSON report into an HTML page
type RenderUseCase struct {
	store     domain.ReportStore
	formatter domain.ReportFormatter
}

// NewRenderUseCase creates a new render use case
func NewRenderUseCase(store domain.ReportStore, formatter domain.ReportFormatter) *RenderUseCase {
	return &RenderUseCase{
		store:     store,
		formatter: formatter,
	}
}

// Execute loads the report and writes the HTML page. No file is written
// when the report cannot be loaded.
func (uc *RenderUseCase) Execute(ctx context.Context, req domain.RenderRequest) (string, error) {
	if strings.TrimSpace(req.ReportPath) == "" {
		return "", domain.NewInvalidInputError("no report path specified", nil)
	}
	if strings.TrimSpace(req.HTMLPath) == "" {
		return "", domain.NewInvalidInputError("no HTML path specified", nil)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	report, err := uc.store.Load(req.ReportPath)
	if err != nil {
		return "", err
	}

	if err := WriteHTMLFile(uc.formatter, report, req.HTMLPath); err != nil {
		return "", err
	}

	if req.OutputWriter != nil {
		fmt.Fprintf(req.OutputWriter, "HTML report written to %s\n", req.HTMLPath)
	}

	return req.HTMLPath, nil
}
