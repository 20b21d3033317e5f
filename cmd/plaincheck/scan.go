package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ludo-technologies/plaincheck/app"
	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/config"
	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/ludo-technologies/plaincheck/internal/rules"
	"github.com/ludo-technologies/plaincheck/service"
	"github.com/spf13/cobra"
)

// scanOptions holds the flags shared by scan and watch
type scanOptions struct {
	configPath string
	reportPath string
	mode       string
	maxWords   int
	noColor    bool
	noProgress bool
	html       bool
}

func scanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a source tree for plain-language issues",
		Long: `Scan JavaScript and TypeScript files under root (default: src) and report
banned words, complex phrases, passive voice and long sentences.

The console summary is printed and the JSON report is written on every run.

Exit codes:
  0 - No issues found
  1 - Issues found
  2 - Configuration or I/O error

Examples:
  # Scan ./src with defaults
  plaincheck scan

  # Scan another directory and also write the HTML report
  plaincheck scan web/src --html

  # Use the tree-sitter extractor and a stricter sentence limit
  plaincheck scan --mode syntax --max-words 15`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&opts.reportPath, "report", "r", config.DefaultReportPath,
		"Path of the JSON report")
	cmd.Flags().StringVar(&opts.mode, "mode", config.DefaultExtractionMode,
		"Text extraction mode: regex or syntax")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", rules.DefaultMaxSentenceWords,
		"Longest sentence allowed, in words")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false,
		"Disable coloured output")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().BoolVar(&opts.html, "html", false,
		"Also write the HTML report")
}

// overrides collects the flags that were set explicitly
func (o *scanOptions) overrides(cmd *cobra.Command, args []string) service.ConfigOverrides {
	var ov service.ConfigOverrides
	if len(args) > 0 {
		ov.Root = args[0]
	}
	if cmd.Flags().Changed("report") {
		ov.ReportPath = o.reportPath
	}
	if cmd.Flags().Changed("mode") {
		ov.Mode = o.mode
	}
	if cmd.Flags().Changed("max-words") {
		maxWords := o.maxWords
		ov.MaxSentenceWords = &maxWords
	}
	ov.NoColor = o.noColor
	ov.NoProgress = o.noProgress
	return ov
}

func loadScanConfig(cmd *cobra.Command, args []string, opts *scanOptions) (*config.Config, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	return service.NewConfigurationLoader().Load(opts.configPath, target, opts.overrides(cmd, args))
}

func runScan(cmd *cobra.Command, args []string, opts *scanOptions) error {
	cfg, err := loadScanConfig(cmd, args, opts)
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}

	logger := commandLogger(cmd)
	out := cmd.OutOrStdout()

	progress := service.NewProgressManager(cfg.Output.Progress)
	defer progress.Close()

	uc, err := buildScanUseCase(cfg, progress, out, logger)
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}

	req := service.NewConfigurationLoader().ToScanRequest(cfg)
	req.OutputWriter = out
	req.WriteHTML = opts.html

	resp, err := uc.Execute(cmd.Context(), req)
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}

	printScanResponse(out, resp)

	if resp.Report.Summary.TotalIssues > 0 {
		return &ExitError{Code: constants.ExitIssues}
	}
	return nil
}

func buildScanUseCase(cfg *config.Config, progress domain.ProgressManager, out io.Writer, logger *slog.Logger) (*app.ScanUseCase, error) {
	engine, err := rules.NewEngine(cfg.RuleOptions())
	if err != nil {
		return nil, domain.NewConfigError("invalid rules", err)
	}

	useColor := cfg.Output.Color && writerIsTerminal(out)

	return app.NewScanUseCaseBuilder().
		WithService(service.NewScanService(engine, progress, logger)).
		WithFileHelper(app.NewFileHelper(logger)).
		WithReportStore(service.NewJSONReportStore()).
		WithConsoleFormatter(service.NewConsoleFormatter(useColor, cfg.Rules.MaxSentenceWords)).
		WithHTMLFormatter(service.NewHTMLFormatter()).
		Build()
}

func printScanResponse(out io.Writer, resp *domain.ScanResponse) {
	fmt.Fprintf(out, "Report saved to %s\n", resp.ReportPath)
	if resp.HTMLPath != "" {
		fmt.Fprintf(out, "HTML report written to %s\n", resp.HTMLPath)
	}
	if resp.SkippedEntries > 0 {
		fmt.Fprintf(out, "%d entries could not be read and were skipped\n", resp.SkippedEntries)
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && service.IsTerminal(f)
}
