package main

import (
	"github.com/ludo-technologies/plaincheck/app"
	"github.com/ludo-technologies/plaincheck/internal/config"
	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/ludo-technologies/plaincheck/service"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		reportPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the JSON report as an HTML page",
		Long: `Read the JSON report written by 'plaincheck scan' and write a static HTML page
next to it. Fails when the report does not exist.

Examples:
  plaincheck render
  plaincheck render --report out/report.json -o out/report.html`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ov service.ConfigOverrides
			if cmd.Flags().Changed("report") {
				ov.ReportPath = reportPath
			}
			if cmd.Flags().Changed("output") {
				ov.HTMLPath = outputPath
			}

			loader := service.NewConfigurationLoader()
			cfg, err := loader.Load(configPath, "", ov)
			if err != nil {
				return &ExitError{Code: constants.ExitError, Message: err.Error()}
			}

			req := loader.ToRenderRequest(cfg)
			req.OutputWriter = cmd.OutOrStdout()

			uc := app.NewRenderUseCase(service.NewJSONReportStore(), service.NewHTMLFormatter())
			if _, err := uc.Execute(cmd.Context(), req); err != nil {
				return &ExitError{Code: constants.ExitIssues, Message: err.Error()}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&reportPath, "report", "r", config.DefaultReportPath,
		"Path of the JSON report to read")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Path of the HTML file (default: report path with .html)")

	return cmd
}
