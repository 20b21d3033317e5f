package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/ludo-technologies/plaincheck/service"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Rescan whenever source files change",
		Long: `Run a scan, then watch root and scan again after each burst of changes.
Stops on Ctrl+C.

Examples:
  plaincheck watch
  plaincheck watch web/src --html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *scanOptions) error {
	cfg, err := loadScanConfig(cmd, args, opts)
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}

	logger := commandLogger(cmd)
	out := cmd.OutOrStdout()

	uc, err := buildScanUseCase(cfg, &service.NoOpProgressManager{}, out, logger)
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}

	req := service.NewConfigurationLoader().ToScanRequest(cfg)
	req.OutputWriter = out
	req.WriteHTML = opts.html

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := service.NewWatcher(service.WatchOptions{
		Root:        cfg.Scan.Root,
		Extensions:  cfg.Scan.Extensions,
		ExcludeDirs: cfg.Scan.ExcludeDirs,
	}, logger)

	err = watcher.Run(ctx, func(ctx context.Context) error {
		resp, err := uc.Execute(ctx, req)
		if err != nil {
			return err
		}
		printScanResponse(out, resp)
		fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", cfg.Scan.Root)
		return nil
	})
	if err != nil {
		return &ExitError{Code: constants.ExitError, Message: err.Error()}
	}
	return nil
}
