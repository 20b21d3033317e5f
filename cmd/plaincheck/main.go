package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/ludo-technologies/plaincheck/internal/version"
	"github.com/spf13/cobra"
)

// ExitError carries the process exit code out of a command
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return constants.ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintf(stderr, "Error: %s\n", exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return constants.ExitError
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.ToolName,
		Short: "plaincheck - plain-language checker for frontend copy",
		Long: `plaincheck scans JavaScript and TypeScript sources for user-facing text that
uses jargon, wordy phrases, passive voice or over-long sentences.`,
		Version: version.GetVersion(),
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// commandLogger returns a text logger on the command's error stream
func commandLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
				fmt.Fprintln(out, version.GetFullVersion())
				return
			}
			fmt.Fprintf(out, "%s version %s\n", constants.ToolName, version.GetVersion())
		},
	}
}
