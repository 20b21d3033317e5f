package service

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/rules"
)

// ConsoleFormatter prints the scan summary and every issue grouped by category
type ConsoleFormatter struct {
	maxSentenceWords int

	header  *color.Color
	heading *color.Color
	problem *color.Color
	fix     *color.Color
	muted   *color.Color
	success *color.Color
}

// NewConsoleFormatter creates a console formatter. Colour codes are only
// written when useColor is set.
func NewConsoleFormatter(useColor bool, maxSentenceWords int) *ConsoleFormatter {
	if maxSentenceWords <= 0 {
		maxSentenceWords = rules.DefaultMaxSentenceWords
	}
	f := &ConsoleFormatter{
		maxSentenceWords: maxSentenceWords,
		header:           color.New(color.FgCyan, color.Bold),
		heading:          color.New(color.FgYellow, color.Bold),
		problem:          color.New(color.FgRed),
		fix:              color.New(color.FgGreen),
		muted:            color.New(color.Faint),
		success:          color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{f.header, f.heading, f.problem, f.fix, f.muted, f.success} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Write prints the report. A report without issues prints a single line.
func (f *ConsoleFormatter) Write(report *domain.Report, writer io.Writer) error {
	s := report.Summary

	if s.TotalIssues == 0 {
		_, err := f.success.Fprintf(writer, "No plain-language issues found in %d files. Nice work!\n", s.TotalFiles)
		return err
	}

	f.header.Fprintln(writer, "\n=== Plain Language Report ===")
	fmt.Fprintf(writer, "\nFiles scanned: %d\n", s.TotalFiles)
	fmt.Fprintf(writer, "Total issues:  %d\n", s.TotalIssues)
	fmt.Fprintf(writer, "  Banned words:    %d\n", s.BannedWords)
	fmt.Fprintf(writer, "  Complex phrases: %d\n", s.ComplexPhrases)
	fmt.Fprintf(writer, "  Passive voice:   %d\n", s.PassiveVoice)
	fmt.Fprintf(writer, "  Long sentences:  %d\n", s.LongSentences)

	issues := report.Issues
	if issues == nil {
		return nil
	}

	if len(issues.BannedWords) > 0 {
		f.heading.Fprintf(writer, "\nBanned words (%d):\n", len(issues.BannedWords))
		for _, i := range issues.BannedWords {
			f.writeIssue(writer, i.File, i.Line,
				fmt.Sprintf("%q", i.Word), fmt.Sprintf("use %q", i.Replacement), i.Context)
		}
	}

	if len(issues.ComplexPhrases) > 0 {
		f.heading.Fprintf(writer, "\nComplex phrases (%d):\n", len(issues.ComplexPhrases))
		for _, i := range issues.ComplexPhrases {
			f.writeIssue(writer, i.File, i.Line,
				fmt.Sprintf("%q", i.Phrase), fmt.Sprintf("use %q", i.Replacement), i.Context)
		}
	}

	if len(issues.PassiveVoice) > 0 {
		f.heading.Fprintf(writer, "\nPassive voice (%d):\n", len(issues.PassiveVoice))
		for _, i := range issues.PassiveVoice {
			f.writeIssue(writer, i.File, i.Line,
				fmt.Sprintf("%q", i.Indicator), "rewrite in active voice", i.Context)
		}
	}

	if len(issues.LongSentences) > 0 {
		f.heading.Fprintf(writer, "\nLong sentences over %d words (%d):\n", f.maxSentenceWords, len(issues.LongSentences))
		for _, i := range issues.LongSentences {
			f.writeIssue(writer, i.File, i.Line,
				fmt.Sprintf("%d words", i.WordCount), "split into shorter sentences", i.Context)
		}
	}

	fmt.Fprintln(writer)
	return nil
}

func (f *ConsoleFormatter) writeIssue(writer io.Writer, file string, line int, problem, fix, context string) {
	fmt.Fprintf(writer, "  %s:%d  %s -> %s\n", file, line, f.problem.Sprint(problem), f.fix.Sprint(fix))
	f.muted.Fprintf(writer, "    %s\n", context)
}
