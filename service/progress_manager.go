package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/schollz/progressbar/v3"
)

// maxPathWidth bounds the file name shown next to the bar
const maxPathWidth = 32

// ProgressManagerImpl draws one progress bar per scan
type ProgressManagerImpl struct {
	writer io.Writer
	scans  []*ScanProgressImpl
}

// NewProgressManager returns a progress bar on stderr when enabled and
// running in a terminal, and a no-op manager otherwise
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return NewProgressManagerWithWriter(os.Stderr)
	}
	return &NoOpProgressManager{}
}

// NewProgressManagerWithWriter creates a progress manager drawing to writer
func NewProgressManagerWithWriter(writer io.Writer) *ProgressManagerImpl {
	return &ProgressManagerImpl{writer: writer}
}

// StartScan creates the bar for a scan over totalFiles files
func (pm *ProgressManagerImpl) StartScan(totalFiles int) domain.ScanProgress {
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(scanDescription("", 0, 0)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	sp := &ScanProgressImpl{bar: bar}
	pm.scans = append(pm.scans, sp)
	return sp
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes every scan that is still open
func (pm *ProgressManagerImpl) Close() {
	for _, sp := range pm.scans {
		sp.Complete()
	}
	pm.scans = nil
}

// ScanProgressImpl shows the current file, the issues found so far and the
// number of skipped files beside the bar
type ScanProgressImpl struct {
	bar      *progressbar.ProgressBar
	issues   int
	skipped  int
	finished bool
}

// FileScanned advances the bar past a processed file
func (sp *ScanProgressImpl) FileScanned(path string, totalIssues int) {
	sp.issues = totalIssues
	sp.advance(path)
}

// FileSkipped advances the bar past an unreadable file
func (sp *ScanProgressImpl) FileSkipped(path string) {
	sp.skipped++
	sp.advance(path)
}

// Issues returns the last reported issue total
func (sp *ScanProgressImpl) Issues() int { return sp.issues }

// Skipped returns the number of skipped files
func (sp *ScanProgressImpl) Skipped() int { return sp.skipped }

func (sp *ScanProgressImpl) advance(path string) {
	sp.bar.Describe(scanDescription(path, sp.issues, sp.skipped))
	_ = sp.bar.Add(1)
}

// Complete finishes the bar; later calls do nothing
func (sp *ScanProgressImpl) Complete() {
	if sp.finished {
		return
	}
	sp.finished = true
	_ = sp.bar.Finish()
}

// scanDescription renders the text beside the bar. The skipped count only
// appears once a file has been skipped.
func scanDescription(path string, issues, skipped int) string {
	var b strings.Builder
	b.WriteString("Scanning")
	if path != "" {
		fmt.Fprintf(&b, " %-*s", maxPathWidth, shortenPath(path, maxPathWidth))
	}
	fmt.Fprintf(&b, " | issues: %d", issues)
	if skipped > 0 {
		fmt.Fprintf(&b, " | skipped: %d", skipped)
	}
	return b.String()
}

// shortenPath keeps the parent directory and file name, trimmed from the
// left to at most width runes
func shortenPath(path string, width int) string {
	dir, file := filepath.Split(path)
	short := file
	if parent := filepath.Base(dir); dir != "" && parent != "." && parent != string(filepath.Separator) {
		short = parent + "/" + file
	}
	if utf8.RuneCountInString(short) <= width {
		return short
	}
	runes := []rune(short)
	return "..." + string(runes[len(runes)-(width-3):])
}

// NoOpProgressManager implements ProgressManager with no-op methods
type NoOpProgressManager struct{}

// StartScan returns a no-op scan progress
func (pm *NoOpProgressManager) StartScan(_ int) domain.ScanProgress {
	return &NoOpScanProgress{}
}

// IsInteractive returns false for no-op manager
func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

// Close is a no-op
func (pm *NoOpProgressManager) Close() {}

// NoOpScanProgress implements ScanProgress with no-op methods
type NoOpScanProgress struct{}

func (*NoOpScanProgress) FileScanned(string, int) {}
func (*NoOpScanProgress) FileSkipped(string)      {}
func (*NoOpScanProgress) Complete()               {}
