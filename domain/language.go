package domain

import (
	"time"
	"unicode/utf8"
)

// ContextLength is the number of characters of a fragment kept as issue context
const ContextLength = 80

// FragmentSource identifies the extraction pass that produced a fragment
type FragmentSource string

const (
	FragmentSourceMarkup   FragmentSource = "markup"
	FragmentSourceString   FragmentSource = "string"
	FragmentSourceTemplate FragmentSource = "template"
	FragmentSourceSyntax   FragmentSource = "syntax"
)

// TextFragment is a unit of human-readable text extracted from a source file
type TextFragment struct {
	Text       string
	SourceFile string
	Line       int
	Source     FragmentSource
}

// Context returns the display snippet for issues found in the fragment
func (f TextFragment) Context() string {
	return Truncate(f.Text, ContextLength)
}

// Truncate returns the first n characters of s
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// BannedWordIssue reports a dictionary word found in a fragment
type BannedWordIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Word        string `json:"word"`
	Replacement string `json:"replacement"`
	Context     string `json:"context"`
}

// ComplexPhraseIssue reports a wordy phrase found in a fragment
type ComplexPhraseIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Phrase      string `json:"phrase"`
	Replacement string `json:"replacement"`
	Context     string `json:"context"`
}

// PassiveVoiceIssue reports a passive-voice marker found in a fragment
type PassiveVoiceIssue struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Indicator string `json:"indicator"`
	Context   string `json:"context"`
}

// LongSentenceIssue reports a sentence above the word limit
type LongSentenceIssue struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	WordCount int    `json:"wordCount"`
	Context   string `json:"context"`
}

// ScanResults accumulates issues across a scan.
// Issues must be added through the Add* methods so that TotalIssues
// always equals the sum of the four bucket lengths.
type ScanResults struct {
	BannedWords    []BannedWordIssue    `json:"bannedWords"`
	ComplexPhrases []ComplexPhraseIssue `json:"complexPhrases"`
	PassiveVoice   []PassiveVoiceIssue  `json:"passiveVoice"`
	LongSentences  []LongSentenceIssue  `json:"longSentences"`
	TotalFiles     int                  `json:"totalFiles"`
	TotalIssues    int                  `json:"totalIssues"`

	// SkippedEntries counts entries that could not be read; not persisted
	SkippedEntries int `json:"-"`
}

// NewScanResults creates an empty accumulator
func NewScanResults() *ScanResults {
	return &ScanResults{
		BannedWords:    []BannedWordIssue{},
		ComplexPhrases: []ComplexPhraseIssue{},
		PassiveVoice:   []PassiveVoiceIssue{},
		LongSentences:  []LongSentenceIssue{},
	}
}

// AddBannedWord records a banned word issue
func (r *ScanResults) AddBannedWord(issue BannedWordIssue) {
	r.BannedWords = append(r.BannedWords, issue)
	r.TotalIssues++
}

// AddComplexPhrase records a complex phrase issue
func (r *ScanResults) AddComplexPhrase(issue ComplexPhraseIssue) {
	r.ComplexPhrases = append(r.ComplexPhrases, issue)
	r.TotalIssues++
}

// AddPassiveVoice records a passive voice issue
func (r *ScanResults) AddPassiveVoice(issue PassiveVoiceIssue) {
	r.PassiveVoice = append(r.PassiveVoice, issue)
	r.TotalIssues++
}

// AddLongSentence records a long sentence issue
func (r *ScanResults) AddLongSentence(issue LongSentenceIssue) {
	r.LongSentences = append(r.LongSentences, issue)
	r.TotalIssues++
}

// MarkFileProcessed counts a file whose content was read
func (r *ScanResults) MarkFileProcessed() {
	r.TotalFiles++
}

// MarkSkipped counts an entry skipped after an I/O error
func (r *ScanResults) MarkSkipped() {
	r.SkippedEntries++
}

// HasIssues reports whether any issue was recorded
func (r *ScanResults) HasIssues() bool {
	return r.TotalIssues > 0
}

// Summary returns the per-bucket counts
func (r *ScanResults) Summary() ReportSummary {
	return ReportSummary{
		TotalFiles:     r.TotalFiles,
		TotalIssues:    r.TotalIssues,
		BannedWords:    len(r.BannedWords),
		ComplexPhrases: len(r.ComplexPhrases),
		PassiveVoice:   len(r.PassiveVoice),
		LongSentences:  len(r.LongSentences),
	}
}

// ReportSummary holds the counts written to the report
type ReportSummary struct {
	TotalFiles     int `json:"totalFiles"`
	TotalIssues    int `json:"totalIssues"`
	BannedWords    int `json:"bannedWords"`
	ComplexPhrases int `json:"complexPhrases"`
	PassiveVoice   int `json:"passiveVoice"`
	LongSentences  int `json:"longSentences"`
}

// Report is the persisted result of one scan
type Report struct {
	Timestamp string        `json:"timestamp"`
	Summary   ReportSummary `json:"summary"`
	Issues    *ScanResults  `json:"issues"`
}

// NewReport builds a report for results at the given time
func NewReport(results *ScanResults, at time.Time) *Report {
	if results == nil {
		results = NewScanResults()
	}
	return &Report{
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Summary:   results.Summary(),
		Issues:    results,
	}
}
