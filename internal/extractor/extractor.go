// Package extractor pulls human-readable text out of JavaScript and
// TypeScript source files.
package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/plaincheck/domain"
)

// MinFragmentLength is the shortest trimmed text kept as a fragment
const MinFragmentLength = 3

var (
	markupTextPattern = regexp.MustCompile(`>([^<>]+)<`)
	quotedPattern     = regexp.MustCompile(`["']([^"']+)["']`)
	templatePattern   = regexp.MustCompile("`([^`]+)`")
)

// RegexExtractor finds text between tags, inside quotes and inside
// template literals. The three scans run independently, so text that
// matches more than one of them is returned more than once.
type RegexExtractor struct{}

// NewRegexExtractor creates a new RegexExtractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns markup fragments, then string fragments, then template
// fragments, each in source order
func (x *RegexExtractor) Extract(content, filePath string) []domain.TextFragment {
	var fragments []domain.TextFragment

	fragments = appendMatches(fragments, content, filePath, markupTextPattern, domain.FragmentSourceMarkup,
		func(text string) bool {
			return text != "" && !strings.HasPrefix(text, "{") && longEnough(text)
		})

	fragments = appendMatches(fragments, content, filePath, quotedPattern, domain.FragmentSourceString,
		func(text string) bool {
			return longEnough(text)
		})

	fragments = appendMatches(fragments, content, filePath, templatePattern, domain.FragmentSourceTemplate,
		func(text string) bool {
			return !strings.Contains(text, "${") && longEnough(text)
		})

	return fragments
}

func appendMatches(
	fragments []domain.TextFragment,
	content, filePath string,
	pattern *regexp.Regexp,
	source domain.FragmentSource,
	keep func(trimmed string) bool,
) []domain.TextFragment {
	for _, loc := range pattern.FindAllStringSubmatchIndex(content, -1) {
		text := strings.TrimSpace(content[loc[2]:loc[3]])
		if !keep(text) {
			continue
		}
		fragments = append(fragments, domain.TextFragment{
			Text:       text,
			SourceFile: filePath,
			Line:       LineAt(content, loc[0]),
			Source:     source,
		})
	}
	return fragments
}

func longEnough(text string) bool {
	return utf8.RuneCountInString(text) >= MinFragmentLength
}

// LineAt returns the 1-based line number of the byte offset in content
func LineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// New returns the extractor for mode; unknown modes fall back to regex
func New(mode domain.ExtractionMode) domain.Extractor {
	if mode == domain.ExtractionModeSyntax {
		return NewSyntaxExtractor()
	}
	return NewRegexExtractor()
}
