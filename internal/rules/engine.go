package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/plaincheck/domain"
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// Options configures an Engine
type Options struct {
	BannedWords       []Replacement
	ComplexPhrases    []Replacement
	PassiveIndicators []string
	MaxSentenceWords  int
}

// DefaultOptions returns the built-in dictionaries
func DefaultOptions() Options {
	return Options{
		BannedWords:       DefaultBannedWords(),
		ComplexPhrases:    DefaultComplexPhrases(),
		PassiveIndicators: DefaultPassiveIndicators(),
		MaxSentenceWords:  DefaultMaxSentenceWords,
	}
}

type compiledReplacement struct {
	term        string
	replacement string
	pattern     *regexp.Regexp
}

type compiledIndicator struct {
	indicator string
	pattern   *regexp.Regexp
}

// Engine applies the four plain-language checks to text fragments
type Engine struct {
	bannedWords      []compiledReplacement
	complexPhrases   []compiledReplacement
	passive          []compiledIndicator
	maxSentenceWords int
}

// NewEngine compiles every dictionary entry once
func NewEngine(opts Options) (*Engine, error) {
	if opts.MaxSentenceWords <= 0 {
		opts.MaxSentenceWords = DefaultMaxSentenceWords
	}

	e := &Engine{maxSentenceWords: opts.MaxSentenceWords}

	for _, w := range opts.BannedWords {
		re, err := compileWord(w.Term)
		if err != nil {
			return nil, err
		}
		e.bannedWords = append(e.bannedWords, compiledReplacement{term: w.Term, replacement: w.Replacement, pattern: re})
	}

	for _, p := range opts.ComplexPhrases {
		re, err := compilePhrase(p.Term)
		if err != nil {
			return nil, err
		}
		e.complexPhrases = append(e.complexPhrases, compiledReplacement{term: p.Term, replacement: p.Replacement, pattern: re})
	}

	for _, ind := range opts.PassiveIndicators {
		re, err := compileWord(ind)
		if err != nil {
			return nil, err
		}
		e.passive = append(e.passive, compiledIndicator{indicator: ind, pattern: re})
	}

	return e, nil
}

// NewDefaultEngine builds an engine over the built-in dictionaries
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultOptions())
	if err != nil {
		panic(fmt.Sprintf("built-in dictionary failed to compile: %v", err))
	}
	return e
}

// compileWord matches term as a whole word, ignoring case
func compileWord(term string) (*regexp.Regexp, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty dictionary term")
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary term %q: %w", term, err)
	}
	return re, nil
}

// compilePhrase matches term anywhere, ignoring case
func compilePhrase(term string) (*regexp.Regexp, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty dictionary phrase")
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary phrase %q: %w", term, err)
	}
	return re, nil
}

// MaxSentenceWords returns the configured sentence limit
func (e *Engine) MaxSentenceWords() int {
	return e.maxSentenceWords
}

// Evaluate runs every check against the fragment and records the issues.
// A fragment can contribute to all four buckets.
func (e *Engine) Evaluate(fragment domain.TextFragment, results *domain.ScanResults) {
	text := fragment.Text
	context := fragment.Context()

	for _, w := range e.bannedWords {
		if w.pattern.MatchString(text) {
			results.AddBannedWord(domain.BannedWordIssue{
				File:        fragment.SourceFile,
				Line:        fragment.Line,
				Word:        w.term,
				Replacement: w.replacement,
				Context:     context,
			})
		}
	}

	for _, p := range e.complexPhrases {
		if p.pattern.MatchString(text) {
			results.AddComplexPhrase(domain.ComplexPhraseIssue{
				File:        fragment.SourceFile,
				Line:        fragment.Line,
				Phrase:      p.term,
				Replacement: p.replacement,
				Context:     context,
			})
		}
	}

	for _, ind := range e.passive {
		if ind.pattern.MatchString(text) {
			results.AddPassiveVoice(domain.PassiveVoiceIssue{
				File:      fragment.SourceFile,
				Line:      fragment.Line,
				Indicator: ind.indicator,
				Context:   context,
			})
		}
	}

	for _, count := range e.LongSentences(text) {
		results.AddLongSentence(domain.LongSentenceIssue{
			File:      fragment.SourceFile,
			Line:      fragment.Line,
			WordCount: count,
			Context:   context,
		})
	}
}

// LongSentences returns the word count of every sentence in text that is
// longer than the limit, in order of appearance
func (e *Engine) LongSentences(text string) []int {
	var counts []int
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		words := strings.Fields(strings.TrimSpace(sentence))
		if len(words) > e.maxSentenceWords {
			counts = append(counts, len(words))
		}
	}
	return counts
}
