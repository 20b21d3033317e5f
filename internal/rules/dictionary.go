// Package rules holds the plain-language dictionaries and the engine that
// applies them to extracted text fragments.
package rules

// Replacement maps a term to the simpler wording that should be used instead
type Replacement struct {
	Term        string `json:"term" mapstructure:"term" yaml:"term"`
	Replacement string `json:"replacement" mapstructure:"replacement" yaml:"replacement"`
}

// DefaultMaxSentenceWords is the longest sentence allowed before it is reported
const DefaultMaxSentenceWords = 20

// BusinessJargon lists business buzzwords
var BusinessJargon = []Replacement{
	{"leverage", "use"},
	{"utilize", "use"},
	{"facilitate", "help"},
	{"optimize", "improve"},
	{"maximize", "increase"},
	{"streamline", "simplify"},
	{"synergy", "teamwork"},
	{"paradigm", "model"},
	{"ecosystem", "system"},
	{"robust", "strong"},
	{"scalable", "flexible"},
	{"enterprise", "business"},
}

// TechnicalJargon lists engineering and operations vocabulary
var TechnicalJargon = []Replacement{
	{"instantiate", "create"},
	{"persist", "save"},
	{"terminate", "end"},
	{"nomenclature", "name"},
	{"taxonomy", "categories"},
	{"hierarchy", "structure"},
	{"acquisition", "getting"},
	{"retention", "keeping"},
	{"churn", "leaving"},
	{"funnel", "process"},
	{"pipeline", "process"},
	{"logistics", "delivery"},
	{"fulfillment", "delivery"},
}

// FormalLanguage lists formal verbs and acronyms
var FormalLanguage = []Replacement{
	{"commence", "start"},
	{"initiate", "start"},
	{"proceed", "go"},
	{"obtain", "get"},
	{"retrieve", "get"},
	{"transmit", "send"},
	{"dispatch", "send"},
	{"verify", "check"},
	{"validate", "check"},
	{"rectify", "fix"},
	{"remediate", "fix"},
	{"resolve", "fix"},
	{"SKU", "Product Code"},
	{"LTV", "Total Spent"},
	{"COD", "Cash on Delivery"},
	{"KPI", "Goal"},
	{"ROI", "Return"},
	{"API", "Connection"},
}

// ComplexPhrases lists wordy phrases and their short forms
var ComplexPhrases = []Replacement{
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"prior to", "before"},
	{"in the event that", "if"},
	{"at this point in time", "now"},
	{"for the purpose of", "for"},
	{"with regard to", "about"},
	{"in spite of the fact that", "although"},
	{"a large number of", "many"},
	{"in close proximity to", "near"},
	{"has the ability to", "can"},
	{"is able to", "can"},
	{"in addition to", "also"},
	{"make a decision", "decide"},
	{"take into consideration", "consider"},
}

// PassiveIndicators lists auxiliary verb pairs that signal passive voice
var PassiveIndicators = []string{
	"will be",
	"has been",
	"have been",
	"was being",
	"were being",
	"is being",
	"are being",
}

// DefaultBannedWords returns the three word groups in dictionary order
func DefaultBannedWords() []Replacement {
	words := make([]Replacement, 0, len(BusinessJargon)+len(TechnicalJargon)+len(FormalLanguage))
	words = append(words, BusinessJargon...)
	words = append(words, TechnicalJargon...)
	words = append(words, FormalLanguage...)
	return words
}

// DefaultComplexPhrases returns a copy of the phrase list
func DefaultComplexPhrases() []Replacement {
	return append([]Replacement(nil), ComplexPhrases...)
}

// DefaultPassiveIndicators returns a copy of the indicator list
func DefaultPassiveIndicators() []string {
	return append([]string(nil), PassiveIndicators...)
}
