package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/plaincheck/internal/rules"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig should not return nil")
	}

	if config.Scan.Root != DefaultRoot {
		t.Errorf("Expected Root %s, got %s", DefaultRoot, config.Scan.Root)
	}
	if strings.Join(config.Scan.Extensions, " ") != ".jsx .js .tsx .ts" {
		t.Errorf("Unexpected extensions %v", config.Scan.Extensions)
	}
	if strings.Join(config.Scan.ExcludeDirs, " ") != "node_modules dist build .git" {
		t.Errorf("Unexpected exclude dirs %v", config.Scan.ExcludeDirs)
	}
	if config.Scan.RespectGitignore {
		t.Error("RespectGitignore should be off by default")
	}
	if config.Extraction.Mode != "regex" {
		t.Errorf("Expected regex mode, got %s", config.Extraction.Mode)
	}
	if config.Rules.MaxSentenceWords != 20 {
		t.Errorf("Expected MaxSentenceWords 20, got %d", config.Rules.MaxSentenceWords)
	}
	if len(config.Rules.BannedWords) != len(rules.DefaultBannedWords()) {
		t.Errorf("Expected built-in banned words, got %d", len(config.Rules.BannedWords))
	}
	if config.Output.ReportPath != "language-check-report.json" {
		t.Errorf("Unexpected report path %s", config.Output.ReportPath)
	}
}

func TestDefaultConfig_IndependentSlices(t *testing.T) {
	a := DefaultConfig()
	a.Scan.ExcludeDirs[0] = "changed"

	b := DefaultConfig()
	if b.Scan.ExcludeDirs[0] != "node_modules" {
		t.Error("DefaultConfig should not share slices between calls")
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty root", func(c *Config) { c.Scan.Root = " " }},
		{"no extensions", func(c *Config) { c.Scan.Extensions = nil }},
		{"extension without dot", func(c *Config) { c.Scan.Extensions = []string{"js"} }},
		{"exclude path", func(c *Config) { c.Scan.ExcludeDirs = []string{"src/vendor"} }},
		{"unknown mode", func(c *Config) { c.Extraction.Mode = "ast" }},
		{"zero sentence words", func(c *Config) { c.Rules.MaxSentenceWords = 0 }},
		{"empty banned word", func(c *Config) {
			c.Rules.BannedWords = []rules.Replacement{{Term: "", Replacement: "x"}}
		}},
		{"empty report path", func(c *Config) { c.Output.ReportPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfig_Default(t *testing.T) {
	config, err := loadConfigFromFile("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Scan.Root != DefaultRoot {
		t.Errorf("Expected default root, got %s", config.Scan.Root)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".plaincheck.yaml")
	content := `
scan:
  root: app
  exclude_dirs: [node_modules, coverage]
extraction:
  mode: syntax
rules:
  max_sentence_words: 12
  banned_words:
    - term: checkout flow
      replacement: checkout
output:
  report_path: reports/language.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Scan.Root != "app" {
		t.Errorf("Expected root app, got %s", config.Scan.Root)
	}
	if strings.Join(config.Scan.ExcludeDirs, ",") != "node_modules,coverage" {
		t.Errorf("Unexpected exclude dirs %v", config.Scan.ExcludeDirs)
	}
	if config.Extraction.Mode != "syntax" {
		t.Errorf("Expected syntax mode, got %s", config.Extraction.Mode)
	}
	if config.Rules.MaxSentenceWords != 12 {
		t.Errorf("Expected 12 words, got %d", config.Rules.MaxSentenceWords)
	}
	if len(config.Rules.BannedWords) != 1 || config.Rules.BannedWords[0].Term != "checkout flow" {
		t.Errorf("Expected custom banned words, got %v", config.Rules.BannedWords)
	}
	if len(config.Rules.ComplexPhrases) != len(rules.ComplexPhrases) {
		t.Errorf("Unset dictionaries should keep defaults, got %d phrases", len(config.Rules.ComplexPhrases))
	}
	if strings.Join(config.Scan.Extensions, " ") != ".jsx .js .tsx .ts" {
		t.Errorf("Unset extensions should keep defaults, got %v", config.Scan.Extensions)
	}
	if config.Output.ResolvedHTMLPath() != "reports/language.html" {
		t.Errorf("Unexpected HTML path %s", config.Output.ResolvedHTMLPath())
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plaincheck.yaml")
	if err := os.WriteFile(path, []byte("extraction:\n  mode: magic\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid extraction mode")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadConfigWithTarget_DiscoversUpward(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "web", "src")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".plaincheck.yml"), []byte("rules:\n  max_sentence_words: 9\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfigWithTarget("", nested)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if config.Rules.MaxSentenceWords != 9 {
		t.Errorf("Expected discovered config, got max words %d", config.Rules.MaxSentenceWords)
	}
}

func TestHTMLPathFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"language-check-report.json", "language-check-report.html"},
		{filepath.Join("out", "r.json"), filepath.Join("out", "r.html")},
		{"report", "report.html"},
	}
	for _, tt := range tests {
		if got := HTMLPathFor(tt.in); got != tt.want {
			t.Errorf("HTMLPathFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	out := OutputConfig{ReportPath: "a.json", HTMLPath: "custom.html"}
	if out.ResolvedHTMLPath() != "custom.html" {
		t.Errorf("Explicit HTML path should win, got %s", out.ResolvedHTMLPath())
	}
}

func TestFullConfigTemplate_RoundTrip(t *testing.T) {
	content, err := GetFullConfigTemplate(ProjectTypeReact, StrictnessStrict)
	if err != nil {
		t.Fatalf("GetFullConfigTemplate failed: %v", err)
	}
	if !strings.Contains(content, "# plaincheck configuration") {
		t.Error("Full template should be documented")
	}

	path := filepath.Join(t.TempDir(), ".plaincheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Template should load: %v", err)
	}
	if config.Rules.MaxSentenceWords != 15 {
		t.Errorf("Expected strict preset, got %d", config.Rules.MaxSentenceWords)
	}
	if !contains(config.Scan.ExcludeDirs, "coverage") {
		t.Errorf("Expected react preset exclude dirs, got %v", config.Scan.ExcludeDirs)
	}
}

func TestMinimalConfigTemplate_Loads(t *testing.T) {
	content, err := GetMinimalConfigTemplate()
	if err != nil {
		t.Fatalf("GetMinimalConfigTemplate failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".plaincheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Minimal template should load: %v", err)
	}
	if config.Scan.Root != DefaultRoot {
		t.Errorf("Expected default root, got %s", config.Scan.Root)
	}
}

func contains(items []string, item string) bool {
	for _, s := range items {
		if s == item {
			return true
		}
	}
	return false
}
