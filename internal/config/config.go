package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/ludo-technologies/plaincheck/internal/rules"
)

// Default scan settings
const (
	// DefaultRoot is the source directory scanned when none is given
	DefaultRoot = "src"

	// DefaultReportPath is where the JSON report is written
	DefaultReportPath = "language-check-report.json"

	// DefaultExtractionMode keeps the overlapping regex scans
	DefaultExtractionMode = string(domain.ExtractionModeRegex)
)

// DefaultExtensions lists the file extensions scanned by default
var DefaultExtensions = []string{".jsx", ".js", ".tsx", ".ts"}

// DefaultExcludeDirs lists directory names never descended into
var DefaultExcludeDirs = []string{"node_modules", "dist", "build", ".git"}

// Config represents the main configuration structure
type Config struct {
	// Scan holds file selection configuration
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Extraction holds text extraction configuration
	Extraction ExtractionConfig `json:"extraction" mapstructure:"extraction" yaml:"extraction"`

	// Rules holds the dictionaries and limits
	Rules RulesConfig `json:"rules" mapstructure:"rules" yaml:"rules"`

	// Output holds report configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// ScanConfig holds configuration for walking the source tree
type ScanConfig struct {
	// Root is the directory to scan
	Root string `json:"root" mapstructure:"root" yaml:"root"`

	// Extensions lists the file extensions to read
	Extensions []string `json:"extensions" mapstructure:"extensions" yaml:"extensions"`

	// ExcludeDirs lists directory names to skip at any depth
	ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs" yaml:"exclude_dirs"`

	// RespectGitignore skips paths matched by the root .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// ExtractionConfig holds configuration for text extraction
type ExtractionConfig struct {
	// Mode is either "regex" or "syntax"
	Mode string `json:"mode" mapstructure:"mode" yaml:"mode"`
}

// RulesConfig holds the plain-language rules
type RulesConfig struct {
	// MaxSentenceWords is the longest sentence allowed
	MaxSentenceWords int `json:"max_sentence_words" mapstructure:"max_sentence_words" yaml:"max_sentence_words"`

	BannedWords       []rules.Replacement `json:"banned_words" mapstructure:"banned_words" yaml:"banned_words"`
	ComplexPhrases    []rules.Replacement `json:"complex_phrases" mapstructure:"complex_phrases" yaml:"complex_phrases"`
	PassiveIndicators []string            `json:"passive_indicators" mapstructure:"passive_indicators" yaml:"passive_indicators"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	// ReportPath is the JSON report file
	ReportPath string `json:"report_path" mapstructure:"report_path" yaml:"report_path"`

	// HTMLPath is the rendered report; empty means next to ReportPath
	HTMLPath string `json:"html_path" mapstructure:"html_path" yaml:"html_path"`

	// Color enables coloured console output on terminals
	Color bool `json:"color" mapstructure:"color" yaml:"color"`

	// Progress enables the progress bar on terminals
	Progress bool `json:"progress" mapstructure:"progress" yaml:"progress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:             DefaultRoot,
			Extensions:       append([]string(nil), DefaultExtensions...),
			ExcludeDirs:      append([]string(nil), DefaultExcludeDirs...),
			RespectGitignore: false,
		},
		Extraction: ExtractionConfig{
			Mode: DefaultExtractionMode,
		},
		Rules: RulesConfig{
			MaxSentenceWords:  rules.DefaultMaxSentenceWords,
			BannedWords:       rules.DefaultBannedWords(),
			ComplexPhrases:    rules.DefaultComplexPhrases(),
			PassiveIndicators: rules.DefaultPassiveIndicators(),
		},
		Output: OutputConfig{
			ReportPath: DefaultReportPath,
			Color:      true,
			Progress:   true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file from
// targetPath upward when configPath is empty
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid shared state between loads
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ConfigCandidates lists config file names in order of preference
func ConfigCandidates() []string {
	name := constants.ToolName
	return []string{
		"." + name + ".yaml",
		"." + name + ".yml",
		name + ".yaml",
		name + ".yml",
		"." + name + ".toml",
		name + ".json",
		"." + name + ".json",
	}
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files from targetPath upward,
// then in the working directory, the user config directories and finally
// the path named by the config environment variable
func findDefaultConfig(targetPath string) string {
	candidates := ConfigCandidates()

	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.ConfigEnvVar); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scan.Root) == "" {
		return fmt.Errorf("scan.root cannot be empty")
	}

	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions cannot be empty")
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid scan.extensions entry '%s', must start with '.'", ext)
		}
	}

	for _, dir := range c.Scan.ExcludeDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("invalid scan.exclude_dirs entry '%s', must be a directory name", dir)
		}
	}

	validModes := map[string]bool{
		string(domain.ExtractionModeRegex):  true,
		string(domain.ExtractionModeSyntax): true,
	}
	if !validModes[c.Extraction.Mode] {
		return fmt.Errorf("invalid extraction.mode '%s', must be one of: regex, syntax", c.Extraction.Mode)
	}

	if c.Rules.MaxSentenceWords < 1 {
		return fmt.Errorf("rules.max_sentence_words must be >= 1, got %d", c.Rules.MaxSentenceWords)
	}

	if _, err := rules.NewEngine(c.RuleOptions()); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	if strings.TrimSpace(c.Output.ReportPath) == "" {
		return fmt.Errorf("output.report_path cannot be empty")
	}

	return nil
}

// RuleOptions returns the engine options for the configured rules
func (c *Config) RuleOptions() rules.Options {
	return rules.Options{
		BannedWords:       c.Rules.BannedWords,
		ComplexPhrases:    c.Rules.ComplexPhrases,
		PassiveIndicators: c.Rules.PassiveIndicators,
		MaxSentenceWords:  c.Rules.MaxSentenceWords,
	}
}

// ResolvedHTMLPath returns the HTML report path, defaulting to the JSON
// report path with an .html extension
func (c *OutputConfig) ResolvedHTMLPath() string {
	if c.HTMLPath != "" {
		return c.HTMLPath
	}
	return HTMLPathFor(c.ReportPath)
}

// HTMLPathFor returns the sibling HTML path for a JSON report path
func HTMLPathFor(reportPath string) string {
	ext := filepath.Ext(reportPath)
	return strings.TrimSuffix(reportPath, ext) + ".html"
}
