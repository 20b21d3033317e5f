package service

import (
	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/config"
)

// ConfigOverrides holds values given on the command line. Empty strings
// and nil pointers leave the configured value unchanged.
type ConfigOverrides struct {
	Root             string
	ReportPath       string
	HTMLPath         string
	Mode             string
	MaxSentenceWords *int
	NoColor          bool
	NoProgress       bool
}

// ConfigurationLoaderImpl loads configuration files and turns them into requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load reads configPath, or discovers a config file from targetPath upward
// when configPath is empty, applies overrides and validates the result
func (c *ConfigurationLoaderImpl) Load(configPath, targetPath string, overrides ConfigOverrides) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	c.applyOverrides(cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func (c *ConfigurationLoaderImpl) applyOverrides(cfg *config.Config, o ConfigOverrides) {
	if o.Root != "" {
		cfg.Scan.Root = o.Root
	}
	if o.ReportPath != "" {
		cfg.Output.ReportPath = o.ReportPath
	}
	if o.HTMLPath != "" {
		cfg.Output.HTMLPath = o.HTMLPath
	}
	if o.Mode != "" {
		cfg.Extraction.Mode = o.Mode
	}
	if o.MaxSentenceWords != nil {
		cfg.Rules.MaxSentenceWords = *o.MaxSentenceWords
	}
	if o.NoColor {
		cfg.Output.Color = false
	}
	if o.NoProgress {
		cfg.Output.Progress = false
	}
}

// ToScanRequest converts a Config to a ScanRequest
func (c *ConfigurationLoaderImpl) ToScanRequest(cfg *config.Config) domain.ScanRequest {
	return domain.ScanRequest{
		Root:             cfg.Scan.Root,
		Extensions:       append([]string(nil), cfg.Scan.Extensions...),
		ExcludeDirs:      append([]string(nil), cfg.Scan.ExcludeDirs...),
		RespectGitignore: cfg.Scan.RespectGitignore,
		Mode:             domain.ExtractionMode(cfg.Extraction.Mode),
		ReportPath:       cfg.Output.ReportPath,
		HTMLPath:         cfg.Output.ResolvedHTMLPath(),
	}
}

// ToRenderRequest converts a Config to a RenderRequest
func (c *ConfigurationLoaderImpl) ToRenderRequest(cfg *config.Config) domain.RenderRequest {
	return domain.RenderRequest{
		ReportPath: cfg.Output.ReportPath,
		HTMLPath:   cfg.Output.ResolvedHTMLPath(),
	}
}
