package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProjectType represents the kind of frontend project being checked
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeReact   ProjectType = "react"
	ProjectTypeVue     ProjectType = "vue"
	ProjectTypeNext    ProjectType = "next"
)

// Strictness represents how long sentences may get
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file selection presets for a project type
type ProjectPreset struct {
	Root        string
	Extensions  []string
	ExcludeDirs []string
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			Root:        DefaultRoot,
			Extensions:  DefaultExtensions,
			ExcludeDirs: DefaultExcludeDirs,
		},
		ProjectTypeReact: {
			Root:        DefaultRoot,
			Extensions:  DefaultExtensions,
			ExcludeDirs: []string{"node_modules", "dist", "build", ".git", "coverage"},
		},
		ProjectTypeVue: {
			Root:        DefaultRoot,
			Extensions:  []string{".vue", ".jsx", ".js", ".tsx", ".ts"},
			ExcludeDirs: []string{"node_modules", "dist", "build", ".git", ".nuxt", "coverage"},
		},
		ProjectTypeNext: {
			Root:        ".",
			Extensions:  DefaultExtensions,
			ExcludeDirs: []string{"node_modules", "dist", "build", ".git", ".next", "out", "coverage", "public"},
		},
	}
}

// GetStrictnessPresets returns the sentence limit for each strictness level
func GetStrictnessPresets() map[Strictness]int {
	return map[Strictness]int{
		StrictnessRelaxed:  30,
		StrictnessStandard: 20,
		StrictnessStrict:   15,
	}
}

// PresetConfig returns the default configuration adjusted for a project
// type and strictness level
func PresetConfig(projectType ProjectType, strictness Strictness) *Config {
	cfg := DefaultConfig()
	if preset, ok := GetProjectPresets()[projectType]; ok {
		cfg.Scan.Root = preset.Root
		cfg.Scan.Extensions = append([]string(nil), preset.Extensions...)
		cfg.Scan.ExcludeDirs = append([]string(nil), preset.ExcludeDirs...)
	}
	if words, ok := GetStrictnessPresets()[strictness]; ok {
		cfg.Rules.MaxSentenceWords = words
	}
	return cfg
}

var sectionComments = map[string]string{
	"scan":       "Which files are read. Directories in exclude_dirs are skipped at any depth.",
	"extraction": "How text is found: \"regex\" (markup, quoted and template scans; text can be\ncounted twice) or \"syntax\" (tree-sitter, each literal once).",
	"rules":      "Sentences longer than max_sentence_words are reported.\nEach dictionary replaces the built-in list when set.",
	"output":     "Report files. html_path defaults to report_path with an .html extension.",
}

// GetFullConfigTemplate returns the documented YAML config for init
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) (string, error) {
	return RenderConfigTemplate(PresetConfig(projectType, strictness))
}

// GetMinimalConfigTemplate returns a config with only the essential keys
func GetMinimalConfigTemplate() (string, error) {
	cfg := DefaultConfig()
	minimal := map[string]any{
		"scan": map[string]any{
			"root":         cfg.Scan.Root,
			"exclude_dirs": cfg.Scan.ExcludeDirs,
		},
		"rules": map[string]any{
			"max_sentence_words": cfg.Rules.MaxSentenceWords,
		},
		"output": map[string]any{
			"report_path": cfg.Output.ReportPath,
		},
	}
	out, err := yaml.Marshal(minimal)
	if err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}
	return "# plaincheck configuration (minimal)\n" + string(out), nil
}

// RenderConfigTemplate renders cfg as documented YAML
func RenderConfigTemplate(cfg *Config) (string, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}

	if doc.Kind == yaml.MappingNode {
		doc.HeadComment = "plaincheck configuration"
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key := doc.Content[i]
			if comment, ok := sectionComments[key.Value]; ok {
				key.HeadComment = comment
			}
		}
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}
	return string(out), nil
}
