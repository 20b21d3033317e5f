package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/plaincheck/internal/config"
	"github.com/ludo-technologies/plaincheck/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a plaincheck configuration file",
		Long: `Generate a documented plaincheck configuration file with the default rules.

By default, creates .plaincheck.yaml in the current directory. Use
--interactive for a guided setup.

Examples:
  # Create .plaincheck.yaml in current directory
  plaincheck init

  # Custom output path
  plaincheck init --config config/plaincheck.yaml

  # Overwrite existing file
  plaincheck init --force

  # Only the essential keys
  plaincheck init --minimal

  # Interactive setup wizard
  plaincheck init -i`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

// initChoices holds the answers of the interactive setup
type initChoices struct {
	projectType config.ProjectType
	strictness  config.Strictness
	root        string
	configPath  string
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	out := cmd.OutOrStdout()

	choices := initChoices{
		projectType: config.ProjectTypeGeneric,
		strictness:  config.StrictnessStandard,
		configPath:  configPath,
	}

	if interactive {
		var err error
		choices, err = runInteractiveSetup(out, configPath)
		if err != nil {
			return err
		}
	}
	configPath = choices.configPath

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	content, err := renderInitConfig(choices, minimal)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintf(out, "\nRun '%s scan' to check your project.\n", constants.ToolName)

	return nil
}

func renderInitConfig(choices initChoices, minimal bool) (string, error) {
	if minimal {
		return config.GetMinimalConfigTemplate()
	}
	if choices.root == "" {
		return config.GetFullConfigTemplate(choices.projectType, choices.strictness)
	}
	cfg := config.PresetConfig(choices.projectType, choices.strictness)
	cfg.Scan.Root = choices.root
	return config.RenderConfigTemplate(cfg)
}

func runInteractiveSetup(out io.Writer, defaultConfigPath string) (initChoices, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "plaincheck Configuration Setup")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Generic JavaScript/TypeScript", config.ProjectTypeGeneric},
		{"React", config.ProjectTypeReact},
		{"Vue/Nuxt", config.ProjectTypeVue},
		{"Next.js", config.ProjectTypeNext},
	}

	projectPrompt := promptui.Select{
		Label: "What type of project is this?",
		Items: projectTypes,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }}",
			Inactive: "   {{ .Label | white }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return initChoices{}, fmt.Errorf("project selection cancelled: %w", err)
	}
	projectType := projectTypes[projectIdx].Value

	rootPrompt := promptui.Prompt{
		Label:   "Source directory to scan",
		Default: config.GetProjectPresets()[projectType].Root,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("source directory cannot be empty")
			}
			return nil
		},
	}

	root, err := rootPrompt.Run()
	if err != nil {
		return initChoices{}, fmt.Errorf("source directory input cancelled: %w", err)
	}

	fmt.Fprintln(out)

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Sentences up to 20 words", config.StrictnessStandard},
		{"Relaxed", "Sentences up to 30 words", config.StrictnessRelaxed},
		{"Strict", "Sentences up to 15 words", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the checks be?",
		Items: strictnessLevels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return initChoices{}, fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Fprintln(out)

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return initChoices{}, fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)

	return initChoices{
		projectType: projectType,
		strictness:  strictnessLevels[strictnessIdx].Value,
		root:        strings.TrimSpace(root),
		configPath:  outputPath,
	}, nil
}
