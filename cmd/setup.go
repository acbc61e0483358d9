package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"ffcrop/infrastructure/config"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config/config.yaml.

The configuration file is optional: it supplies a default output directory,
an ffmpeg executable path, and the sub-second precision used in generated
[timestamp] substitutions. Command-line flags always take precedence.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to ffcrop setup!")
	fmt.Println()

	cfg := &config.Config{}

	ffmpegPath, err := prompter.Input("Path to the ffmpeg executable (leave empty to use PATH):", "")
	if err != nil {
		return err
	}
	cfg.FFmpeg.Path = ffmpegPath

	outputDir, err := prompter.Input("Default output directory (used when --output is omitted):", "")
	if err != nil {
		return err
	}
	cfg.Output.DefaultDirectory = outputDir

	customPrecision, err := prompter.Confirm("Override the sub-second precision of generated timestamps?", false)
	if err != nil {
		return err
	}
	if customPrecision {
		digitsStr, err := prompter.Input("Sub-second digits (0-9):", "4")
		if err != nil {
			return err
		}
		digits, err := strconv.Atoi(digitsStr)
		if err != nil || digits < 0 || digits > 9 {
			return fmt.Errorf("sub-second digits must be a number between 0 and 9")
		}
		cfg.Output.TimestampSubsecondDigits = &digits
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}
