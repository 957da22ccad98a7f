package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectInput looks for a symbol file in the current directory.
func detectInput() string {
	for _, pattern := range []string{"symbols.json", "*.symbols.json", "symbols.y*ml"} {
		matches, _ := filepath.Glob(pattern)
		if len(matches) > 0 {
			return matches[0]
		}
	}
	return "symbols.json"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to symburst! Let's configure your project.")
	fmt.Println()

	// 1. Input file.
	inputPrompt := promptui.Prompt{
		Label:   "Symbol file (JSON or YAML)",
		Default: detectInput(),
	}
	input, err := inputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}

	// 2. Initial filter.
	typesPrompt := promptui.Select{
		Label: "Initial view",
		Items: []string{
			"t     : text (code)",
			"d     : initialized data",
			"b     : bss",
			"t,d,b : everything",
		},
	}
	typesIdx, _, err := typesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("type selection: %w", err)
	}
	types := [][]string{{"t"}, {"d"}, {"b"}, {"t", "d", "b"}}[typesIdx]

	// 3. Root label.
	appPrompt := promptui.Prompt{
		Label:   "Root label (blank to use the app name from the file)",
		Default: "",
	}
	app, err := appPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("root label: %w", err)
	}

	// 4. Exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated globs over path/obj)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:   "Viewer port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// Build the config.
	cfg := DefaultConfig()
	cfg.Input = input
	cfg.Types = types
	cfg.App = app
	cfg.Exclude = splitAndTrim(excludeStr)
	cfg.Port = port

	if _, err := os.Stat(input); os.IsNotExist(err) {
		fmt.Printf("\nNote: %s does not exist yet; point `input` at your symbol file before running symburst serve.\n", input)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
