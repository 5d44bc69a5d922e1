package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to accessblock! Let's configure the accessibility overlay.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Storage driver.
	driverPrompt := promptui.Select{
		Label: "Where should saved preferences live",
		Items: []string{
			"sqlite   (local database file)",
			"dynamodb (AWS DynamoDB table)",
		},
	}
	driverIdx, _, err := driverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("driver selection: %w", err)
	}
	if driverIdx == 1 {
		cfg.Database.Driver = DriverDynamoDB

		tablePrompt := promptui.Prompt{
			Label:   "DynamoDB table name",
			Default: cfg.Database.Table,
		}
		table, err := tablePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("table name: %w", err)
		}
		cfg.Database.Table = table
	}

	// 2. Provider API key.
	keyPrompt := promptui.Prompt{
		Label: "Bionic Reading API key (leave blank to set ACCESSBLOCK_BIONIC__API_KEY later)",
		Mask:  '*',
	}
	apiKey, err := keyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api key: %w", err)
	}
	cfg.Bionic.APIKey = apiKey

	// 3. Scheme background colours.
	for i := range cfg.Schemes {
		s := &cfg.Schemes[i]
		bgPrompt := promptui.Prompt{
			Label:    "Background colour for scheme " + strconv.Itoa(s.ID),
			Default:  s.Background,
			Validate: validateColourInput,
		}
		bg, err := bgPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("scheme %d background: %w", s.ID, err)
		}
		s.Background = bg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateColourInput(s string) error {
	if !ValidColour(s) {
		return errors.New("please enter a colour such as #FF0050")
	}
	return nil
}
