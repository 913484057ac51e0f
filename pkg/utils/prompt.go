package utils

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// SelectDeck interactively picks one of the discovered decks. When prompts
// are disabled (LMPGEN_SKIP_PROMPTS=true, for CI) a single discovered deck
// is chosen automatically and anything else is an error.
func SelectDeck(decks []DeckInfo) (*DeckInfo, error) {
	if len(decks) == 0 {
		return nil, fmt.Errorf("no decks found")
	}

	if os.Getenv("LMPGEN_SKIP_PROMPTS") == "true" {
		if len(decks) == 1 {
			return &decks[0], nil
		}
		return nil, fmt.Errorf("multiple decks found and prompts are disabled; pass a deck path")
	}

	options := make([]string, len(decks))
	byOption := make(map[string]*DeckInfo, len(decks))
	for i := range decks {
		d := &decks[i]
		options[i] = fmt.Sprintf("%s (%d directives, %d steps)", d.Name, d.Directives, d.RunSteps)
		byOption[options[i]] = d
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select a deck to run:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, fmt.Errorf("deck selection cancelled: %w", err)
	}

	return byOption[selected], nil
}

// Confirm asks a yes/no question. With prompts disabled it answers no, so
// automation never overwrites anything by accident.
func Confirm(message string) (bool, error) {
	if os.Getenv("LMPGEN_SKIP_PROMPTS") == "true" {
		return false, nil
	}

	confirmed := false
	prompt := &survey.Confirm{Message: message}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return confirmed, nil
}
