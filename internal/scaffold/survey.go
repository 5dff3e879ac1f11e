package scaffold

import "github.com/AlecAivazis/survey/v2"

type surveyPrompter struct{}

// NewPrompter returns the terminal-backed prompt driver.
func NewPrompter() Prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Input(message, help string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Help: help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (surveyPrompter) Select(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}
