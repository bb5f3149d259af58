package prompt

import (
	"github.com/AlecAivazis/survey/v2"
)

// Survey implements Prompt on top of AlecAivazis/survey.
type Survey struct{}

func NewSurvey() *Survey {
	return &Survey{}
}

func (p *Survey) Select(label string, options []string, defaultValue string) (string, error) {
	out := ""
	question := &survey.Select{Message: label, Options: options}
	if defaultValue != "" {
		question.Default = defaultValue
	}
	err := survey.AskOne(question, &out)
	return out, err
}

func (p *Survey) Input(label string, defaultValue string) (string, error) {
	out := ""
	err := survey.AskOne(&survey.Input{Message: label, Default: defaultValue}, &out)
	return out, err
}

func (p *Survey) Confirm(label string, defaultValue bool) (bool, error) {
	out := false
	err := survey.AskOne(&survey.Confirm{Message: label, Default: defaultValue}, &out)
	return out, err
}

func (p *Survey) Multiline(label string, defaultValue string) (string, error) {
	out := ""
	err := survey.AskOne(&survey.Multiline{Message: label, Default: defaultValue}, &out)
	return out, err
}
