// Package prompt abstracts interactive terminal questions, so dialogs can
// be scripted in tests.
package prompt

// Prompt asks the user. Implementations: Survey (terminal) and the test
// scripted prompt in dialog tests.
type Prompt interface {
	Select(label string, options []string, defaultValue string) (string, error)
	Input(label string, defaultValue string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
	Multiline(label string, defaultValue string) (string, error)
}
