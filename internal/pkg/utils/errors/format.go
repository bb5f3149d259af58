package errors

import (
	"strings"
)

type mainErrorGetter interface {
	MainError() error
}

type wrappedErrorsGetter interface {
	WrappedErrors() []error
}

// Format renders an error tree as a human-readable bullet list.
// A plain error renders as its message. A MultiError renders one bullet per
// error. A prefixed error renders the prefix followed by indented bullets.
func Format(err error) string {
	var out strings.Builder
	writeError(&out, err, 0)
	return strings.TrimRight(out.String(), "\n")
}

func writeError(out *strings.Builder, err error, level int) {
	main := err
	var sub []error
	if v, ok := err.(mainErrorGetter); ok {
		main = v.MainError()
	}
	if v, ok := err.(wrappedErrorsGetter); ok {
		sub = v.WrappedErrors()
	}

	switch {
	case main == err && len(sub) == 0:
		// Plain error
		writeMessage(out, err.Error(), level)
	case main == err:
		// MultiError: bullets only
		if len(sub) == 1 {
			writeError(out, sub[0], level)
			return
		}
		bulletLevel := level
		if bulletLevel == 0 {
			bulletLevel = 1
		}
		for _, e := range sub {
			writeError(out, e, bulletLevel)
		}
	default:
		// Prefix with nested errors
		if len(sub) == 1 && isSimple(sub[0]) {
			// Short form: "prefix: message"
			writeMessage(out, strings.TrimRight(main.Error(), ".,:")+": "+sub[0].Error(), level)
			return
		}
		writeMessage(out, strings.TrimRight(main.Error(), ".,:")+":", level)
		for _, e := range sub {
			writeError(out, e, level+1)
		}
	}
}

func writeMessage(out *strings.Builder, msg string, level int) {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if level > 0 {
			out.WriteString(strings.Repeat("  ", level-1))
			if i == 0 {
				out.WriteString("- ")
			} else {
				out.WriteString("  ")
			}
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
}

func isSimple(err error) bool {
	if _, ok := err.(wrappedErrorsGetter); ok {
		return false
	}
	return !strings.Contains(err.Error(), "\n")
}
