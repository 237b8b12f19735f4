// Package ui is every piece of terminal interaction of the schoolfactory
// commands. Commands take a UI so tests can swap in a RecordingUI.
package ui

import (
	"encoding/json"
	"io"
)

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
	SeverityCritical
)

// StyledText is a plain string with a Severity. It marshals as the plain
// string so JSON output never carries colour codes.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

func Styled(text string, severity Severity) StyledText {
	return StyledText{Text: text, Severity: severity}
}

type UI interface {
	// Style colours t for embedding in a larger line. Without colours the
	// plain text comes back.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error only prints. Callers decide whether to stop.
	Error(format string, args ...any)
	// Critical is for data the user must review before signing, and for
	// proof of what was broadcast.
	Critical(format string, args ...any)

	// Section prints "===== title =====".
	Section(title string)
	// KeyValue prints label/value rows with the values aligned.
	KeyValue(rows [][2]string)
	// Table prints a bordered table. Nil headers print no header row.
	Table(headers []string, rows [][]string)

	// Spinner animates msg until the returned func is called.
	Spinner(msg string) func()

	// Ask reads one line after a "> " prompt until validate accepts it. A
	// nil validate accepts anything.
	Ask(validate func(string) error) string
	Confirm(prompt string, defaultYes bool) bool

	// Indent returns a child one level deeper sharing the same reader and
	// writer.
	Indent() UI
	// Writer prefixes every line written to it with the current indent.
	Writer() io.Writer
}
