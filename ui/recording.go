package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

// recordingState is shared by a RecordingUI and its Indent children so
// nested prompts consume the same scripted inputs.
type recordingState struct {
	entries []Entry
	inputs  []string
	next    int
	buf     *bytes.Buffer
}

// RecordingUI records every call and answers prompts from a script. Running
// out of scripted inputs panics so a wrong script fails loudly.
type RecordingUI struct {
	state       *recordingState
	indentLevel int
}

func NewRecordingUI(scriptedInputs ...string) *RecordingUI {
	return &RecordingUI{
		state: &recordingState{
			inputs: scriptedInputs,
			buf:    &bytes.Buffer{},
		},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.state.entries = append(r.state.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) nextInput(caller string) string {
	if r.state.next >= len(r.state.inputs) {
		panic(fmt.Sprintf("RecordingUI: no scripted input left for %s (consumed %d)", caller, r.state.next))
	}
	input := r.state.inputs[r.state.next]
	r.state.next++
	return input
}

func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records each row as "label: value".
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records the header line and then one entry per row, cells joined
// with " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	if len(headers) > 0 {
		r.record("TableHeader", strings.Join(headers, " | "))
	}
	for _, row := range rows {
		r.record("TableRow", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

// Ask panics when the scripted input fails validate, there is nobody to
// correct it.
func (r *RecordingUI) Ask(validate func(string) error) string {
	input := r.nextInput("Ask")
	r.record("Ask", input)
	if validate != nil {
		if err := validate(input); err != nil {
			panic(fmt.Sprintf("RecordingUI: scripted input %q failed validation: %s", input, err))
		}
	}
	return input
}

func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	switch strings.ToLower(strings.TrimSpace(r.nextInput("Confirm"))) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultYes
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{state: r.state, indentLevel: r.indentLevel + 1}
}

func (r *RecordingUI) Writer() io.Writer {
	return r.state.buf
}

func (r *RecordingUI) Entries() []Entry {
	return r.state.entries
}

// Messages returns the values recorded by method, in order.
func (r *RecordingUI) Messages(method string) []string {
	result := []string{}
	for _, e := range r.state.entries {
		if e.Method == method {
			result = append(result, e.Value)
		}
	}
	return result
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.state.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output is everything written through Writer.
func (r *RecordingUI) Output() string {
	return r.state.buf.String()
}
