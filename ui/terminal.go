package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 60
	promptPrefix = "> "
)

// TerminalUI writes to out and reads from in. Indentation is a level
// count, two spaces per level.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	border      lipgloss.Style
	isTTY       bool
}

// NewTerminalUI uses stdout and stdin. Colours and the spinner are on only
// when stdout is a terminal.
func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWith(os.Stdout, os.Stdin, term.IsTerminal(int(os.Stdout.Fd())))
}

func NewTerminalUIWith(out io.Writer, in io.Reader, isTTY bool) *TerminalUI {
	return &TerminalUI{
		out:    out,
		in:     bufio.NewReader(in),
		au:     aurora.NewAurora(isTTY),
		border: lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("240")),
		isTTY:  isTTY,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	}
	return t.Text
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.Style(Styled(fmt.Sprintf(format, args...), SeveritySuccess)))
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.Style(Styled(fmt.Sprintf(format, args...), SeverityWarn)))
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.Style(Styled(fmt.Sprintf(format, args...), SeverityError)))
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.Style(Styled(fmt.Sprintf(format, args...), SeverityCritical)))
}

func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", bars-left)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, err := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if validate == nil {
			return input
		}
		verr := validate(input)
		if verr == nil {
			return input
		}
		// no more input will come, don't spin on the validator
		if err != nil {
			return input
		}
		u.Error("%s", verr)
	}
}

// Confirm accepts y/yes/n/no in any case. An empty answer or a closed
// input picks the default.
func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[Y/n]"
	if !defaultYes {
		options = "[y/N]"
	}
	u.Info("%s %s", prompt, options)
	answer := strings.ToLower(strings.TrimSpace(u.Ask(func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("please enter y or n")
	})))
	switch answer {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultYes
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > width {
			width = w
		}
	}
	for _, r := range rows {
		u.writeLine(runewidth.FillRight(r[0], width) + "  " + r[1])
	}
}

// visibleWidth ignores the colour codes Style embeds in cells.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padCell(s string, w int) string {
	if v := visibleWidth(s); v < w {
		return s + strings.Repeat(" ", w-v)
	}
	return s
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}
	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i, cell := range r {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(left, mid, right string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return u.border.Render(left + strings.Join(parts, mid) + right)
	}
	row := func(cells []string) string {
		sep := u.border.Render("│")
		var b strings.Builder
		b.WriteString(sep)
		for i := 0; i < ncols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" " + padCell(cell, widths[i]) + " " + sep)
		}
		return b.String()
	}

	u.writeLine(line("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.writeLine(row(headers))
		u.writeLine(line("├", "┼", "┤"))
	}
	for _, r := range rows {
		u.writeLine(row(r))
	}
	u.writeLine(line("└", "┴", "┘"))
}

// Spinner only animates on a terminal. Elsewhere msg is printed once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.isTTY {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.prefix()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner clears its line with \r and leaves the cursor there
		fmt.Fprintln(u.out)
	}
}

func (u *TerminalUI) Indent() UI {
	child := *u
	child.indentLevel++
	return &child
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
