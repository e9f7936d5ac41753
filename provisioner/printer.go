package provisioner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	"github.com/byte4ever/repo_provisioner/git"
)

// Printer reports run checkpoints to the user.
type Printer interface {
	Start()
	Created(htmlURL string)
	Linking(cloneURL string)
	Done()
	Failed(err error)
	// Finish receives the final report.
	Finish(rep Report) error
}

// TextPrinter writes styled checkpoint lines.
type TextPrinter struct {
	w     io.Writer
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	info  lipgloss.Style
}

// NewTextPrinter returns a TextPrinter writing to w.
// Colors are dropped when w is not a terminal.
func NewTextPrinter(w io.Writer) *TextPrinter {
	r := lipgloss.NewRenderer(w)

	return &TextPrinter{
		w:     w,
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		info:  r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// line renders one styled line. Leading newlines are
// written unstyled so lipgloss does not pad them.
func (p *TextPrinter) line(s lipgloss.Style, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	text := strings.TrimLeft(msg, "\n")

	_, _ = io.WriteString(p.w, msg[:len(msg)-len(text)])
	_, _ = fmt.Fprintln(p.w, s.Render(text))
}

// Start prints the banner.
func (p *TextPrinter) Start() {
	p.line(p.title, "--- GitHub Repository Creator ---")
}

// Created prints the repository web URL.
func (p *TextPrinter) Created(htmlURL string) {
	p.line(p.ok, "\n✅ Success! Repository created at: %s", htmlURL)
}

// Linking announces the git phase.
func (p *TextPrinter) Linking(cloneURL string) {
	p.line(p.info, "\nLinking local repository...")
	p.line(p.info, "Pushing to %s...", cloneURL)
}

// Done prints the final success line.
func (p *TextPrinter) Done() {
	p.line(p.ok, "\n🚀 All done! Your project is now on GitHub.")
}

// Failed prints the HTTP status and body for API
// errors, and the error text otherwise.
func (p *TextPrinter) Failed(err error) {
	var apiErr *git.APIError
	if errors.As(err, &apiErr) {
		p.line(p.fail, "\n❌ Error: %v", apiErr)

		return
	}

	p.line(p.fail, "\n❌ An error occurred: %v", err)
}

// Finish is a no-op; text is printed as it happens.
func (p *TextPrinter) Finish(Report) error {
	return nil
}

// JSONPrinter writes the final Report as one JSON
// document and nothing else.
type JSONPrinter struct {
	w io.Writer
}

// NewJSONPrinter returns a JSONPrinter writing to w.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{w: w}
}

// Start, Created, Linking, Done and Failed are no-ops;
// only Finish writes.
func (*JSONPrinter) Start() {}
func (*JSONPrinter) Created(string) {}
func (*JSONPrinter) Linking(string) {}
func (*JSONPrinter) Done() {}
func (*JSONPrinter) Failed(error) {}

// Finish encodes rep.
func (p *JSONPrinter) Finish(rep Report) error {
	const errCtx = "writing json report"

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
