package output

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
)

// HTMLFormatter converts the rendered outline to HTML.
type HTMLFormatter struct {
	opts FormatOptions
	md   goldmark.Markdown
}

// NewHTMLFormatter creates a new HTML formatter with the given options.
func NewHTMLFormatter(opts FormatOptions) *HTMLFormatter {
	return &HTMLFormatter{opts: opts, md: goldmark.New()}
}

// Name returns the format name.
func (f *HTMLFormatter) Name() string {
	return "html"
}

// Format renders the report as a standalone HTML document.
func (f *HTMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(report.SummaryLine()))
		return err
	}

	body, err := f.Convert(report.Result.RenderedOutput)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "<!DOCTYPE html>")
	fmt.Fprintln(w, "<html>")
	fmt.Fprintln(w, "<head><meta charset=\"utf-8\"><title>NoteMap</title></head>")
	fmt.Fprintln(w, "<body>")
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	if f.opts.Verbose {
		fmt.Fprintf(w, "<footer>%s</footer>\n", html.EscapeString(report.SummaryLine()))
	}
	_, err = fmt.Fprintln(w, "</body>\n</html>")
	return err
}

// Convert renders markdown source to an HTML fragment. Raw HTML in the
// source is omitted.
func (f *HTMLFormatter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting outline to html: %w", err)
	}
	return buf.String(), nil
}
