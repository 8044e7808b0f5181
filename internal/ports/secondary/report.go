package secondary

import (
	"context"
	"io"
)

// Report is a rendered-format-agnostic table document.
type Report struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// ReportRenderer defines the secondary port for turning a Report into a document.
type ReportRenderer interface {
	// Render writes the document to w.
	Render(ctx context.Context, w io.Writer, report Report) error

	// Extension is the file extension of the produced document, e.g. ".pdf".
	Extension() string
}

// ReportSink defines the secondary port for storing a rendered document.
type ReportSink interface {
	// Write stores whatever fill writes under path. A failed fill leaves no file behind.
	Write(ctx context.Context, path string, fill func(w io.Writer) error) error

	// Resolve turns a user-supplied destination into an absolute path.
	Resolve(path string) (string, error)
}
