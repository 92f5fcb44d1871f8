package export

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Exporter prints rendered documents and hands the PDF to a sink.
type Exporter struct {
	printer Printer
	sink    Sink
	log     zerolog.Logger
}

// Option configures an Exporter
type Option func(*Exporter)

// WithPrinter replaces the headless Chrome printer.
func WithPrinter(p Printer) Option {
	return func(e *Exporter) { e.printer = p }
}

// WithSink sets where ExportPDF stores files.
func WithSink(s Sink) Option {
	return func(e *Exporter) { e.sink = s }
}

// New creates an Exporter that prints with headless Chrome and writes to the
// working directory unless configured otherwise.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		printer: ChromePrinter{Timeout: DefaultTimeout},
		sink:    FileSink{Dir: "."},
		log:     logger.WithComponent("export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PDF prints doc and returns the bytes without storing them.
func (e *Exporter) PDF(ctx context.Context, doc *rendering.Document) ([]byte, error) {
	if doc == nil || len(doc.HTML) == 0 {
		return nil, &ExportError{Message: "nothing to export"}
	}

	start := time.Now()
	data, err := e.printer.Print(ctx, doc.HTML)
	if err != nil {
		e.log.Error().Err(err).Str("template", string(doc.Template)).Msg("PDF export failed")
		return nil, err
	}
	if len(data) == 0 {
		err := &ExportError{Message: "printer returned no data"}
		e.log.Error().Err(err).Str("template", string(doc.Template)).Msg("PDF export failed")
		return nil, err
	}

	e.log.Info().
		Str("template", string(doc.Template)).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Printed PDF")
	return data, nil
}

// ExportPDF prints doc and saves it under filename (DefaultFilename when empty).
// It returns the location reported by the sink.
func (e *Exporter) ExportPDF(ctx context.Context, doc *rendering.Document, filename string) (string, error) {
	data, err := e.PDF(ctx, doc)
	if err != nil {
		return "", err
	}

	location, err := e.sink.Save(ctx, CleanFilename(filename), data)
	if err != nil {
		e.log.Error().Err(err).Str("filename", filename).Msg("Failed to store PDF")
		return "", err
	}

	e.log.Info().Str("location", location).Msg("Exported PDF")
	return location, nil
}
