package report

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-invoicing/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	ContentTypePDF = "application/pdf"
	ContentTypeZip = "application/zip"
	// ZipFilename names the archive of several rendered templates.
	ZipFilename = "invoices reports.zip"
)

// ErrNoTemplates is returned when no template is selected.
var ErrNoTemplates = errors.New("no invoice template selected")

// File is one rendered template.
type File struct {
	Name    string
	Content []byte
}

// Report is a downloadable result.
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Filename of a template rendering.
func Filename(t models.InvoiceTemplate) string {
	return t.Name + ".pdf"
}

// Render renders doc once per template, concurrently, keeping template order.
func Render(ctx context.Context, r Renderer, doc Document, templates []models.InvoiceTemplate) ([]File, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	files := make([]File, len(templates))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range templates {
		g.Go(func() error {
			content, err := r.Render(ctx, doc, t)
			if err != nil {
				return err
			}
			files[i] = File{Name: Filename(t), Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Build renders the selection: a single template yields its PDF, several
// yield a zip archive of their PDFs.
func Build(ctx context.Context, r Renderer, doc Document, templates []models.InvoiceTemplate) (Report, error) {
	files, err := Render(ctx, r, doc, templates)
	if err != nil {
		return Report{}, err
	}
	if len(files) == 1 {
		return Report{Filename: files[0].Name, ContentType: ContentTypePDF, Content: files[0].Content}, nil
	}
	content, err := Zip(files)
	if err != nil {
		return Report{}, err
	}
	return Report{Filename: ZipFilename, ContentType: ContentTypeZip, Content: content}, nil
}

// Zip archives files in order.
func Zip(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
