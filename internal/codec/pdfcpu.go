// Package codec adapts pdfcpu to the decrypt engine's Codec port.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdfdecrypt/internal/decrypt"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	// ErrPageRange is returned when a writer is handed a page the source
	// document does not have.
	ErrPageRange = errors.New("page number out of range")
	// ErrNoPages is returned by WriteTo when no page was added.
	ErrNoPages = errors.New("no pages to write")
)

// PDFCPU is a decrypt.Codec backed by github.com/pdfcpu/pdfcpu.
// It keeps no state between documents.
type PDFCPU struct{}

var _ decrypt.Codec = (*PDFCPU)(nil)

// NewPDFCPU returns the codec. pdfcpu's on-disk configuration directory is
// disabled so the process never touches the filesystem.
func NewPDFCPU() *PDFCPU {
	api.DisableConfigDir()
	return &PDFCPU{}
}

// Parse reads raw without a password. An encrypted document whose user
// password is not empty parses as locked rather than failing.
func (PDFCPU) Parse(raw []byte) (decrypt.Document, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	ctx, err := readContext(raw, "", model.VALIDATE)
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return &document{raw: raw, encrypted: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return &document{raw: raw, encrypted: ctx.Encrypt != nil, ctx: ctx}, nil
}

// NewWriter returns a writer that serialises src without encryption.
func (PDFCPU) NewWriter(src decrypt.Document) (decrypt.PageWriter, error) {
	d, ok := src.(*document)
	if !ok {
		return nil, fmt.Errorf("pdfcpu writer: unsupported document type %T", src)
	}
	if d.encrypted && !d.unlocked {
		return nil, decrypt.ErrNotDecrypted
	}
	return &pageWriter{src: d}, nil
}

type document struct {
	raw       []byte
	encrypted bool
	unlocked  bool
	validated bool
	ctx       *model.Context
}

func (d *document) Encrypted() bool { return d.encrypted }

// Decrypt re-reads the document with password as both user and owner
// password. On success the context is validated and optimised the same way
// pdfcpu's own decrypt command prepares it for writing.
func (d *document) Decrypt(password string) (bool, error) {
	if !d.encrypted {
		return true, nil
	}

	ctx, err := readContext(d.raw, password, model.DECRYPT)
	switch {
	case errors.Is(err, pdfcpu.ErrWrongPassword):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read encrypted pdf: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return false, fmt.Errorf("validate pdf: %w", err)
	}
	if err := api.OptimizeContext(ctx); err != nil {
		return false, fmt.Errorf("optimize pdf: %w", err)
	}

	d.ctx = ctx
	d.unlocked = true
	d.validated = true
	return true, nil
}

func (d *document) Pages() ([]decrypt.Page, error) {
	if d.encrypted && !d.unlocked {
		return nil, decrypt.ErrNotDecrypted
	}
	if !d.validated {
		if err := api.ValidateContext(d.ctx); err != nil {
			return nil, fmt.Errorf("validate pdf: %w", err)
		}
		d.validated = true
	}

	pages := make([]decrypt.Page, d.ctx.PageCount)
	for i := range pages {
		pages[i] = decrypt.Page{Number: i + 1}
	}
	return pages, nil
}

// pageWriter collects page numbers and builds a fresh unencrypted
// document from them, in the order they were added.
type pageWriter struct {
	src   *document
	pages []int
}

func (w *pageWriter) AddPage(p decrypt.Page) error {
	if p.Number < 1 || p.Number > w.src.ctx.PageCount {
		return fmt.Errorf("%w: page %d of %d", ErrPageRange, p.Number, w.src.ctx.PageCount)
	}
	w.pages = append(w.pages, p.Number)
	return nil
}

func (w *pageWriter) WriteTo(dst io.Writer) (int64, error) {
	if len(w.pages) == 0 {
		return 0, ErrNoPages
	}
	out, err := pdfcpu.ExtractPages(w.src.ctx, w.pages, false)
	if err != nil {
		return 0, fmt.Errorf("copy pages: %w", err)
	}
	cw := &countingWriter{w: dst}
	if err := api.WriteContext(out, cw); err != nil {
		return cw.n, fmt.Errorf("write pdf: %w", err)
	}
	return cw.n, nil
}

func readContext(raw []byte, password string, cmd model.CommandMode) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = cmd
	conf.UserPW = password
	conf.OwnerPW = password
	return api.ReadContext(bytes.NewReader(raw), conf)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
