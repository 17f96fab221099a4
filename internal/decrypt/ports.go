package decrypt

import (
	"errors"
	"io"
)

// ErrNotDecrypted is the fault a codec raises when a document is used
// before the password check succeeded. The engine treats it as a wrong password.
var ErrNotDecrypted = errors.New("document not decrypted")

// Page identifies one page of a parsed document. Number is 1-based.
type Page struct {
	Number int
}

// Codec is the PDF library the engine drives.
type Codec interface {
	// Parse reads raw bytes into a document handle. It fails on
	// zero-length or malformed input.
	Parse(raw []byte) (Document, error)
	// NewWriter returns an empty writer that copies pages out of src.
	NewWriter(src Document) (PageWriter, error)
}

// Document is a parsed PDF.
type Document interface {
	Encrypted() bool
	// Decrypt checks password. A wrong password is reported either as
	// (false, nil) or as an error wrapping ErrNotDecrypted.
	Decrypt(password string) (bool, error)
	// Pages lists the pages in document order.
	Pages() ([]Page, error)
}

// PageWriter assembles a new, unencrypted document.
type PageWriter interface {
	AddPage(p Page) error
	io.WriterTo
}

// Logger is the logging capability handed to the core.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, err error, kv ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)        {}
func (NopLogger) Info(string, ...any)         {}
func (NopLogger) Warn(string, ...any)         {}
func (NopLogger) Error(string, error, ...any) {}
