package decrypt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

const (
	// FileField is the multipart file part carrying the encrypted PDF.
	FileField = "pdf_file"
	// PasswordField is the multipart text field carrying the password.
	PasswordField = "password"
)

// ErrMissingFields is returned when either required field is absent or empty.
var ErrMissingFields = errors.New("pdf_file and password fields are required")

// Validator checks that a multipart form carries both required fields.
type Validator struct {
	log Logger
}

// NewValidator constructs a Validator. A nil logger discards output.
func NewValidator(log Logger) *Validator {
	if log == nil {
		log = NopLogger{}
	}
	return &Validator{log: log}
}

// Validate extracts the document bytes and password from form.
//
// A file part that is present but zero bytes long passes validation;
// the engine reports it as an unreadable document.
func (v *Validator) Validate(ctx context.Context, form *multipart.Form) (Input, error) {
	fh, password, ok := lookupFields(form)
	if !ok {
		v.log.Warn("request missing pdf_file or password field",
			"request_id", RequestIDFrom(ctx),
			"has_file", fh != nil,
			"has_password", password != "",
		)
		return Input{}, ErrMissingFields
	}

	f, err := fh.Open()
	if err != nil {
		return Input{}, fmt.Errorf("open %s: %w", FileField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", FileField, err)
	}
	return Input{Document: data, Password: password}, nil
}

func lookupFields(form *multipart.Form) (*multipart.FileHeader, string, bool) {
	if form == nil {
		return nil, "", false
	}
	var fh *multipart.FileHeader
	if files := form.File[FileField]; len(files) > 0 && files[0] != nil && files[0].Filename != "" {
		fh = files[0]
	}
	var password string
	if values := form.Value[PasswordField]; len(values) > 0 {
		password = values[0]
	}
	return fh, password, fh != nil && password != ""
}
