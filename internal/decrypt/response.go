package decrypt

import (
	"encoding/json"
	"net/http"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"

	// DecryptedFilename is the attachment name of every successful response.
	DecryptedFilename = "decrypted.pdf"
)

// Caller-facing error texts.
const (
	MsgMissingFields      = "Request must include a `pdf_file` and `password` field in multipart/form-data."
	MsgUnreadableDocument = "The uploaded file is empty or not a valid PDF."
	MsgNotEncrypted       = "The provided PDF file is not encrypted."
	MsgWrongPassword      = "Incorrect password provided for the PDF file."
	MsgUnexpectedFailure  = "An unexpected error occurred while processing the PDF."
	MsgInternalError      = "An internal server error occurred."
)

// Envelope is the transport-neutral response for one request.
type Envelope struct {
	Status      int
	Body        []byte
	ContentType string
	Headers     map[string]string
}

type errorRow struct {
	status int
	msg    string
}

var errorRows = map[Kind]errorRow{
	KindMissingFields:      {http.StatusBadRequest, MsgMissingFields},
	KindUnreadableDocument: {http.StatusBadRequest, MsgUnreadableDocument},
	KindNotEncrypted:       {http.StatusUnprocessableEntity, MsgNotEncrypted},
	KindWrongPassword:      {http.StatusUnauthorized, MsgWrongPassword},
	KindUnexpectedFailure:  {http.StatusInternalServerError, MsgUnexpectedFailure},
	KindInternalError:      {http.StatusInternalServerError, MsgInternalError},
}

// BuildEnvelope maps an Outcome to its response. It is pure and total:
// kinds it does not know map to the internal error envelope.
func BuildEnvelope(out Outcome) Envelope {
	if out.Kind == KindSuccess {
		return Envelope{
			Status:      http.StatusOK,
			Body:        out.Document,
			ContentType: ContentTypePDF,
			Headers: map[string]string{
				"Content-Disposition": `attachment; filename="` + DecryptedFilename + `"`,
			},
		}
	}
	row, ok := errorRows[out.Kind]
	if !ok {
		row = errorRows[KindInternalError]
	}
	return ErrorEnvelope(row.status, row.msg)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorEnvelope builds a JSON error envelope with a single "error" field.
func ErrorEnvelope(status int, msg string) Envelope {
	body, err := json.Marshal(ErrorBody{Error: msg})
	if err != nil {
		body = []byte(`{"error":"` + MsgInternalError + `"}`)
	}
	return Envelope{Status: status, Body: body, ContentType: ContentTypeJSON}
}
