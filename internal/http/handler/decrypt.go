package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/http/middleware"
)

// DecryptDocument removes password protection from an uploaded PDF.
//
// @Summary      Decrypt a password-protected PDF
// @Description  Upload an encrypted PDF and its password; the response is the same document without encryption.
// @Tags         decrypt
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Produce      json
// @Param        pdf_file  formData  file    true  "Encrypted PDF"
// @Param        password  formData  string  true  "Document password"
// @Success      200  {file}    file                "decrypted.pdf"
// @Failure      400  {object}  decrypt.ErrorBody   "Missing fields or unreadable file"
// @Failure      401  {object}  decrypt.ErrorBody   "Wrong password or missing API key"
// @Failure      422  {object}  decrypt.ErrorBody   "PDF is not encrypted"
// @Failure      500  {object}  decrypt.ErrorBody
// @Security     ApiKeyAuth
// @Router       /api/decrypt [post]
func DecryptDocument(d Dependencies) fiber.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) (err error) {
		start := time.Now()
		rid := middleware.RequestIDFrom(c)
		ctx := decrypt.WithRequestID(c.UserContext(), rid)

		var (
			out  decrypt.Outcome
			size int
		)
		defer func() {
			if r := recover(); r != nil {
				log.Error("decrypt handler panicked",
					zap.String("request_id", rid),
					zap.Any("panic", r),
				)
				out = decrypt.Outcome{Kind: decrypt.KindInternalError}
				err = writeEnvelope(c, decrypt.BuildEnvelope(out))
			}
			if d.Observer != nil {
				d.Observer.ObserveOutcome(ctx, decrypt.Observation{
					RequestID:  rid,
					Kind:       out.Kind,
					Status:     c.Response().StatusCode(),
					InputBytes: size,
					Pages:      out.Pages,
					Duration:   time.Since(start),
				})
			}
		}()

		// A body that is not multipart/form-data has neither field.
		form, formErr := c.MultipartForm()
		if formErr != nil {
			form = nil
		}

		in, verr := d.Validator.Validate(ctx, form)
		switch {
		case errors.Is(verr, decrypt.ErrMissingFields):
			out = decrypt.Outcome{Kind: decrypt.KindMissingFields}
		case verr != nil:
			log.Error("failed to read uploaded file", zap.String("request_id", rid), zap.Error(verr))
			out = decrypt.Outcome{Kind: decrypt.KindUnexpectedFailure, Detail: verr}
		default:
			size = len(in.Document)
			out = d.Engine.Decrypt(ctx, in)
		}

		return writeEnvelope(c, decrypt.BuildEnvelope(out))
	}
}
