package decrypt

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pdfdecrypt/internal/decrypt"

// Engine classifies a document/password pair and, when the password is
// right, rebuilds the document without encryption.
//
// Engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	codec  Codec
	log    Logger
	tracer trace.Tracer
}

// NewEngine constructs an Engine. A nil logger discards output.
func NewEngine(codec Codec, log Logger) *Engine {
	if log == nil {
		log = NopLogger{}
	}
	return &Engine{
		codec:  codec,
		log:    log,
		tracer: otel.Tracer(tracerName),
	}
}

// Decrypt runs the ordered checks: readable, encrypted, password, rebuild.
// It never returns a Go error; every fault is folded into the Outcome.
func (e *Engine) Decrypt(ctx context.Context, in Input) Outcome {
	_, span := e.tracer.Start(ctx, "decrypt.Engine.Decrypt",
		trace.WithAttributes(attribute.Int("pdf.input_bytes", len(in.Document))),
	)
	defer span.End()

	out := e.classify(in)

	span.SetAttributes(attribute.String("pdf.outcome", out.Kind.String()))
	if out.Kind == KindSuccess {
		span.SetAttributes(attribute.Int("pdf.pages", out.Pages))
	}
	if out.Kind == KindUnexpectedFailure {
		span.SetStatus(codes.Error, "unexpected failure")
	}
	e.logOutcome(ctx, in, out)
	return out
}

func (e *Engine) classify(in Input) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Kind: KindUnexpectedFailure, Detail: fmt.Errorf("codec panic: %v", r)}
		}
	}()

	doc, err := e.codec.Parse(in.Document)
	if err != nil {
		return Outcome{Kind: KindUnreadableDocument, Detail: err}
	}
	if !doc.Encrypted() {
		return Outcome{Kind: KindNotEncrypted}
	}

	ok, err := doc.Decrypt(in.Password)
	if err != nil {
		return failure("check password", err)
	}
	if !ok {
		return Outcome{Kind: KindWrongPassword}
	}

	pages, err := doc.Pages()
	if err != nil {
		return failure("enumerate pages", err)
	}
	w, err := e.codec.NewWriter(doc)
	if err != nil {
		return failure("create writer", err)
	}
	for _, p := range pages {
		if err := w.AddPage(p); err != nil {
			return failure(fmt.Sprintf("copy page %d", p.Number), err)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return failure("serialize", err)
	}
	return Outcome{Kind: KindSuccess, Document: buf.Bytes(), Pages: len(pages)}
}

// failure maps a fault raised after parsing. ErrNotDecrypted means the
// password did not unlock the document, wherever the codec noticed it.
func failure(step string, err error) Outcome {
	if errors.Is(err, ErrNotDecrypted) {
		return Outcome{Kind: KindWrongPassword, Detail: err}
	}
	return Outcome{Kind: KindUnexpectedFailure, Detail: fmt.Errorf("%s: %w", step, err)}
}

func (e *Engine) logOutcome(ctx context.Context, in Input, out Outcome) {
	rid := RequestIDFrom(ctx)
	switch out.Kind {
	case KindSuccess:
		e.log.Info("pdf decrypted",
			"request_id", rid,
			"pages", out.Pages,
			"input_bytes", len(in.Document),
			"output_bytes", len(out.Document),
		)
	case KindUnexpectedFailure:
		e.log.Error("unexpected error while processing pdf", out.Detail,
			"request_id", rid,
			"input_bytes", len(in.Document),
		)
	case KindUnreadableDocument:
		e.log.Warn("uploaded file is empty or not a valid pdf",
			"request_id", rid,
			"input_bytes", len(in.Document),
			"reason", errString(out.Detail),
		)
	default:
		e.log.Warn("pdf not decrypted",
			"request_id", rid,
			"outcome", out.Kind.String(),
		)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
