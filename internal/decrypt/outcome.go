package decrypt

// Kind classifies the result of one decrypt request.
// Every request ends in exactly one Kind.
type Kind int

const (
	KindSuccess Kind = iota
	KindMissingFields
	KindUnreadableDocument
	KindNotEncrypted
	KindWrongPassword
	KindUnexpectedFailure
	// KindInternalError is produced only by the handler's outermost guard.
	KindInternalError
)

// String returns the snake_case label used in logs, metrics and the audit trail.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindMissingFields:
		return "missing_fields"
	case KindUnreadableDocument:
		return "unreadable_document"
	case KindNotEncrypted:
		return "not_encrypted"
	case KindWrongPassword:
		return "wrong_password"
	case KindUnexpectedFailure:
		return "unexpected_failure"
	case KindInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// ValidKindLabel reports whether label is the String form of a known Kind.
func ValidKindLabel(label string) bool {
	for k := KindSuccess; k <= KindInternalError; k++ {
		if k.String() == label {
			return true
		}
	}
	return false
}

// ClientError reports whether the caller can fix the request to get a different result.
func (k Kind) ClientError() bool {
	switch k {
	case KindMissingFields, KindUnreadableDocument, KindNotEncrypted, KindWrongPassword:
		return true
	default:
		return false
	}
}

// Outcome is the tagged result of a decrypt attempt.
//
// Document and Pages are set only for KindSuccess. Detail carries the
// underlying fault for diagnostics and is never sent to the caller.
type Outcome struct {
	Kind     Kind
	Document []byte
	Pages    int
	Detail   error
}

// Input is a validated request: the raw upload and the password, unchanged.
type Input struct {
	Document []byte
	Password string
}
