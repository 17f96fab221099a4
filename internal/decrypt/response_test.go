package decrypt

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvelope_Errors(t *testing.T) {
	tests := []struct {
		kind       Kind
		wantStatus int
		wantMsg    string
	}{
		{KindMissingFields, http.StatusBadRequest, MsgMissingFields},
		{KindUnreadableDocument, http.StatusBadRequest, MsgUnreadableDocument},
		{KindNotEncrypted, http.StatusUnprocessableEntity, MsgNotEncrypted},
		{KindWrongPassword, http.StatusUnauthorized, MsgWrongPassword},
		{KindUnexpectedFailure, http.StatusInternalServerError, MsgUnexpectedFailure},
		{KindInternalError, http.StatusInternalServerError, MsgInternalError},
		{Kind(99), http.StatusInternalServerError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			env := BuildEnvelope(Outcome{Kind: tt.kind})

			assert.Equal(t, tt.wantStatus, env.Status)
			assert.Equal(t, ContentTypeJSON, env.ContentType)
			assert.Empty(t, env.Headers)

			var body map[string]any
			require.NoError(t, json.Unmarshal(env.Body, &body))
			assert.Len(t, body, 1)
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestBuildEnvelope_UnexpectedFailureHidesDetail(t *testing.T) {
	env := BuildEnvelope(Outcome{Kind: KindUnexpectedFailure, Detail: assert.AnError})

	assert.NotContains(t, string(env.Body), assert.AnError.Error())
}

func TestBuildEnvelope_Success(t *testing.T) {
	pdf := []byte("%PDF-1.7 decrypted")
	env := BuildEnvelope(Outcome{Kind: KindSuccess, Document: pdf, Pages: 1})

	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, ContentTypePDF, env.ContentType)
	assert.Equal(t, pdf, env.Body)
	assert.Equal(t, `attachment; filename="decrypted.pdf"`, env.Headers["Content-Disposition"])
}

func TestKind_ClientError(t *testing.T) {
	client := []Kind{KindMissingFields, KindUnreadableDocument, KindNotEncrypted, KindWrongPassword}
	server := []Kind{KindSuccess, KindUnexpectedFailure, KindInternalError}

	for _, k := range client {
		assert.True(t, k.ClientError(), k.String())
	}
	for _, k := range server {
		assert.False(t, k.ClientError(), k.String())
	}
}

func TestValidKindLabel(t *testing.T) {
	assert.True(t, ValidKindLabel("wrong_password"))
	assert.True(t, ValidKindLabel("internal_error"))
	assert.False(t, ValidKindLabel("unknown"))
	assert.False(t, ValidKindLabel("WRONG_PASSWORD"))
}
