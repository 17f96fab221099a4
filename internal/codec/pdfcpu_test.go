package codec

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/pdftest"
)

func TestPDFCPU_Parse(t *testing.T) {
	c := NewPDFCPU()
	plain := pdftest.Document("Page 1", "Page 2")

	t.Run("empty input", func(t *testing.T) {
		_, err := c.Parse(nil)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("text file", func(t *testing.T) {
		_, err := c.Parse([]byte("just some notes, definitely not a pdf\n"))
		assert.Error(t, err)
	})

	t.Run("plain document", func(t *testing.T) {
		doc, err := c.Parse(plain)
		require.NoError(t, err)
		assert.False(t, doc.Encrypted())

		pages, err := doc.Pages()
		require.NoError(t, err)
		assert.Equal(t, []decrypt.Page{{Number: 1}, {Number: 2}}, pages)
	})

	t.Run("aes encrypted document is locked", func(t *testing.T) {
		doc, err := c.Parse(pdftest.EncryptAES(t, plain, "correct"))
		require.NoError(t, err)
		assert.True(t, doc.Encrypted())

		_, err = doc.Pages()
		assert.ErrorIs(t, err, decrypt.ErrNotDecrypted)

		_, err = c.NewWriter(doc)
		assert.ErrorIs(t, err, decrypt.ErrNotDecrypted)
	})
}

func TestPDFCPU_Decrypt(t *testing.T) {
	c := NewPDFCPU()
	plain := pdftest.Document("Page 1", "Page 2", "Page 3")

	fixtures := map[string][]byte{
		"aes-256": pdftest.EncryptAES(t, plain, "correct"),
		"rc4-128": pdftest.EncryptRC4(t, plain, "correct"),
	}

	for name, encrypted := range fixtures {
		t.Run(name+"/wrong password", func(t *testing.T) {
			doc, err := c.Parse(encrypted)
			require.NoError(t, err)

			ok, err := doc.Decrypt("wrong")
			assert.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run(name+"/correct password", func(t *testing.T) {
			doc, err := c.Parse(encrypted)
			require.NoError(t, err)

			ok, err := doc.Decrypt("correct")
			require.NoError(t, err)
			require.True(t, ok)

			pages, err := doc.Pages()
			require.NoError(t, err)
			require.Len(t, pages, 3)

			w, err := c.NewWriter(doc)
			require.NoError(t, err)
			for _, p := range pages {
				require.NoError(t, w.AddPage(p))
			}
			var out bytes.Buffer
			n, err := w.WriteTo(&out)
			require.NoError(t, err)
			assert.Equal(t, int64(out.Len()), n)

			reparsed, err := c.Parse(out.Bytes())
			require.NoError(t, err)
			assert.False(t, reparsed.Encrypted())
			again, err := reparsed.Pages()
			require.NoError(t, err)
			assert.Len(t, again, 3)
		})
	}
}

func TestPDFCPU_DecryptDistinctOwnerPassword(t *testing.T) {
	c := NewPDFCPU()
	encrypted := pdftest.EncryptAESOwner(t, pdftest.Document("a"), "reader", "publisher")

	doc, err := c.Parse(encrypted)
	require.NoError(t, err)
	require.True(t, doc.Encrypted())

	ok, err := doc.Decrypt("neither")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func unlocked(t *testing.T, labels ...string) decrypt.Document {
	t.Helper()
	doc, err := NewPDFCPU().Parse(pdftest.EncryptAES(t, pdftest.Document(labels...), "pw"))
	require.NoError(t, err)
	ok, err := doc.Decrypt("pw")
	require.NoError(t, err)
	require.True(t, ok)
	return doc
}

func TestPageWriter_KeepsPageOrder(t *testing.T) {
	c := NewPDFCPU()
	doc := unlocked(t, "Alpha", "Bravo", "Charlie")

	pages, err := doc.Pages()
	require.NoError(t, err)
	w, err := c.NewWriter(doc)
	require.NoError(t, err)
	for _, p := range pages {
		require.NoError(t, w.AddPage(p))
	}
	var out bytes.Buffer
	_, err = w.WriteTo(&out)
	require.NoError(t, err)

	contents := pdftest.PageContents(t, out.Bytes())
	require.Len(t, contents, 3)
	for i, label := range []string{"Alpha", "Bravo", "Charlie"} {
		assert.Contains(t, contents[i], "("+label+")", "page %d", i+1)
	}
}

func TestPageWriter_CopiesRequestedPages(t *testing.T) {
	c := NewPDFCPU()
	doc := unlocked(t, "Alpha", "Bravo", "Charlie")

	w, err := c.NewWriter(doc)
	require.NoError(t, err)
	require.NoError(t, w.AddPage(decrypt.Page{Number: 3}))
	require.NoError(t, w.AddPage(decrypt.Page{Number: 1}))

	var out bytes.Buffer
	_, err = w.WriteTo(&out)
	require.NoError(t, err)

	contents := pdftest.PageContents(t, out.Bytes())
	require.Len(t, contents, 2)
	assert.Contains(t, contents[0], "(Charlie)")
	assert.Contains(t, contents[1], "(Alpha)")
}

func TestPageWriter_Errors(t *testing.T) {
	c := NewPDFCPU()
	doc := unlocked(t, "a", "b")

	w, err := c.NewWriter(doc)
	require.NoError(t, err)

	assert.ErrorIs(t, w.AddPage(decrypt.Page{Number: 0}), ErrPageRange)
	assert.ErrorIs(t, w.AddPage(decrypt.Page{Number: 3}), ErrPageRange)

	_, err = w.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestEngineWithPDFCPU(t *testing.T) {
	engine := decrypt.NewEngine(NewPDFCPU(), nil)
	plain := pdftest.Document("One", "Two")
	encrypted := pdftest.EncryptAES(t, plain, "correct")
	ctx := context.Background()

	tests := []struct {
		name     string
		input    decrypt.Input
		wantKind decrypt.Kind
	}{
		{"zero-length upload", decrypt.Input{Document: []byte{}, Password: "x"}, decrypt.KindUnreadableDocument},
		{"text upload", decrypt.Input{Document: []byte("hello"), Password: "x"}, decrypt.KindUnreadableDocument},
		{"unencrypted pdf", decrypt.Input{Document: plain, Password: "any"}, decrypt.KindNotEncrypted},
		{"wrong password", decrypt.Input{Document: encrypted, Password: "wrong"}, decrypt.KindWrongPassword},
		{"correct password", decrypt.Input{Document: encrypted, Password: "correct"}, decrypt.KindSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.Decrypt(ctx, tt.input)
			assert.Equal(t, tt.wantKind, out.Kind, "detail: %v", out.Detail)
		})
	}

	t.Run("pages keep source order and content", func(t *testing.T) {
		out := engine.Decrypt(ctx, decrypt.Input{Document: encrypted, Password: "correct"})
		require.Equal(t, decrypt.KindSuccess, out.Kind, "detail: %v", out.Detail)

		want := pdftest.PageContents(t, plain)
		got := pdftest.PageContents(t, out.Document)
		require.Len(t, got, 2)
		assert.Contains(t, got[0], "(One)")
		assert.Contains(t, got[1], "(Two)")
		assert.Equal(t, want, got)
	})

	t.Run("repeat decrypt yields the same pages", func(t *testing.T) {
		in := decrypt.Input{Document: encrypted, Password: "correct"}
		first := engine.Decrypt(ctx, in)
		second := engine.Decrypt(ctx, in)
		require.Equal(t, decrypt.KindSuccess, first.Kind)
		require.Equal(t, decrypt.KindSuccess, second.Kind)
		assert.Equal(t, 2, first.Pages)
		assert.Equal(t, first.Pages, second.Pages)
		assert.Equal(t, pdftest.PageContents(t, first.Document), pdftest.PageContents(t, second.Document))
	})
}
