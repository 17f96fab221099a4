// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document returns an unencrypted PDF with one page per label. Each page
// draws its label in Helvetica so page order is visible in the content.
func Document(labels ...string) []byte {
	if len(labels) == 0 {
		labels = []string{"Page 1"}
	}

	var (
		buf     bytes.Buffer
		offsets []int
	)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	n := len(labels)
	fontObj := 3 + 2*n
	kids := ""
	for i := 0; i < n; i++ {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kids, n))
	for i, label := range labels {
		obj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
			4+2*i, fontObj,
		))
		content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", label)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf,
		"trailer\n<< /Size %d /Root 1 0 R /ID [<0123456789abcdef0123456789abcdef> <0123456789abcdef0123456789abcdef>] >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref,
	)
	return buf.Bytes()
}

// EncryptAES encrypts raw with AES-256, using password for both the user
// and the owner password.
func EncryptAES(t testing.TB, raw []byte, password string) []byte {
	t.Helper()
	return encrypt(t, raw, model.NewAESConfiguration(password, password, 256))
}

// EncryptAESOwner encrypts raw with AES-256 using distinct user and owner
// passwords.
func EncryptAESOwner(t testing.TB, raw []byte, user, owner string) []byte {
	t.Helper()
	return encrypt(t, raw, model.NewAESConfiguration(user, owner, 256))
}

// EncryptRC4 encrypts raw with 128-bit RC4.
func EncryptRC4(t testing.TB, raw []byte, password string) []byte {
	t.Helper()
	return encrypt(t, raw, model.NewRC4Configuration(password, password, 128))
}

func encrypt(t testing.TB, raw []byte, conf *model.Configuration) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(raw), &out, conf); err != nil {
		t.Fatalf("encrypt fixture: %v", err)
	}
	return out.Bytes()
}

// PageContents returns the decoded content stream of every page of an
// unencrypted PDF, in page order.
func PageContents(t testing.TB, raw []byte) []string {
	t.Helper()
	ctx, err := api.ReadContext(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		t.Fatalf("validate pdf: %v", err)
	}

	contents := make([]string, ctx.PageCount)
	for i := range contents {
		r, err := pdfcpu.ExtractPageContent(ctx, i+1)
		if err != nil {
			t.Fatalf("page %d content: %v", i+1, err)
		}
		if r == nil {
			continue
		}
		b, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("page %d content: %v", i+1, err)
		}
		contents[i] = string(b)
	}
	return contents
}

func init() {
	api.DisableConfigDir()
}
