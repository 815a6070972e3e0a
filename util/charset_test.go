package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/git-l10n/po-codec/po"
)

const latin1PO = "msgid \"\"\n" +
	"msgstr \"\"\n" +
	"\"Language: fr\\n\"\n" +
	"\"Content-Type: text/plain; charset=ISO-8859-1\\n\"\n" +
	"\n" +
	"msgid \"coffee\"\n" +
	"msgstr \"caf\xe9\"\n"

func TestSniffCharset(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{latin1PO, "ISO-8859-1"},
		{`"Content-Type: text/plain; charset=UTF-8\n"`, "UTF-8"},
		{`"content-type: text/plain; CHARSET=koi8-r\n"`, "koi8-r"},
		{`"Content-Type: text/plain\n"`, ""},
		{"msgid \"charset=foo\"\n", ""},
		{"", ""},
	} {
		if got := SniffCharset([]byte(tc.in)); got != tc.want {
			t.Errorf("SniffCharset(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestIsUTF8Charset(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", "Utf-8", "CHARSET"} {
		if !IsUTF8Charset(name) {
			t.Errorf("IsUTF8Charset(%q) should be true", name)
		}
	}
	for _, name := range []string{"ISO-8859-1", "GBK", "UTF-16"} {
		if IsUTF8Charset(name) {
			t.Errorf("IsUTF8Charset(%q) should be false", name)
		}
	}
}

func TestDecodeCatalog(t *testing.T) {
	data, from, err := DecodeCatalog([]byte(latin1PO), "")
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	if from != "ISO-8859-1" {
		t.Errorf("charset: want ISO-8859-1, got %q", from)
	}
	f := parseTestPO(t, string(data))
	if s, _ := f.Entries()[0].Translation(); s != "café" {
		t.Errorf("translation: want café, got %q", s)
	}

	utf8PO := []byte(testPO)
	data, from, err = DecodeCatalog(utf8PO, "")
	if err != nil || from != "" || string(data) != testPO {
		t.Errorf("UTF-8 input should pass through, got from=%q err=%v", from, err)
	}
}

func TestCharsetRoundTrip(t *testing.T) {
	out, err := FromUTF8([]byte("café"), "ISO-8859-1")
	if err != nil {
		t.Fatalf("FromUTF8: %v", err)
	}
	if string(out) != "caf\xe9" {
		t.Errorf("FromUTF8: got %q", out)
	}
	back, err := ToUTF8(out, "ISO-8859-1")
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if string(back) != "café" {
		t.Errorf("ToUTF8: got %q", back)
	}

	if _, err := FromUTF8([]byte("x"), "NO-SUCH-CHARSET"); err == nil {
		t.Errorf("expected error for unknown charset")
	}
}

func TestSetCharset(t *testing.T) {
	for _, tc := range []struct {
		contentType string
		want        string
	}{
		{"text/plain; charset=CHARSET", "text/plain; charset=ISO-8859-1"},
		{"text/plain", "text/plain; charset=ISO-8859-1"},
		{"", "text/plain; charset=ISO-8859-1"},
	} {
		b := po.NewHeaderBuilder().Set(po.HeaderLanguage, "fr")
		if tc.contentType != "" {
			b.Set(po.HeaderContentType, tc.contentType)
		}
		f := po.NewFileBuilder().SetHeader(b.Build()).Build()
		got := SetCharset(f, "ISO-8859-1").Header().ContentType()
		if got != tc.want {
			t.Errorf("SetCharset(%q): want %q, got %q", tc.contentType, tc.want, got)
		}
	}

	noHeader := po.NewFileBuilder().Build()
	if SetCharset(noHeader, "UTF-8") != noHeader {
		t.Errorf("file without header should be returned unchanged")
	}
}

func TestReadWriteLatin1Catalog(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fr.po")
	if err := os.WriteFile(in, []byte(latin1PO), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", in, err)
	}

	f, err := ReadCatalog(in, CatalogOptions{Parser: po.DefaultParserOptions()})
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	if cs := f.Header().Charset(); cs != "UTF-8" {
		t.Errorf("header charset after decoding: want UTF-8, got %q", cs)
	}

	out := filepath.Join(dir, "out.po")
	if err := WriteCatalog(out, f, po.DefaultWriterOptions(), "ISO-8859-1"); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != latin1PO {
		t.Errorf("output differs:\nwant %q\ngot  %q", latin1PO, data)
	}
}
