package util

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/git-l10n/po-codec/po"
	"github.com/qiniu/iconv"
)

// The header comes first, so the first match in the raw file is the
// declared charset.
var (
	rawCharsetRegex    = regexp.MustCompile(`(?i)Content-Type:[^"\n]*charset=([^\s\\";]+)`)
	headerCharsetRegex = regexp.MustCompile(`(?i)charset=[^\s;]*`)
)

// SniffCharset returns the charset declared in the Content-Type header of
// raw PO data, or "" if none is found.
func SniffCharset(data []byte) string {
	m := rawCharsetRegex.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// IsUTF8Charset reports whether name is an alias of UTF-8. The "CHARSET"
// placeholder of POT templates counts as UTF-8.
func IsUTF8Charset(name string) bool {
	n := strings.ToLower(strings.Replace(name, "-", "", -1))
	switch n {
	case "", "utf8", "charset":
		return true
	}
	return false
}

// DecodeCatalog converts raw PO data to UTF-8. The charset is taken from
// override, or sniffed from the header. It returns the charset converted
// from, or "" if the data was already UTF-8.
func DecodeCatalog(data []byte, override string) ([]byte, string, error) {
	charset := override
	if charset == "" {
		charset = SniffCharset(data)
	}
	if IsUTF8Charset(charset) {
		return data, "", nil
	}
	out, err := ToUTF8(data, charset)
	if err != nil {
		return nil, "", err
	}
	return out, charset, nil
}

// ToUTF8 converts data from charset to UTF-8.
func ToUTF8(data []byte, charset string) ([]byte, error) {
	out, err := convert(data, "UTF-8", charset)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("bad UTF-8 characters after converting from %s", charset)
	}
	return out, nil
}

// FromUTF8 converts UTF-8 data to charset.
func FromUTF8(data []byte, charset string) ([]byte, error) {
	return convert(data, charset, "UTF-8")
}

func convert(data []byte, to, from string) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	cd, err := iconv.Open(to, from)
	if err != nil {
		return nil, fmt.Errorf("iconv.Open failed: %w", err)
	}
	defer cd.Close()

	outbuf := make([]byte, 2*len(data)+16)
	out, inleft, err := cd.Conv(data, outbuf)
	if err != nil {
		return nil, fmt.Errorf("bad %s characters at offset %d: %w", from, len(data)-inleft, err)
	}
	return bytes.Clone(out), nil
}

// SetCharset returns a copy of f whose Content-Type header declares charset.
// Files without a header are returned unchanged.
func SetCharset(f *po.File, charset string) *po.File {
	h := f.Header()
	if h == nil {
		return f
	}
	contentType := h.ContentType()
	switch {
	case contentType == "":
		contentType = "text/plain; charset=" + charset
	case headerCharsetRegex.MatchString(contentType):
		contentType = headerCharsetRegex.ReplaceAllLiteralString(contentType, "charset="+charset)
	default:
		contentType += "; charset=" + charset
	}
	if contentType == h.ContentType() {
		return f
	}
	h = h.ToBuilder().Set(po.HeaderContentType, contentType).Build()
	return f.ToBuilder().SetHeader(h).Build()
}
