// Package util provides catalog I/O and reporting helpers for po-codec commands.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/git-l10n/po-codec/po"
	log "github.com/sirupsen/logrus"
)

// StdioName selects stdin or stdout in place of a file name.
const StdioName = "-"

// Exist check if path is exist.
func Exist(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	return false
}

// IsFile returns true if path is exist and is a file.
func IsFile(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return false
	}
	return true
}

// CatalogOptions controls how ReadCatalog decodes its input.
type CatalogOptions struct {
	Parser po.ParserOptions
	// InputCharset overrides the charset declared in the header.
	InputCharset string
}

// ReadCatalog reads a PO file or a gettext JSON file and returns the parsed
// catalog. Non-UTF-8 PO input is converted to UTF-8 first, and the
// Content-Type header of the result is updated to match.
func ReadCatalog(name string, opts CatalogOptions) (*po.File, error) {
	data, err := readInput(name)
	if err != nil {
		return nil, err
	}
	return DecodeCatalogData(name, data, opts)
}

// DecodeCatalogData parses data read from name, which is only used to
// detect the format and in error messages.
func DecodeCatalogData(name string, data []byte, opts CatalogOptions) (*po.File, error) {
	if IsGettextJSON(name, data) {
		log.Debugf("reading %s as gettext JSON", name)
		j, err := ParseGettextJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		f, err := j.ToFile()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		if !opts.Parser.PreserveObsolete {
			f = f.ToBuilder().ClearObsolete().Build()
		}
		return f, nil
	}

	data, charset, err := DecodeCatalog(data, opts.InputCharset)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	f, err := po.ParseBytes(data, opts.Parser)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if charset != "" {
		log.Debugf("converted %s from %s to UTF-8", name, charset)
		f = SetCharset(f, "UTF-8")
	}
	return f, nil
}

// WriteCatalog writes f to name in PO format. When charset is not empty the
// Content-Type header is updated and the output is converted from UTF-8.
func WriteCatalog(name string, f *po.File, opts po.WriterOptions, charset string) error {
	if charset != "" {
		f = SetCharset(f, charset)
	}
	s, err := po.WriteString(f, opts)
	if err != nil {
		return err
	}
	data := []byte(s)
	if charset != "" && !IsUTF8Charset(charset) {
		if data, err = FromUTF8(data, charset); err != nil {
			return fmt.Errorf("failed to encode output as %s: %w", charset, err)
		}
	}
	return writeOutput(name, data)
}

// WriteCatalogJSON writes f to name in gettext JSON format.
func WriteCatalogJSON(name string, f *po.File) error {
	var buf bytes.Buffer
	if err := WriteGettextJSON(&buf, NewGettextJSON(f)); err != nil {
		return err
	}
	return writeOutput(name, buf.Bytes())
}

func readInput(name string) ([]byte, error) {
	if name == StdioName {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func writeOutput(name string, data []byte) error {
	if name == "" || name == StdioName {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
