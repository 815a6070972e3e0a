package util

import (
	"fmt"
	"strings"

	"github.com/git-l10n/po-codec/po"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// CheckOptions tunes CheckFile.
type CheckOptions struct {
	// RequireLanguage makes a missing Language field an error.
	RequireLanguage bool
	// RequirePluralForms makes a missing Plural-Forms field an error when
	// the catalog has plural entries.
	RequirePluralForms bool
}

// CheckLanguageTag validates a Language header value such as "zh_CN" or
// "sr@latin". The modifier and codeset are ignored.
func CheckLanguageTag(lang string) (language.Tag, error) {
	tag := lang
	if i := strings.IndexAny(tag, "@."); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.Replace(tag, "_", "-", -1)
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("bad language '%s': %w", lang, err)
	}
	return t, nil
}

// CheckFile validates the header of f and the plural entries against
// Plural-Forms. It returns errors that make the check fail and warnings that
// are only reported.
func CheckFile(f *po.File, opts CheckOptions) (errs, warns []string) {
	var plurals []*po.Entry
	for _, e := range f.Entries() {
		if e.IsPlural() {
			plurals = append(plurals, e)
		}
	}

	h := f.Header()
	if h == nil {
		if opts.RequireLanguage || (opts.RequirePluralForms && len(plurals) > 0) {
			errs = append(errs, "missing header entry")
		} else {
			warns = append(warns, "missing header entry")
		}
		return errs, warns
	}

	if h.IsFuzzy() {
		warns = append(warns, "header entry is marked fuzzy")
	}

	if lang := h.Language(); lang == "" {
		if opts.RequireLanguage {
			errs = append(errs, "missing Language in header")
		} else {
			warns = append(warns, "missing Language in header")
		}
	} else if t, err := CheckLanguageTag(lang); err != nil {
		errs = append(errs, err.Error())
	} else {
		log.Debugf("language of catalog: %s", t)
	}

	switch charset := h.Charset(); {
	case charset == "":
		warns = append(warns, "missing charset in Content-Type header")
	case strings.EqualFold(charset, "CHARSET"):
		warns = append(warns, "charset is not set (template file?)")
	}

	value, ok := h.Field(po.HeaderPluralForms)
	if !ok {
		if len(plurals) > 0 {
			msg := fmt.Sprintf("missing Plural-Forms in header, but %d plural entries found", len(plurals))
			if opts.RequirePluralForms {
				errs = append(errs, msg)
			} else {
				warns = append(warns, msg)
			}
		}
		return errs, warns
	}
	if strings.Contains(value, "INTEGER") || strings.Contains(value, "EXPRESSION") {
		warns = append(warns, "Plural-Forms is not set (template file?)")
		return errs, warns
	}
	pf, err := po.ParsePluralForms(value)
	if err != nil {
		errs = append(errs, fmt.Sprintf("bad Plural-Forms in header: %s", err))
		return errs, warns
	}
	for _, e := range plurals {
		n := len(e.PluralTranslations())
		if n != pf.NPlurals {
			errs = append(errs, fmt.Sprintf("msgid %q: %d plural forms, but nplurals=%d",
				e.ID(), n, pf.NPlurals))
		}
	}
	return errs, warns
}
