// Package i18n provides the small translation tables used on invoices:
// month names for number templates, status labels and document captions.
package i18n

import (
	"time"

	"golang.org/x/text/language"
)

// Default is used when no supported language matches.
const Default = "en"

var supported = []language.Tag{
	language.English,
	language.French,
	language.German,
	language.Russian,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Supported lists the language codes with translations.
func Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = base(t)
	}
	return out
}

func base(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}

// DetectLanguage picks the best supported language from an Accept-Language
// header value.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return base(supported[idx])
}

// Normalize maps a language code such as "fr-CA" to a supported code.
func Normalize(lang string) string {
	if lang == "" {
		return Default
	}
	return DetectLanguage(lang)
}

// T translates key, falling back to English and then to the key itself.
func T(lang, key string) string {
	if tr, ok := translations[Normalize(lang)][key]; ok {
		return tr
	}
	if tr, ok := translations[Default][key]; ok {
		return tr
	}
	return key
}

// MonthName returns the full month name, e.g. "janvier".
func MonthName(lang string, m time.Month) string {
	return monthNames[Normalize(lang)][m-1]
}

// MonthShortName returns the abbreviated month name, e.g. "Jan".
func MonthShortName(lang string, m time.Month) string {
	return monthShortNames[Normalize(lang)][m-1]
}
