// Package langdetect decides whether an utterance is Hindi or English using
// the script and a small list of romanized Hindi words.
package langdetect

import (
	"strings"
	"unicode"

	"neelakshi-ai/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Devanagari block.
var devanagari = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097F, Stride: 1}},
}

// hinglishWords are common romanized Hindi function words. Matching is on
// whole tokens so English words that merely contain them do not count.
var hinglishWords = map[string]struct{}{
	"hai": {}, "hain": {}, "kya": {}, "kaise": {}, "kaisa": {}, "kaun": {},
	"kab": {}, "kahan": {}, "kyun": {}, "mein": {}, "nahi": {}, "nahin": {},
	"aaj": {}, "kal": {}, "batao": {}, "bataiye": {}, "mausam": {},
	"khabar": {}, "samachar": {}, "ka": {}, "ki": {}, "ke": {}, "ko": {},
	"aur": {}, "bhi": {}, "kripya": {}, "namaste": {}, "haan": {},
	"mujhe": {}, "aap": {}, "tum": {}, "hum": {}, "abhi": {},
}

// Detect classifies text as hi, en or unknown.
func Detect(text string) models.Language {
	hasLatin := false
	for _, r := range text {
		if unicode.Is(devanagari, r) {
			return models.LanguageHindi
		}
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			hasLatin = true
		}
	}

	if !hasLatin {
		return models.LanguageUnknown
	}

	for _, tok := range tokens(strings.ToLower(text)) {
		if _, ok := hinglishWords[tok]; ok {
			return models.LanguageHindi
		}
	}
	return models.LanguageEnglish
}

// Normalize returns the NFC, lower-cased, whitespace-collapsed form used for
// rule matching. A Caser is stateful, so one is built per call.
func Normalize(text string) string {
	return strings.Join(strings.Fields(cases.Lower(language.Und).String(norm.NFC.String(text))), " ")
}

// NewUtterance builds the request-scoped Utterance for raw.
func NewUtterance(raw string) models.Utterance {
	return models.Utterance{
		Raw:        raw,
		Language:   Detect(raw),
		Normalized: Normalize(raw),
	}
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
