package langdetect

import (
	"testing"

	"neelakshi-ai/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want models.Language
	}{
		{"आज की खबर", models.LanguageHindi},
		{"weather in जयपुर", models.LanguageHindi},
		{"aaj ka mausam kaisa hai", models.LanguageHindi},
		{"Kya haal hai?", models.LanguageHindi},
		{"weather in Jaipur", models.LanguageEnglish},
		{"who is the collector of Kota", models.LanguageEnglish},
		{"kaiser wilhelm", models.LanguageEnglish},
		{"12345 !!!", models.LanguageUnknown},
		{"", models.LanguageUnknown},
		{"😊", models.LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "weather in jaipur", Normalize("  Weather   IN\tJaipur \n"))
	assert.Equal(t, "caf\u00e9", Normalize("Cafe\u0301"))
}

func TestNewUtterance(t *testing.T) {
	u := NewUtterance("Aaj Ki KHABAR")
	assert.Equal(t, "Aaj Ki KHABAR", u.Raw)
	assert.Equal(t, "aaj ki khabar", u.Normalized)
	assert.Equal(t, models.LanguageHindi, u.Language)
}
