// internal/models/language.go
package models

type Language string

const (
	LanguageHindi   Language = "hi"
	LanguageEnglish Language = "en"
	LanguageUnknown Language = "unknown"
)

// Utterance is one user message as seen by the pipeline. It is built once per
// request by langdetect.NewUtterance and never modified.
type Utterance struct {
	Raw        string   `json:"raw"`
	Language   Language `json:"language"`
	Normalized string   `json:"normalized"`
}
