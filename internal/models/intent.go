// internal/models/intent.go
package models

type IntentCategory string

const (
	IntentNews             IntentCategory = "News"
	IntentWeather          IntentCategory = "Weather"
	IntentLiveSports       IntentCategory = "LiveSports"
	IntentAuthorityLookup  IntentCategory = "AuthorityLookup"
	IntentGeneralSearch    IntentCategory = "GeneralSearch"
	IntentDirectCompletion IntentCategory = "DirectCompletion"
)

func (c IntentCategory) String() string {
	return string(c)
}
