package intent

import "neelakshi-ai/internal/models"

// Rule maps a set of trigger phrases to a category. Phrases are matched as
// substrings of the normalized utterance, so they are stored lower-cased.
type Rule struct {
	Category models.IntentCategory
	Triggers []string
}

// DefaultRules is ordered from highest to lowest priority. Earlier rules win
// when an utterance matches several.
var DefaultRules = []Rule{
	{
		Category: models.IntentNews,
		Triggers: []string{
			"news", "headline", "breaking", "khabar", "khabre", "samachar",
			"खबर", "ख़बर", "समाचार", "न्यूज़", "न्यूज", "सुर्खियां", "सुर्ख़ियाँ",
		},
	},
	{
		Category: models.IntentWeather,
		Triggers: []string{
			"weather", "forecast", "temperature", "humidity", "rainfall", "raining", "will it rain",
			"mausam", "barish", "baarish", "tapmaan",
			"मौसम", "तापमान", "बारिश", "वर्षा",
		},
	},
	{
		Category: models.IntentLiveSports,
		Triggers: []string{
			"live score", "score", "cricket", "match", "wicket", "t20", "odi match", "test match",
			"ipl match", "ipl score",
			"स्कोर", "क्रिकेट", "मैच", "विकेट",
		},
	},
	{
		Category: models.IntentAuthorityLookup,
		Triggers: []string{
			"collector", "district magistrate", "superintendent of police", "commissioner",
			"chief minister", "minister", "governor", "mayor", "tehsildar", "sarpanch",
			"government office", "sarkari",
			"कलेक्टर", "जिलाधिकारी", "ज़िलाधिकारी", "पुलिस अधीक्षक", "मुख्यमंत्री", "मंत्री",
			"राज्यपाल", "विधायक", "सांसद", "तहसीलदार", "सरपंच", "सरकारी",
		},
	},
	{
		Category: models.IntentGeneralSearch,
		Triggers: []string{
			"who is", "what is", "where is", "when is", "when was", "search", "find", "latest", "price of",
			"kaun hai", "kya hai", "kahan hai", "kab hai",
			"कौन है", "क्या है", "कहाँ है", "कहां है", "कब है", "खोजो", "ढूंढो",
		},
	},
}
