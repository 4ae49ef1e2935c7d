package retrieval

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// hindiPlaceNames maps Devanagari spellings to the names the upstream
// geocoder and news search understand.
var hindiPlaceNames = map[string]string{
	"जयपुर":    "jaipur",
	"दिल्ली":   "delhi",
	"उदयपुर":   "udaipur",
	"कोटा":     "kota",
	"राजस्थान": "rajasthan",
	"मुंबई":    "mumbai",
	"जोधपुर":   "jodhpur",
	"अजमेर":    "ajmer",
	"बीकानेर":  "bikaner",
	"लखनऊ":     "lucknow",
}

var (
	// one filler word may sit between the trigger and the preposition:
	// "weather like in pune", "rain today in kota"
	placeAfterKeyword = regexp.MustCompile(`\b(?:weather|temperature|forecast|raining|rain|mausam|news)(?:\s+\p{L}+)?\s+(?:in|at|of|for)\s+([\p{L}\p{M} ]+)`)
	placeBeforeKa     = regexp.MustCompile(`([\p{L}\p{M}]+)\s+(?:ka|ki|ke|mein|me)\s+(?:mausam|tapmaan|weather)`)
	placeBeforeMein   = regexp.MustCompile(`([\p{L}\p{M}]+)\s+(?:में|का|की|के)\s+(?:मौसम|तापमान)`)
)

// stopWords are time and filler words that never name a place.
var stopWords = map[string]struct{}{
	"today": {}, "now": {}, "tomorrow": {}, "right": {}, "currently": {},
	"aaj": {}, "abhi": {}, "kal": {}, "kya": {}, "hai": {}, "kaisa": {},
	"please": {}, "like": {},
	"आज": {}, "कल": {}, "अभी": {}, "अब": {}, "परसों": {},
}

// placeBreaks split a captured phrase: "tomorrow in pune", "pune for tomorrow".
var placeBreaks = map[string]struct{}{
	"in": {}, "at": {}, "of": {}, "for": {}, "on": {},
}

// canonicalPlace maps Hindi spellings to their English names and title-cases
// the result.
func canonicalPlace(p string) string {
	p = strings.TrimSpace(p)
	if en, ok := hindiPlaceNames[p]; ok {
		p = en
	}
	return cases.Title(language.Und).String(p)
}

// wordText reduces s to single-space separated letter runs with a space on
// each side, so "jaipur's," reads as " jaipur s ".
func wordText(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(words, " ") + " "
}

// Locality returns the earliest known place named in normalized, in either
// script, or "" when there is none. Places match on word boundaries, so
// multi-word names and possessives are found.
func (c *Config) Locality(normalized string) string {
	text := wordText(normalized)

	best, bestAt, bestLen := "", -1, 0
	consider := func(name, canonical string) {
		name = strings.TrimSpace(wordText(name))
		if name == "" {
			return
		}
		i := strings.Index(text, " "+name+" ")
		if i < 0 {
			return
		}
		if bestAt < 0 || i < bestAt || (i == bestAt && len(name) > bestLen) {
			best, bestAt, bestLen = canonical, i, len(name)
		}
	}

	for _, p := range c.KnownPlaces {
		consider(p, p)
	}
	for hi, en := range hindiPlaceNames {
		consider(hi, en)
	}

	if best == "" {
		return ""
	}
	return canonicalPlace(best)
}

// WeatherPlace extracts the place a weather question is about. Explicit
// patterns win over the known place list so an unknown name is still passed
// to the geocoder. Falls back to the configured default.
func (c *Config) WeatherPlace(normalized string) string {
	if m := placeAfterKeyword.FindStringSubmatch(normalized); m != nil {
		if p := trimPlace(m[1]); p != "" {
			return canonicalPlace(p)
		}
	}
	if p := firstPlaceWord(placeBeforeMein, normalized); p != "" {
		return canonicalPlace(p)
	}
	if p := firstPlaceWord(placeBeforeKa, normalized); p != "" {
		return canonicalPlace(p)
	}
	if p := c.Locality(normalized); p != "" {
		return p
	}
	return c.DefaultWeatherPlace
}

// firstPlaceWord returns the first capture of re that is not a stop word.
func firstPlaceWord(re *regexp.Regexp, normalized string) string {
	for _, m := range re.FindAllStringSubmatch(normalized, -1) {
		if _, stop := stopWords[m[1]]; !stop {
			return m[1]
		}
	}
	return ""
}

// trimPlace picks the first segment of s, split at prepositions, that still
// has words once stop words are dropped from both ends, and keeps at most
// three words of it.
func trimPlace(s string) string {
	var segment []string
	flush := func() string {
		for len(segment) > 0 && isStopWord(segment[0]) {
			segment = segment[1:]
		}
		if len(segment) > 3 {
			segment = segment[:3]
		}
		for len(segment) > 0 && isStopWord(segment[len(segment)-1]) {
			segment = segment[:len(segment)-1]
		}
		out := strings.Join(segment, " ")
		segment = segment[:0]
		return out
	}

	for _, w := range strings.Fields(s) {
		if _, ok := placeBreaks[w]; ok {
			if p := flush(); p != "" {
				return p
			}
			continue
		}
		segment = append(segment, w)
	}
	return flush()
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
