package bcbp

import "strings"

// knownTitles is the single point of truth for honorifics recognized at the
// end of the given-name segment of an IATA name field.
var knownTitles = map[string]struct{}{
	"MR":   {},
	"MS":   {},
	"MRS":  {},
	"MISS": {},
	"DR":   {},
	"PROF": {},
}

// FormatPassengerName converts the IATA "LASTNAME/FIRSTNAME TITLE" encoding
// into a readable "Title Firstname Lastname". A name without a slash is
// returned title-cased with no reordering. Compound surnames and given names
// keep their word boundaries, each word independently cased.
func FormatPassengerName(raw string) string {
	if !strings.Contains(raw, "/") {
		return titleCase(raw)
	}

	parts := strings.SplitN(raw, "/", 2)
	lastName := strings.TrimSpace(parts[0])
	given := strings.TrimSpace(parts[1])

	firstName := given
	title := ""
	tokens := strings.Fields(given)
	if len(tokens) > 1 {
		candidate := strings.ToUpper(tokens[len(tokens)-1])
		if _, ok := knownTitles[candidate]; ok {
			title = candidate
			firstName = strings.Join(tokens[:len(tokens)-1], " ")
		}
	}

	if title != "" {
		return titleCase(title) + " " + titleCase(firstName) + " " + titleCase(lastName)
	}
	return titleCase(firstName) + " " + titleCase(lastName)
}

// titleCase uppercases the first letter of each whitespace-separated word and
// lowercases the remainder.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
