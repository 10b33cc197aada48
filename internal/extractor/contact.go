package extractor

import (
	"regexp"
	"strings"
)

const (
	maxEmails    = 5
	maxPhones    = 3
	maxLocations = 3
)

var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern   = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	addressPattern = regexp.MustCompile(`\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)[^,.]*,\s*[A-Za-z\s]+`)
)

// Emails returns distinct email addresses in order of first occurrence.
func Emails(text string) []string {
	return uniqueMatches(emailPattern, text, maxEmails)
}

// Phones returns distinct North American style phone numbers.
func Phones(text string) []string {
	return uniqueMatches(phonePattern, text, maxPhones)
}

// OfficeLocations returns street addresses such as "12 Main Street, Springfield".
func OfficeLocations(text string) []string {
	return uniqueMatches(addressPattern, text, maxLocations)
}

func uniqueMatches(re *regexp.Regexp, text string, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}
