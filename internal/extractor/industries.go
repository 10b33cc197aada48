package extractor

import "strings"

const maxIndustries = 5

var industryVocabulary = []string{
	"healthcare",
	"finance",
	"technology",
	"education",
	"manufacturing",
	"retail",
	"automotive",
	"aerospace",
	"energy",
	"telecommunications",
}

// Industries returns the vocabulary entries mentioned in text.
func Industries(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, industry := range industryVocabulary {
		if strings.Contains(lower, industry) {
			found = append(found, industry)
			if len(found) == maxIndustries {
				break
			}
		}
	}
	return found
}
