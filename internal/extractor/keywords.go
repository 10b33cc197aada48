package extractor

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 10

var (
	wordPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)

	stopWords = map[string]struct{}{
		"this": {}, "that": {}, "with": {}, "from": {}, "they": {}, "have": {},
		"been": {}, "were": {}, "said": {}, "each": {}, "which": {}, "their": {},
		"will": {}, "would": {}, "there": {}, "could": {},
	}
)

// Keywords returns the ten most frequent words of four or more letters.
// Words with the same count keep the order in which they first appeared.
func Keywords(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
