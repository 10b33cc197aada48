package utils

import "unicode/utf8"

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// CharCount returns the number of characters in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
