package snippet

import "strings"

// Locate returns the indices of every line that contains needle as a
// case-sensitive substring, in order. A needle occurring more than once on
// the same line still counts that line once. No match returns an empty
// (nil) slice, not an error; absence and ambiguity are the caller's call.
func Locate(lines []string, needle string) []int {
	var matches []int
	for i, line := range lines {
		if strings.Contains(line, needle) {
			matches = append(matches, i)
		}
	}
	return matches
}
