package count

import "strings"

// CountMatches returns the number of start offsets in line at which pattern
// occurs. Matching is exact and case-sensitive, and overlapping occurrences
// are all counted, so "AA" occurs twice in "AAA".
// An empty pattern, or one longer than line, never matches.
func CountMatches(line, pattern string) int64 {
	m := len(pattern)
	if m == 0 || len(line) < m {
		return 0
	}

	var count int64
	for i := 0; i <= len(line)-m; {
		j := strings.Index(line[i:], pattern)
		if j < 0 {
			break
		}
		count++
		// step one byte past the match start so overlaps are found
		i += j + 1
	}
	return count
}
