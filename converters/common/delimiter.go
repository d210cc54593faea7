package common

// candidateDelimiters are tried in order; the first one with the most fields wins.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// DetectDelimiter picks the delimiter of a header line: the candidate that
// splits it into the most fields. Delimiters inside double-quoted fields do
// not count. Lines without any candidate default to comma.
func DetectDelimiter(line string) rune {
	winner, best := ',', 1
	for _, delim := range candidateDelimiters {
		if n := ColumnCount(line, delim); n > best {
			winner, best = delim, n
		}
	}
	return winner
}

// ColumnCount returns the number of fields delimiter splits line into,
// skipping delimiters inside double-quoted fields. An empty line has no fields.
func ColumnCount(line string, delimiter rune) int {
	if line == "" {
		return 0
	}
	count, quoted := 1, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == delimiter && !quoted:
			count++
		}
	}
	return count
}
