package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DetectSkills returns the vocabulary entries that occur in text as whole
// words, ignoring case. Results keep vocabulary order and are lower case.
func DetectSkills(text string, vocabulary []string) []string {
	haystack := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	found := []string{}
	seen := make(map[string]struct{}, len(vocabulary))
	for _, term := range vocabulary {
		needle := strings.Join(strings.Fields(strings.ToLower(term)), " ")
		if needle == "" {
			continue
		}
		if _, ok := seen[needle]; ok {
			continue
		}
		if containsWord(haystack, needle) {
			seen[needle] = struct{}{}
			found = append(found, needle)
		}
	}
	return found
}

func containsWord(haystack, needle string) bool {
	from := 0
	for from <= len(haystack)-len(needle) {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack[:start]) && boundaryAfter(haystack[end:]) {
			return true
		}
		from = start + 1
	}
	return false
}

// boundaryBefore reports whether the text ending at a match does not run
// into it. A dot only separates when it is not itself part of a word, as in
// "asp.net".
func boundaryBefore(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return true
	}
	if r == '.' {
		prev, n := utf8.DecodeLastRuneInString(s[:len(s)-size])
		return n == 0 || !wordRune(prev)
	}
	return !wordRune(r)
}

// boundaryAfter is boundaryBefore for the text following a match, so "node"
// is not found in "node.js" but is at the end of a sentence.
func boundaryAfter(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return true
	}
	if r == '.' {
		next, n := utf8.DecodeRuneInString(s[size:])
		return n == 0 || !wordRune(next)
	}
	return !wordRune(r)
}

func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}
