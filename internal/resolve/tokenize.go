package resolve

import (
	"math"
	"strings"
	"unicode"
)

type charClass int

const (
	classDigit charClass = iota
	classLetter
	classSeparator
	classSpace
	classOther
)

const separators = ":-./+'_"

func classify(c rune) charClass {
	switch {
	case unicode.IsDigit(c):
		return classDigit
	case unicode.IsLetter(c):
		return classLetter
	case strings.ContainsRune(separators, c):
		return classSeparator
	case unicode.IsSpace(c):
		return classSpace
	}
	return classOther
}

func isBoundary(c charClass) bool {
	return c == classSpace || c == classOther
}

// joins reports whether x continues the token whose last two characters had
// classes a and b. Separators stick to runs of the same class, so "05/19/2002"
// and "america/new_york" stay whole while "19may" splits in two.
func joins(a, b, x charClass) bool {
	if isBoundary(x) || b == classSpace {
		return false
	}
	switch x {
	case classLetter:
		return b == classLetter || (b == classSeparator && (a == classLetter || isBoundary(a)))
	case classDigit:
		return b == classDigit || (b == classSeparator && (a == classDigit || isBoundary(a)))
	case classSeparator:
		return true
	}
	return false
}

// tokenize splits s into date/time tokens, preserving case.
func tokenize(s string) []string {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		defer buf.Reset()
		tok := buf.String()
		if trimmed := strings.TrimRight(tok, separators); trimmed != "" {
			tok = trimmed
		}
		if tok == "" {
			return
		}
		if date, clock, ok := splitDateTime(tok); ok {
			tokens = append(tokens, date, clock)
			return
		}
		tokens = append(tokens, tok)
	}

	a, b := classSpace, classSpace
	for _, c := range s {
		x := classify(c)
		if !joins(a, b, x) {
			flush()
		}
		if !isBoundary(x) {
			buf.WriteRune(c)
		}
		a, b = b, x
	}
	flush()
	return tokens
}

// splitDateTime separates run-together date and time in numeric tokens such
// as "2002/05/19-15:21:36". It looks for a separator that appears exactly
// once before the first ':' and picks the one nearest the middle.
func splitDateTime(s string) (string, string, bool) {
	if len(s) <= 2 || s[0] < '0' || s[0] > '9' {
		return "", "", false
	}
	counts := make(map[byte]int)
	var idxs []int
	for i := 1; i < len(s)-1; i++ {
		c := s[i]
		if c == ':' {
			break
		}
		if strings.IndexByte(separators, c) >= 0 {
			counts[c]++
			idxs = append(idxs, i)
		}
	}
	if len(idxs) <= 2 {
		return "", "", false
	}
	best := -1
	bestErr := float64(len(s))
	for _, idx := range idxs {
		if counts[s[idx]] != 1 {
			continue
		}
		if e := math.Abs(float64(len(s))/2 - float64(idx)); e < bestErr {
			best, bestErr = idx, e
		}
	}
	if best < 0 {
		return "", "", false
	}
	return s[:best], s[best+1:], true
}
