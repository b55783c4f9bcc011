package modeldat

import (
	"errors"
	"strings"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quoted string")

// token is one whitespace-separated field. Quoted fields keep their inner
// spaces and lose the quotes.
type token struct {
	text   string
	quoted bool
}

// tokenize splits a line into fields, treating "..." as a single field.
func tokenize(line string) ([]token, error) {
	var toks []token
	rs := []rune(line)
	for i := 0; i < len(rs); {
		if unicode.IsSpace(rs[i]) {
			i++
			continue
		}
		if rs[i] == '"' {
			end := -1
			for j := i + 1; j < len(rs); j++ {
				if rs[j] == '"' {
					end = j
					break
				}
			}
			if end == -1 {
				return nil, errUnterminatedQuote
			}
			toks = append(toks, token{text: string(rs[i+1 : end]), quoted: true})
			i = end + 1
			continue
		}
		j := i
		for j < len(rs) && !unicode.IsSpace(rs[j]) {
			j++
		}
		toks = append(toks, token{text: string(rs[i:j])})
		i = j
	}
	return toks, nil
}

func texts(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}

// cleanUnits maps blank units to the empty string.
func cleanUnits(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
