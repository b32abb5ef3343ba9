package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

type token struct {
	Text string
	At   Pos
}

func (t token) String() string {
	return fmt.Sprintf("%q at %v", t.Text, t.At)
}

var punctuation = []string{"(", ")", ".", ":", "->", "=", ";", "λ", `\`, "*"}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

func validateToken(t token) error {
	if lo.Contains(punctuation, t.Text) {
		return nil
	}
	if strings.IndexFunc(t.Text, func(r rune) bool { return !isIdentRune(r) }) >= 0 {
		return fmt.Errorf("%v: unexpected token %q", t.At, t.Text)
	}
	return nil
}

// fields splits a line on white space, remembering where every field starts.
func fields(line string, lineNo int) (res []token) {
	col, start := 1, -1
	var startCol int
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				res = append(res, token{line[start:i], Pos{lineNo, startCol}})
				start = -1
			}
		} else if start < 0 {
			start, startCol = i, col
		}
		col++
	}
	if start >= 0 {
		res = append(res, token{line[start:], Pos{lineNo, startCol}})
	}
	return res
}

func stripComment(line string) string {
	before, _, _ := strings.Cut(line, "#")
	return before
}

func scan(s string) ([]token, error) {
	s = strings.ReplaceAll(s, "\r", "")
	var res []token
	for i, line := range strings.Split(s, "\n") {
		res = append(res, fields(stripComment(line), i+1)...)
	}
	sep := func(c string) []token {
		return lo.FlatMap(res, func(t token, _ int) (ret []token) {
			s, at := t.Text, t.At
			for {
				before, after, found := strings.Cut(s, c)
				if before != "" {
					ret = append(ret, token{before, at})
				}
				at.Col += utf8.RuneCountInString(before)
				s = after
				if !found {
					break
				}
				ret = append(ret, token{c, at})
				at.Col += utf8.RuneCountInString(c)
			}
			return ret
		})
	}
	for _, c := range punctuation {
		res = sep(c)
	}
	for _, t := range res {
		if err := validateToken(t); err != nil {
			return nil, err
		}
	}
	return res, nil
}
