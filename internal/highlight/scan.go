package highlight

import "strings"

type syntax struct {
	keywords     map[string]bool
	caseFold     bool
	lineComment  string
	blockComment [2]string
	quotes       string
	operators    string
	numberSign   bool
}

var sqlSyntax = syntax{
	keywords: words("select from where and or not is null order by asc desc limit " +
		"true false as on join left right inner outer group having distinct in like between"),
	caseFold:    true,
	lineComment: "--",
	quotes:      "'\"`",
	operators:   "=<>!*,.()+-/;|",
}

var dreamqlSyntax = syntax{
	keywords:    words("where select sort limit and or asc desc true false null"),
	caseFold:    true,
	lineComment: "--",
	quotes:      "'",
	operators:   "|.,=<>!",
	numberSign:  true,
}

var ebnfSyntax = syntax{
	blockComment: [2]string{"(*", "*)"},
	quotes:       "\"'",
	operators:    "=|;{}[]()",
}

func words(s string) map[string]bool {
	m := map[string]bool{}
	for _, w := range strings.Fields(s) {
		m[w] = true
	}
	return m
}

func scan(text string, sx syntax) []Segment {
	var segs []Segment
	i := 0
	for i < len(text) {
		rest := text[i:]
		ch := text[i]

		switch {
		case sx.lineComment != "" && strings.HasPrefix(rest, sx.lineComment):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			segs = appendSegment(segs, Comment, rest[:end])
			i += end

		case sx.blockComment[0] != "" && strings.HasPrefix(rest, sx.blockComment[0]):
			end := strings.Index(rest[len(sx.blockComment[0]):], sx.blockComment[1])
			if end < 0 {
				end = len(rest)
			} else {
				end += len(sx.blockComment[0]) + len(sx.blockComment[1])
			}
			segs = appendSegment(segs, Comment, rest[:end])
			i += end

		case strings.IndexByte(sx.quotes, ch) >= 0:
			end := quotedEnd(rest, ch)
			segs = appendSegment(segs, String, rest[:end])
			i += end

		case isDigit(ch) || (sx.numberSign && ch == '-' && len(rest) > 1 && isDigit(rest[1])):
			end := 1
			for end < len(rest) && (isDigit(rest[end]) || rest[end] == '.') {
				end++
			}
			segs = appendSegment(segs, Number, rest[:end])
			i += end

		case isWordStart(ch):
			end := 1
			for end < len(rest) && isWordPart(rest[end]) {
				end++
			}
			word := rest[:end]
			key := word
			if sx.caseFold {
				key = strings.ToLower(word)
			}
			kind := Identifier
			if sx.keywords[key] {
				kind = Keyword
			}
			segs = appendSegment(segs, kind, word)
			i += end

		case strings.IndexByte(sx.operators, ch) >= 0:
			segs = appendSegment(segs, Operator, rest[:1])
			i++

		default:
			segs = appendSegment(segs, Plain, rest[:1])
			i++
		}
	}
	return segs
}

// quotedEnd returns the length of the quoted literal at the start of s.
// A doubled quote is an escape. An unterminated literal runs to the end.
func quotedEnd(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordPart(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}
