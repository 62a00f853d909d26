package highlight

import "strings"

var yamlScalars = words("true false null ~")

var yamlFlowSyntax = syntax{
	keywords:  yamlScalars,
	quotes:    "'\"",
	operators: "[]{},:",
}

func highlightYAML(text string) []Segment {
	var segs []Segment
	for line := range strings.SplitAfterSeq(text, "\n") {
		segs = yamlLine(segs, line)
	}
	return segs
}

func yamlLine(segs []Segment, line string) []Segment {
	body := strings.TrimRight(line, "\n")
	nl := line[len(body):]

	trimmed := strings.TrimLeft(body, " ")
	segs = appendSegment(segs, Plain, body[:len(body)-len(trimmed)])
	rest := trimmed

	for strings.HasPrefix(rest, "- ") {
		segs = appendSegment(segs, Operator, "-")
		segs = appendSegment(segs, Plain, " ")
		rest = rest[2:]
	}

	if strings.HasPrefix(rest, "#") {
		segs = appendSegment(segs, Comment, rest)
		return appendSegment(segs, Plain, nl)
	}

	if key, value, ok := splitKey(rest); ok {
		segs = appendSegment(segs, Identifier, key)
		segs = appendSegment(segs, Operator, ":")
		rest = value
	}

	segs = yamlValue(segs, rest)
	return appendSegment(segs, Plain, nl)
}

// splitKey splits "key: value" or "key:" outside of quotes and flow
// collections.
func splitKey(s string) (key, value string, ok bool) {
	if s == "" || strings.ContainsRune("'\"[{", rune(s[0])) {
		return "", "", false
	}
	idx := strings.Index(s, ":")
	if idx <= 0 {
		return "", "", false
	}
	if idx+1 < len(s) && s[idx+1] != ' ' {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

func yamlValue(segs []Segment, s string) []Segment {
	trimmed := strings.TrimLeft(s, " ")
	segs = appendSegment(segs, Plain, s[:len(s)-len(trimmed)])
	if trimmed == "" {
		return segs
	}

	switch {
	case trimmed[0] == '[' || trimmed[0] == '{':
		for _, seg := range scan(trimmed, yamlFlowSyntax) {
			segs = appendSegment(segs, seg.Kind, seg.Text)
		}
		return segs
	case trimmed[0] == '\'' || trimmed[0] == '"':
		return appendSegment(segs, String, trimmed)
	case yamlScalars[trimmed]:
		return appendSegment(segs, Keyword, trimmed)
	case isNumeric(trimmed):
		return appendSegment(segs, Number, trimmed)
	default:
		return appendSegment(segs, Plain, trimmed)
	}
}

func isNumeric(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
