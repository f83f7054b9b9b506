package gemini

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON pulls a JSON object out of model output. It prefers a fenced
// ```json block; failing that it scans for the first balanced {...} span in
// the text. The second return value is false when neither is present, and
// callers must handle that branch — the model sometimes answers in prose.
func ExtractJSON(text string) (string, bool) {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		if obj, ok := firstBalancedObject(m[1]); ok {
			return obj, true
		}
	}
	return firstBalancedObject(text)
}

// firstBalancedObject returns the first {...} span whose braces balance,
// skipping braces inside JSON string literals.
func firstBalancedObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if obj, ok := scanObject(s[start:]); ok {
			return obj, true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

func scanObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
