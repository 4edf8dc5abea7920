package llm

import "strings"

// ExtractFencedBlock recognizes a response that is a single code block
// delimited by triple backticks, optionally tagged with a language name. It
// returns the inner text, the language tag, and whether a block was found.
func ExtractFencedBlock(text string) (body, lang string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return "", "", false
	}
	rest := strings.TrimPrefix(trimmed, "```")
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return "", "", false
	}
	lang = strings.TrimSpace(rest[:newline])
	rest = rest[newline+1:]
	closing := strings.LastIndex(rest, "```")
	if closing < 0 {
		return "", "", false
	}
	return strings.TrimSpace(rest[:closing]), lang, true
}

// StripFences removes a surrounding code fence when present, returning the
// text unchanged otherwise. Used before structured parsing, since models
// routinely wrap JSON in markdown fences.
func StripFences(text string) string {
	if body, _, ok := ExtractFencedBlock(text); ok {
		return body
	}
	return strings.TrimSpace(text)
}
