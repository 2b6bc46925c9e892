package generation

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	// languageTag matches what may follow an opening fence on its own line, e.g. "mermaid".
	languageTag = regexp.MustCompile(`^[A-Za-z0-9_+.-]*$`)
	// inlineTag is a diagram language tag sharing the fence line with the markup.
	inlineTag = regexp.MustCompile(`(?i)^(mermaid|mmd)([ \t]+|$)`)
)

// Sanitize strips a surrounding fenced block from generated text and trims whitespace.
// Text without fences comes back trimmed and otherwise unchanged.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, fence) {
		rest := s[len(fence):]
		i := strings.IndexByte(rest, '\n')
		if i >= 0 && languageTag.MatchString(strings.TrimSpace(rest[:i])) {
			rest = rest[i+1:]
		} else {
			if i < 0 {
				// single line: ```graph TD; A-->B```
				rest = strings.TrimSuffix(rest, fence)
			}
			rest = inlineTag.ReplaceAllString(rest, "")
		}
		s = rest
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}
