package questions

import (
	"regexp"
	"strings"
)

var listMarker = regexp.MustCompile(`^\s*(?:\d+\s*[.)]?|[-*•])\s*`)

// ParseLines splits raw model output into question lines, removing list
// numbering, bullets and blank lines.
func ParseLines(raw string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}
	return lines
}
