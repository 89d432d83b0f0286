package strutil

import "strings"

// IndentLines prefixes every non-empty line of content.
func IndentLines(content string, prefix string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
