package messenger

import "strings"

// SplitMessage breaks a long document into parts no longer than maxLen,
// splitting only on line boundaries so the rendered layout survives.
// A single line longer than maxLen is shipped alone as its own oversized
// part; the caller logs that instead of cutting the line mid-way.
func SplitMessage(message string, maxLen int) []string {
	if maxLen <= 0 || len(message) <= maxLen {
		return []string{message}
	}

	var parts []string
	var current strings.Builder

	for _, line := range strings.Split(message, "\n") {
		if current.Len() > 0 && current.Len()+len(line)+1 > maxLen {
			parts = append(parts, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")

		// oversized single line: flush it as its own part
		if current.Len() > maxLen {
			parts = append(parts, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
	}

	if current.Len() > 0 {
		parts = append(parts, strings.TrimRight(current.String(), "\n"))
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}
