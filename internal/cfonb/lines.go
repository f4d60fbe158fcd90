package cfonb

import "strings"

// SplitLines cuts file content into physical lines.
//
// Line terminators are normalised to "\n" and leading or trailing newlines
// are dropped. Content longer than lineLength without any newline is read as
// one unbroken blob and cut every lineLength bytes. Blank lines in the middle
// of the content are kept.
func SplitLines(content string, lineLength int) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.Trim(content, "\n")
	if content == "" {
		return nil
	}

	if lineLength > 0 && len(content) > lineLength && !strings.Contains(content, "\n") {
		lines := make([]string, 0, (len(content)+lineLength-1)/lineLength)
		for start := 0; start < len(content); start += lineLength {
			end := min(start+lineLength, len(content))
			lines = append(lines, content[start:end])
		}
		return lines
	}

	return strings.Split(content, "\n")
}
