package render

import "strings"

// WrapText wraps text to fit within width columns. Words longer than a line
// are broken with a trailing hyphen.
func WrapText(text string, width int) string {
	if width <= 1 {
		return text
	}

	var result strings.Builder
	lineLength := 0

	for _, field := range strings.Fields(text) {
		word := []rune(field)

		// Break words that cannot fit on a line of their own.
		for len(word) > width {
			if lineLength > 0 {
				result.WriteString("\n")
				lineLength = 0
			}
			result.WriteString(string(word[:width-1]) + "-\n")
			word = word[width-1:]
		}

		if lineLength > 0 && lineLength+1+len(word) > width {
			result.WriteString("\n")
			lineLength = 0
		} else if lineLength > 0 {
			result.WriteString(" ")
			lineLength++
		}

		result.WriteString(string(word))
		lineLength += len(word)
	}

	return result.String()
}
