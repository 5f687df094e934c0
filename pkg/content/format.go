package content

import (
	"fmt"
	"strings"
)

// FormatSlides renders slides as a prompt-friendly block. Slides without text are skipped.
func FormatSlides(slides []SlideText) string {
	var b strings.Builder
	b.WriteString("Slide Deck Content:\n\n")
	n := 0
	for _, s := range slides {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "Slide %d:\n%s\n\n", s.Number, text)
		n++
	}
	if n == 0 {
		return ""
	}
	return strings.TrimSpace(b.String())
}
