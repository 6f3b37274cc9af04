package browse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snippet reduces a description (often HTML straight from the posting form)
// to a plain-text excerpt of at most max runes for the listing cards.
func Snippet(description string, max int) string {
	text := description
	if strings.ContainsAny(description, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
		if err == nil {
			text = doc.Text()
		}
	}
	text = cleanText(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
