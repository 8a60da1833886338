package headings

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelector matches heading tags plus elements carrying a title-like
// class, in English or Spanish variants.
const titleSelector = `h1, h2, h3, h4, h5, h6, .title, .titulo, [class*="title"], [class*="titulo"]`

// Collect returns the trimmed, non-empty rendered text of every heading-like
// element in document order. The traversal is read-only.
func Collect(doc *goquery.Document) []string {
	texts := make([]string, 0)
	doc.Find(titleSelector).Not("span").Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered("span").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// Meta holds page-level metadata reported alongside a check result.
type Meta struct {
	Title string
	H1    string
}

// PageMeta extracts the document title and first H1 text, falling back to
// the placeholder strings the check result exposes when either is missing.
func PageMeta(doc *goquery.Document) Meta {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No title found"
	}
	h1 := strings.TrimSpace(doc.Find("h1").First().Text())
	if h1 == "" {
		h1 = "No H1 found"
	}
	return Meta{Title: title, H1: h1}
}
