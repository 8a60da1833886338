// Package headings extracts heading-like text from a parsed consulate page.
//
// A heading-like element is one of the six heading tags or any element whose
// class contains a title token (English "title" or Spanish "titulo").
// Elements that are a span, or that sit inside one, are excluded because the
// site uses spans for decorative fragments inside real headings.
package headings
