// Package dates provides best-effort calendar date extraction from Spanish
// prose scraped from the consulate site.
//
// The dates package runs a fixed, ordered list of matcher strategies over
// free text and returns every valid calendar date found. Matches that do not
// form a real Gregorian date are dropped silently so that a single malformed
// fragment never aborts extraction of the rest of the text.
package dates
