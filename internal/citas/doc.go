// Package citas polls the citaconsular.es booking widget for open
// appointment slots and aggregates the JSONP-wrapped feed into a per-day
// availability summary.
//
// A malformed feed is reported as a ParseError and never as an empty
// summary, so callers can distinguish "availability unknown" from "no
// appointments open".
package citas
