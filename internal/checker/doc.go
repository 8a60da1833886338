// Package checker orchestrates the consulate page check: fetch the page
// with a browser-like header set, collect heading-like text, extract dates,
// and report findings strictly after the cutoff date together with a
// confidence score.
//
// Every entry point converts failures into a structured result bundle; no
// error escapes to the caller and nothing is retried.
package checker
