// Package storage persists the set of findings that have already been
// alerted on, so a poller running every few minutes does not re-send the
// same email while the condition keeps holding.
package storage
