// Package notifier dispatches future-date alerts to a human.
//
// The notifier package defines the dispatch interface plus two
// implementations: a Web3Forms transactional-email relay and a dry-run
// printer for local testing. Dispatch failures are reported to the caller
// and never retried here.
package notifier
