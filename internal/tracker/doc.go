// Package tracker holds the interactive session: the saved list, the search
// and selection pipeline, the single active edit and the delete prompt.
//
// A Session is driven from one goroutine. Lookups run elsewhere and report
// back with the sequence number they were issued under; a response whose
// sequence is no longer the latest is dropped, so a slow search can never
// overwrite the results of a newer one or reopen a cleared dropdown.
package tracker
