// Package omdb queries the Open Movie Database by search term or exact title.
//
// Both modes hit the same endpoint; the decoded response shape decides the
// result. A "Search" list is a candidate set, a singular "Title" is a detail
// record, and Response "False" is an application error carrying the service's
// message. Notice turns any error from this package into the text shown to the
// user.
package omdb
