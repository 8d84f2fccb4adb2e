// Package store persists the saved-movie list in a single named slot.
//
// A Slot is a durable key/value cell holding the JSON-encoded list. FileSlot
// keeps it in a JSON file on an afero filesystem; SQLiteSlot keeps it in a
// row of a SQLite table. Store layers the list encoding on top and treats an
// absent or unreadable slot as an empty list. Lock guards an interactive
// session against a second concurrent writer.
package store
