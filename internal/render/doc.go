// Package render projects the saved list into a view description and draws
// it, either for the terminal with lipgloss or as an HTML document for export.
//
// Rendering is total: every call rebuilds the whole list from the entries and
// the active edit. Nothing is patched in place.
package render
