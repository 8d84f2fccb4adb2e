package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviescores/internal/movies"
)

// TerminalOptions controls how the list is drawn in the terminal.
type TerminalOptions struct {
	Width int
	// Cursor is the index of the focused entry, or -1 for none.
	Cursor int
	// EditorView replaces the review and rating lines of the entry in edit
	// form, typically with live input widgets.
	EditorView string
	// Prompt is shown under the focused entry, e.g. a delete confirmation.
	Prompt string
}

// Terminal draws items as a vertical list of boxes.
func Terminal(items []Item, opts TerminalOptions) string {
	if len(items) == 0 {
		return MutedTextStyle.Render("No movies rated yet. Search for one above.")
	}

	width := opts.Width
	if width < 30 {
		width = 30
	}
	inner := width - 4

	blocks := make([]string, 0, len(items))
	for _, item := range items {
		var sb strings.Builder
		sb.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s)", item.Entry.Title, item.Entry.Year)))
		sb.WriteString("\n")
		sb.WriteString(SubtitleStyle.Render("Director: "))
		sb.WriteString(NormalTextStyle.Render(item.Entry.Director))
		sb.WriteString("\n")

		if item.Editing && opts.EditorView != "" {
			sb.WriteString(opts.EditorView)
		} else {
			review, rating := item.Entry.Review, item.Entry.Rating
			if item.Editing {
				review, rating = item.DraftReview, item.DraftRating
			}
			sb.WriteString(SubtitleStyle.Render("Review: "))
			sb.WriteString(NormalTextStyle.Render(WrapText(review, inner-len("Review: "))))
			sb.WriteString("\n")
			sb.WriteString(SubtitleStyle.Render("Rating: "))
			sb.WriteString(ScoreStyle.Render(rating))
			sb.WriteString(NormalTextStyle.Render("/10"))
		}

		if movies.HasPoster(item.Poster) {
			sb.WriteString("\n")
			sb.WriteString(MutedTextStyle.Render(item.Poster))
		}

		focused := item.Index == opts.Cursor
		if focused && opts.Prompt != "" {
			sb.WriteString("\n")
			sb.WriteString(ErrorStyle.Render(opts.Prompt))
		}
		if focused {
			sb.WriteString("\n")
			sb.WriteString(MutedTextStyle.Render(actionHint(item.Actions)))
		}

		style := ItemStyle
		if focused {
			style = SelectedItemStyle
		}
		blocks = append(blocks, style.Width(width-2).Render(sb.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func actionHint(actions []Action) string {
	hints := make([]string, 0, len(actions))
	for _, action := range actions {
		switch action {
		case ActionEdit:
			hints = append(hints, "e: edit")
		case ActionDelete:
			hints = append(hints, "d: delete")
		case ActionSave:
			hints = append(hints, "ctrl+s: save")
		case ActionCancel:
			hints = append(hints, "esc: cancel")
		}
	}
	return strings.Join(hints, " • ")
}

// Candidates draws the search dropdown with the highlighted row marked.
func Candidates(candidates []movies.Candidate, highlighted, width int) string {
	var list strings.Builder
	for i, c := range candidates {
		line := c.Title
		if c.Year != "" {
			line = fmt.Sprintf("%s (%s)", c.Title, c.Year)
		}
		if !movies.HasPoster(c.Poster) {
			line += MutedTextStyle.Render("  [no poster]")
		}
		if i == highlighted {
			list.WriteString(HighlightedTextStyle.Render("> " + line))
		} else {
			list.WriteString(NormalTextStyle.Render("  " + line))
		}
		if i < len(candidates)-1 {
			list.WriteString("\n")
		}
	}
	if width < 30 {
		width = 30
	}
	return DropdownStyle.Width(width - 2).Render(list.String())
}

// Selection draws the detail panel for a pending selection with the editor
// widgets below it.
func Selection(sel movies.Selection, editorView string, width int) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s)", sel.Title, sel.Year)))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render("Director: "))
	sb.WriteString(NormalTextStyle.Render(sel.Director))
	if movies.HasPoster(sel.Poster) {
		sb.WriteString("\n")
		sb.WriteString(MutedTextStyle.Render(sel.Poster))
	}
	if editorView != "" {
		sb.WriteString("\n\n")
		sb.WriteString(editorView)
	}
	if width < 30 {
		width = 30
	}
	return PanelStyle.Width(width - 2).Render(sb.String())
}
