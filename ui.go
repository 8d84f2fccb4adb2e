package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
	"github.com/sebastiantruijens/moviescores/internal/omdb"
	"github.com/sebastiantruijens/moviescores/internal/render"
	"github.com/sebastiantruijens/moviescores/internal/tracker"
)

const noticeDuration = 3 * time.Second

// Focus areas
const (
	focusSearch = iota
	focusDropdown
	focusEditor
	focusList
)

// Editor fields
const (
	fieldReview = iota
	fieldRating
)

type keyMap struct {
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Next    key.Binding
	Back    key.Binding
	Submit  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Open    key.Binding
	Search  key.Binding
	Confirm key.Binding
	Decline key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Decline: key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

// ModelParams holds what the interactive model needs from the caller.
type ModelParams struct {
	Session  *tracker.Session
	Lookup   omdb.Lookup
	Logger   *slog.Logger
	Debounce time.Duration
	Timeout  time.Duration
}

// Model represents the application state
type Model struct {
	session  *tracker.Session
	lookup   omdb.Lookup
	logger   *slog.Logger
	debounce time.Duration
	timeout  time.Duration
	keys     keyMap

	focus       int
	editorField int
	editField   int
	cursor      int
	debounceTag int

	searchInput textinput.Model
	reviewInput textarea.Model
	ratingInput textinput.Model
	editReview  textarea.Model
	editRating  textinput.Model
	spinner     spinner.Model
	help        help.Model

	notice      string
	noticeIsErr bool
	noticeID    int

	width  int
	height int
}

// NewModel creates a new application model
func NewModel(params ModelParams) Model {
	// Set up text input for search
	ti := textinput.New()
	ti.Placeholder = "Search for a movie to rate..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	// Create explicit key mappings for Option+Backspace (Alt+Backspace)
	ti.KeyMap.DeleteWordBackward = key.NewBinding(
		key.WithKeys("alt+backspace", "ctrl+w"),
	)
	ti.KeyMap.DeleteWordBackward.SetEnabled(true)

	// Set up spinner for loading states
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(render.PrimaryColor)

	logger := params.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return Model{
		session:     params.Session,
		lookup:      params.Lookup,
		logger:      logging.NewComponentLogger(logger, "ui"),
		debounce:    params.Debounce,
		timeout:     params.Timeout,
		keys:        defaultKeyMap(),
		focus:       focusSearch,
		searchInput: ti,
		reviewInput: newReviewArea(),
		ratingInput: newRatingInput(),
		editReview:  newReviewArea(),
		editRating:  newRatingInput(),
		spinner:     sp,
		help:        help.New(),
		width:       80,
		height:      24,
	}
}

func newReviewArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write your review here"
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetWidth(50)
	ta.SetHeight(3)
	return ta
}

func newRatingInput() textinput.Model {
	ri := textinput.New()
	ri.Placeholder = "1-10"
	ri.CharLimit = 2
	ri.Width = 4
	ri.Prompt = "Rate 1 to 10: "
	ri.SetValue(movies.DefaultRating)
	return ri
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if _, pending := m.session.PendingDelete(); pending {
			return m.updateDeletePrompt(msg)
		}

		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusDropdown:
			return m.updateDropdown(msg)
		case focusEditor:
			return m.updateEditor(msg)
		case focusList:
			if _, editing := m.session.Editing(); editing {
				return m.updateEditForm(msg)
			}
			return m.updateList(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(20, msg.Width-8)
		m.reviewInput.SetWidth(max(20, msg.Width-8))
		m.editReview.SetWidth(max(20, msg.Width-8))
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		if msg.tag != m.debounceTag {
			return m, nil
		}
		return m, m.startSearch()

	case searchResultsMsg:
		notice, applied := m.session.ApplySearch(msg.seq, msg.results, msg.err)
		if !applied {
			return m, nil
		}
		if m.focus == focusDropdown && !m.session.DropdownOpen() {
			m.setFocus(focusSearch)
		}
		if notice != "" {
			return m, m.showError(notice)
		}

	case movieDetailsMsg:
		notice, applied := m.session.ApplyDetail(msg.seq, msg.selection, msg.err)
		if !applied {
			return m, nil
		}
		if notice != "" {
			return m, m.showError(notice)
		}
		m.searchInput.SetValue(m.session.Query())
		m.searchInput.CursorEnd()
		m.reviewInput.Reset()
		m.ratingInput.SetValue(m.session.Rating())
		m.editorField = fieldReview
		if m.busyInList() {
			// The editor panel is shown; tab reaches it once the user is done.
			return m, nil
		}
		return m, m.setFocus(focusEditor)

	case openBrowserMsg:
		if msg.err != nil {
			m.logger.Warn("open browser failed", logging.Error(msg.err))
			return m, m.showError(fmt.Sprintf("failed to open browser: %v", msg.err))
		}

	case resetMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.noticeIsErr = false
		}
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.session.DropdownOpen() {
			m.session.CloseDropdown()
		}
		return *m, nil
	case msg.Type == tea.KeyDown, key.Matches(msg, m.keys.Next):
		return *m, m.focusNext()
	case key.Matches(msg, m.keys.Select):
		if m.session.DropdownOpen() {
			return *m, m.setFocus(focusDropdown)
		}
		// Skip the quiet period.
		m.debounceTag++
		return *m, m.startSearch()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return *m, cmd
	}

	m.debounceTag++
	if !m.session.Type(m.searchInput.Value()) {
		// Cleared: the dropdown and the editor panel are already gone.
		m.reviewInput.Reset()
		m.ratingInput.SetValue(movies.DefaultRating)
		return *m, cmd
	}
	tag := m.debounceTag
	return *m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	}))
}

func (m *Model) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.session.Highlighted() == 0 {
			return *m, m.setFocus(focusSearch)
		}
		m.session.MoveHighlight(-1)
	case key.Matches(msg, m.keys.Down):
		m.session.MoveHighlight(1)
	case key.Matches(msg, m.keys.Select):
		seq, title, ok := m.session.BeginDetail()
		if !ok {
			return *m, nil
		}
		return *m, tea.Batch(m.spinner.Tick, detailCmd(m.lookup, m.timeout, seq, title))
	case key.Matches(msg, m.keys.Back):
		m.session.CloseDropdown()
		return *m, m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.Next):
		return *m, m.focusNext()
	}
	return *m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return *m, m.submit()
	case key.Matches(msg, m.keys.Back):
		return *m, m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.Next):
		if m.editorField == fieldReview {
			m.editorField = fieldRating
			return *m, m.setFocus(focusEditor)
		}
		return *m, m.focusNext()
	case msg.Type == tea.KeyEnter && m.editorField == fieldRating:
		return *m, m.submit()
	}

	var cmd tea.Cmd
	if m.editorField == fieldReview {
		m.reviewInput, cmd = m.reviewInput.Update(msg)
	} else {
		m.ratingInput, cmd = m.ratingInput.Update(msg)
	}
	m.session.SetReview(m.reviewInput.Value())
	m.session.SetRating(m.ratingInput.Value())
	return *m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.session.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Edit):
		entry, ok := m.session.EntryAt(m.cursor)
		if !ok {
			return *m, nil
		}
		if err := m.session.BeginEdit(entry.IMDbID); err != nil {
			return *m, m.showError(tracker.Notice(err))
		}
		m.editReview.SetValue(entry.Review)
		m.editRating.SetValue(entry.Rating)
		m.editField = fieldReview
		return *m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.Delete):
		entry, ok := m.session.EntryAt(m.cursor)
		if !ok {
			return *m, nil
		}
		if err := m.session.RequestDelete(entry.IMDbID); err != nil {
			return *m, m.showError(tracker.Notice(err))
		}
	case key.Matches(msg, m.keys.Open):
		if entry, ok := m.session.EntryAt(m.cursor); ok {
			return *m, openIMDbCmd(entry.IMDbID)
		}
	case key.Matches(msg, m.keys.Search), key.Matches(msg, m.keys.Back):
		return *m, m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.Next):
		return *m, m.focusNext()
	}
	return *m, nil
}

func (m *Model) updateEditForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		err := m.session.SaveEdit(context.Background(), m.editReview.Value(), m.editRating.Value())
		if err != nil {
			return *m, m.showError(tracker.Notice(err))
		}
		return *m, tea.Batch(m.setFocus(focusList), m.showInfo("Saved."))
	case key.Matches(msg, m.keys.Back):
		m.session.CancelEdit()
		return *m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.Next):
		m.editField = 1 - m.editField
		return *m, m.setFocus(focusList)
	}

	var cmd tea.Cmd
	if m.editField == fieldReview {
		m.editReview, cmd = m.editReview.Update(msg)
	} else {
		m.editRating, cmd = m.editRating.Update(msg)
	}
	m.session.UpdateDraft(m.editReview.Value(), m.editRating.Value())
	return *m, cmd
}

func (m *Model) updateDeletePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var yes bool
	switch {
	case key.Matches(msg, m.keys.Confirm):
		yes = true
	case key.Matches(msg, m.keys.Decline):
		yes = false
	default:
		return *m, nil
	}
	deleted, err := m.session.ConfirmDelete(context.Background(), yes)
	if m.cursor >= m.session.Len() && m.cursor > 0 {
		m.cursor = m.session.Len() - 1
	}
	var focusCmd tea.Cmd
	if m.session.Len() == 0 {
		m.cursor = 0
		focusCmd = m.setFocus(focusSearch)
	}
	if err != nil {
		return *m, tea.Batch(focusCmd, m.showError(tracker.Notice(err)))
	}
	if deleted {
		return *m, tea.Batch(focusCmd, m.showInfo("Deleted."))
	}
	return *m, focusCmd
}

// busyInList reports whether the user is working on a saved entry, either in
// its edit form or at its delete prompt.
func (m Model) busyInList() bool {
	if m.focus != focusList {
		return false
	}
	_, editing := m.session.Editing()
	_, deleting := m.session.PendingDelete()
	return editing || deleting
}

// startSearch issues the search for the current text, if any.
func (m *Model) startSearch() tea.Cmd {
	seq, term, ok := m.session.BeginSearch()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, searchCmd(m.lookup, m.timeout, seq, term))
}

func (m *Model) submit() tea.Cmd {
	title := ""
	if pending := m.session.Pending(); pending != nil {
		title = pending.Title
	}
	m.session.SetReview(m.reviewInput.Value())
	m.session.SetRating(m.ratingInput.Value())
	if err := m.session.Submit(context.Background()); err != nil {
		var persistErr *tracker.PersistError
		if !errors.As(err, &persistErr) {
			return m.showError(tracker.Notice(err))
		}
		m.resetEditor()
		return tea.Batch(m.setFocus(focusSearch), m.showError(tracker.Notice(err)))
	}
	m.resetEditor()
	m.cursor = m.session.Len() - 1
	return tea.Batch(m.setFocus(focusSearch), m.showInfo(fmt.Sprintf("Added %s to your list.", title)))
}

func (m *Model) resetEditor() {
	m.searchInput.SetValue("")
	m.reviewInput.Reset()
	m.ratingInput.SetValue(movies.DefaultRating)
	m.editorField = fieldReview
}

// focusNext cycles search → dropdown → editor → list, skipping empty areas.
func (m *Model) focusNext() tea.Cmd {
	order := []int{focusSearch, focusDropdown, focusEditor, focusList}
	start := 0
	for i, f := range order {
		if f == m.focus {
			start = i
		}
	}
	for step := 1; step <= len(order); step++ {
		next := order[(start+step)%len(order)]
		if m.focusable(next) {
			if next == focusEditor {
				m.editorField = fieldReview
			}
			return m.setFocus(next)
		}
	}
	return nil
}

func (m *Model) focusable(f int) bool {
	switch f {
	case focusDropdown:
		return m.session.DropdownOpen()
	case focusEditor:
		return m.session.Pending() != nil
	case focusList:
		return m.session.Len() > 0
	default:
		return true
	}
}

// setFocus moves keyboard focus and focuses the matching input widget.
func (m *Model) setFocus(f int) tea.Cmd {
	m.focus = f
	m.searchInput.Blur()
	m.reviewInput.Blur()
	m.ratingInput.Blur()
	m.editReview.Blur()
	m.editRating.Blur()

	switch f {
	case focusSearch:
		return m.searchInput.Focus()
	case focusEditor:
		if m.editorField == fieldRating {
			return m.ratingInput.Focus()
		}
		return m.reviewInput.Focus()
	case focusList:
		if _, editing := m.session.Editing(); editing {
			if m.editField == fieldRating {
				return m.editRating.Focus()
			}
			return m.editReview.Focus()
		}
	}
	return nil
}

func (m *Model) showError(text string) tea.Cmd {
	return m.showNotice(text, true)
}

func (m *Model) showInfo(text string) tea.Cmd {
	return m.showNotice(text, false)
}

// showNotice displays text until it is replaced or noticeDuration passes.
func (m *Model) showNotice(text string, isErr bool) tea.Cmd {
	m.noticeID++
	m.notice = text
	m.noticeIsErr = isErr
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return resetMsg{id: id}
	})
}

func (m Model) loading() bool {
	state := m.session.State()
	return state == tracker.StateSearching || state == tracker.StateDetailLoading
}

// View renders the current UI
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(render.TitleStyle.Render("🎬 My Movie Scores"))
	sb.WriteString("\n\n")

	sb.WriteString(render.InputStyle.Width(max(30, m.width-2)).Render(m.searchInput.View()))
	sb.WriteString("\n")

	switch m.session.State() {
	case tracker.StateSearching:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(render.NormalTextStyle.Render("Searching for \"" + strings.TrimSpace(m.session.Query()) + "\""))
		sb.WriteString("\n")
	case tracker.StateDetailLoading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(render.NormalTextStyle.Render("Loading movie details..."))
		sb.WriteString("\n")
	}

	if m.session.DropdownOpen() {
		highlighted := -1
		if m.focus == focusDropdown || m.session.State() == tracker.StateDetailLoading {
			highlighted = m.session.Highlighted()
		}
		sb.WriteString(render.Candidates(m.session.Candidates(), highlighted, m.width))
		sb.WriteString("\n")
	}

	if pending := m.session.Pending(); pending != nil {
		editor := m.reviewInput.View() + "\n" + m.ratingInput.View()
		sb.WriteString(render.Selection(*pending, editor, m.width))
		sb.WriteString("\n")
	}

	if m.notice != "" {
		style := render.NormalTextStyle
		if m.noticeIsErr {
			style = render.ErrorStyle
		}
		sb.WriteString(style.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(render.SubtitleStyle.Render(fmt.Sprintf("My list (%d)", m.session.Len())))
	sb.WriteString("\n")
	sb.WriteString(m.listView())
	sb.WriteString("\n\n")
	sb.WriteString(m.help.ShortHelpView(m.helpBindings()))

	return lipgloss.NewStyle().
		Width(m.width).
		MaxHeight(m.height).
		Render(sb.String())
}

func (m Model) listView() string {
	var edit *tracker.EditSession
	if e, ok := m.session.Editing(); ok {
		edit = &e
	}
	items := render.Project(m.session.Entries(), edit)

	opts := render.TerminalOptions{Width: m.width, Cursor: -1}
	if m.focus == focusList {
		opts.Cursor = m.cursor
	}
	if edit != nil {
		opts.EditorView = m.editReview.View() + "\n" + m.editRating.View()
	}
	if id, ok := m.session.PendingDelete(); ok {
		opts.Cursor = m.session.IndexOf(id)
		opts.Prompt = tracker.DeletePrompt + " (y/n)"
	}

	// Keep the focused entry on screen by starting just above it.
	start := 0
	if opts.Cursor > 1 {
		start = opts.Cursor - 1
	}
	if start > len(items) {
		start = len(items)
	}
	if len(items) > 0 && start == len(items) {
		start = len(items) - 1
	}
	return render.Terminal(items[start:], opts)
}

func (m Model) helpBindings() []key.Binding {
	if _, pending := m.session.PendingDelete(); pending {
		return []key.Binding{m.keys.Confirm, m.keys.Decline}
	}
	switch m.focus {
	case focusDropdown:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Back, m.keys.Quit}
	case focusEditor:
		return []key.Binding{m.keys.Next, m.keys.Submit, m.keys.Back, m.keys.Quit}
	case focusList:
		if _, editing := m.session.Editing(); editing {
			return []key.Binding{m.keys.Next, m.keys.Submit, m.keys.Back, m.keys.Quit}
		}
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Delete, m.keys.Open, m.keys.Search, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Select, m.keys.Next, m.keys.Quit}
	}
}

// Custom message types
type debounceMsg struct {
	tag int
}

type searchResultsMsg struct {
	seq     uint64
	results []movies.Candidate
	err     error
}

type movieDetailsMsg struct {
	seq       uint64
	selection *movies.Selection
	err       error
}

type resetMsg struct {
	id int
}

type openBrowserMsg struct {
	err error
}
