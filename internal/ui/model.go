package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pagefind/internal/config"
	"pagefind/internal/document"
	"pagefind/internal/domain"
	"pagefind/internal/ui/views"
)

// Finder is the asynchronous find API the UI drives
type Finder interface {
	FindAllAsync(query string) error
	FindNextAsync(forward bool) error
	ClearMatchesAsync() error
	LoadDocumentAsync(doc *domain.Document) error
}

// Loader re-reads the document for a reload
type Loader func() (*domain.Document, error)

// Rows taken by the status line and the find bar / help line
const chromeHeight = 2

// Model represents the UI state
type Model struct {
	finder Finder
	config *config.Config
	loader Loader

	doc      *domain.Document
	docView  *views.DocumentView
	viewport viewport.Model
	input    textinput.Model
	styles   *views.Styles
	keys     keyMap

	width   int
	height  int
	finding bool // find bar open

	query     string
	result    domain.FindResult
	hasResult bool
	errText   string
}

// NewModel creates a new UI model showing doc. loader may be nil, which disables reload.
func NewModel(finder Finder, cfg *config.Config, doc *domain.Document, loader Loader) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "text to find"
	ti.CharLimit = 256

	m := &Model{
		finder:   finder,
		config:   cfg,
		loader:   loader,
		viewport: viewport.New(80, 20),
		input:    ti,
		styles:   views.NewStyles(),
		keys:     defaultKeyMap(),
	}
	m.setDocument(doc)
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(1, msg.Width-10)
		return m, nil

	case FindResultMsg:
		m.applyResult(msg.Result)
		return m, nil

	case documentReloadedMsg:
		if msg.err != nil {
			log.Printf("Reload failed: %v", msg.err)
			m.errText = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, nil
		}
		m.setDocument(msg.doc)
		m.query = ""
		m.hasResult = false
		m.async(m.finder.LoadDocumentAsync(msg.doc))
		return m, nil

	case EventMsg:
		log.Printf("UI: event %s", msg.Event.Type())
		return m, nil

	case tea.KeyMsg:
		if m.finding {
			return m.updateFindBar(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateFindBar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.submitFind(m.input.Value())
		m.closeFindBar()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.closeFindBar()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Find):
		return m, m.openFindBar()
	case key.Matches(msg, m.keys.Next):
		m.navigate(true)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.navigate(false)
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.query = ""
		m.hasResult = false
		m.async(m.finder.ClearMatchesAsync())
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) openFindBar() tea.Cmd {
	m.finding = true
	m.input.SetValue(m.query)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeFindBar() {
	m.finding = false
	m.input.Blur()
}

// submitFind searches and moves to the first match, like a browser find bar
func (m *Model) submitFind(query string) {
	m.query = query
	m.errText = ""
	if !m.async(m.finder.FindAllAsync(query)) {
		return
	}
	if query != "" {
		m.async(m.finder.FindNextAsync(true))
	}
}

func (m *Model) navigate(forward bool) {
	if m.query == "" {
		return
	}
	m.async(m.finder.FindNextAsync(forward))
}

func (m *Model) reload() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	load := m.loader
	return func() tea.Msg {
		doc, err := load()
		return documentReloadedMsg{doc: doc, err: err}
	}
}

// async records a failed submission; returns false on error
func (m *Model) async(err error) bool {
	if err != nil {
		log.Printf("Find request failed: %v", err)
		m.errText = err.Error()
		return false
	}
	return true
}

func (m *Model) applyResult(r domain.FindResult) {
	m.result = r
	m.hasResult = r.Query != "" || r.Count > 0
	if !r.HasActive() {
		return
	}

	line := m.docView.LineOf(r.Current.Start)
	top := m.viewport.YOffset
	if line < top || line >= top+m.viewport.Height {
		m.viewport.SetYOffset(max(0, line-m.viewport.Height/2))
	}
}

func (m *Model) setDocument(doc *domain.Document) {
	m.doc = doc
	m.docView = views.NewDocumentView(doc, m.config.UI.ShowLineNumbers, m.styles)
	m.viewport.SetContent(m.docView.Content())
	m.viewport.GotoTop()
}

// StatusText returns the plain status line
func (m *Model) StatusText() string {
	if m.errText != "" {
		return m.errText
	}
	if !m.hasResult || m.result.Query == "" {
		return ""
	}
	r := m.result
	switch {
	case r.Count == 0:
		return fmt.Sprintf("No matches for %q", r.Query)
	case !r.HasActive():
		return fmt.Sprintf("%d matches for %q", r.Count, r.Query)
	default:
		text := fmt.Sprintf("Match %d/%d for %q", r.Ordinal(), r.Count, r.Query)
		if r.Wrapped && m.config.UI.WrapStatus {
			text += " (wrapped)"
		}
		return text
	}
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.finding {
		b.WriteString(m.styles.Prompt.Render("Find: "))
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.renderHelp())
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	title := m.styles.Title.Render(document.Title(m.doc))
	text := m.StatusText()
	style := m.styles.Status
	switch {
	case m.errText != "":
		style = m.styles.StatusError
	case m.hasResult && m.result.Count == 0:
		style = m.styles.StatusEmpty
	case m.result.HasActive():
		style = m.styles.StatusMatch
	}
	if text == "" {
		return title
	}
	return title + "  " + style.Render(text)
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.Help.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
