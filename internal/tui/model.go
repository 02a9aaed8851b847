// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end: a query input, a
// filter input, and the card list, all driving one controller.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/figshare-search/internal/controller"
	"github.com/pdiddy/figshare-search/internal/render"
	"github.com/pdiddy/figshare-search/pkg/types"
)

type focus int

const (
	focusQuery focus = iota
	focusFilter
)

// searchDoneMsg reports that a search command finished.
type searchDoneMsg struct {
	err error
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	render types.RenderConfig
	styles render.Styles

	query  textinput.Model
	filter textinput.Model
	focus  focus

	status  string
	isError bool
	pending int

	width  int
	height int
	offset int
}

// New returns a model driving ctrl. Searches run under ctx.
func New(ctx context.Context, ctrl *controller.Controller, cfg types.RenderConfig) *Model {
	q := textinput.New()
	q.Placeholder = "Search datasets..."
	q.Prompt = "search> "
	q.Focus()

	f := textinput.New()
	f.Placeholder = "Filter results..."
	f.Prompt = "filter> "

	return &Model{
		ctx:    ctx,
		ctrl:   ctrl,
		render: cfg,
		styles: render.NewStyles(),
		query:  q,
		filter: f,
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// searchCmd runs one search off the update loop.
func (m *Model) searchCmd(query string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return searchDoneMsg{err: ctrl.Search(ctx, query)}
	}
}

func (m *Model) retryCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return searchDoneMsg{err: ctrl.Retry(ctx)}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchDoneMsg:
		return m, m.searchDone(msg.err)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			m.toggleFocus()
			return m, nil
		case tea.KeyPgDown:
			m.offset += m.pageSize()
			return m, nil
		case tea.KeyPgUp:
			m.offset = max(0, m.offset-m.pageSize())
			return m, nil
		case tea.KeyCtrlR:
			return m, m.startSearch(m.retryCmd())
		case tea.KeyEnter:
			if m.focus == focusQuery {
				return m, m.submitQuery()
			}
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusQuery {
		m.query, cmd = m.query.Update(msg)
	} else {
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusQuery {
		m.focus = focusFilter
		m.query.Blur()
		m.filter.Focus()
		return
	}
	m.focus = focusQuery
	m.filter.Blur()
	m.query.Focus()
}

func (m *Model) submitQuery() tea.Cmd {
	q := strings.TrimSpace(m.query.Value())
	if q == "" {
		// Blank input never reaches the network; the controller records
		// the notice.
		err := m.ctrl.Search(m.ctx, q)
		m.setStatus(err.Error(), false)
		return nil
	}
	return m.startSearch(m.searchCmd(q))
}

func (m *Model) startSearch(cmd tea.Cmd) tea.Cmd {
	m.pending++
	m.setStatus("Searching...", false)
	return cmd
}

func (m *Model) searchDone(err error) tea.Cmd {
	if m.pending > 0 {
		m.pending--
	}
	switch {
	case errors.Is(err, controller.ErrStaleResponse):
		// A newer search is in flight.
		return nil
	case errors.Is(err, controller.ErrNoPreviousQuery):
		m.setStatus("Nothing to retry yet.", false)
	case err != nil:
		m.setStatus("Search failed: "+err.Error()+" (ctrl+r to retry)", true)
	default:
		m.filter.SetValue("")
		m.offset = 0
		m.setStatus("", false)
	}
	return nil
}

func (m *Model) applyFilter() {
	m.ctrl.Filter(m.filter.Value())
	m.offset = 0
}

func (m *Model) setStatus(s string, isError bool) {
	m.status = s
	m.isError = isError
}

func (m *Model) pageSize() int {
	if m.height > 8 {
		return m.height - 8
	}
	return 10
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("figshare dataset search"))
	b.WriteString("\n")
	b.WriteString(m.query.View())
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	if m.status != "" {
		style := statusStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n\n")

	if m.ctrl.Snapshot().Phase == controller.Displaying {
		b.WriteString(m.visible(render.Terminal(m.ctrl.Displayed(), m.render, m.styles, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: search/filter • tab: switch input • pgup/pgdn: scroll • ctrl+r: retry • esc: quit"))
	return b.String()
}

// visible returns the window of body lines starting at the scroll offset.
func (m *Model) visible(body string) string {
	lines := strings.Split(body, "\n")
	if m.offset >= len(lines) {
		m.offset = max(0, len(lines)-1)
	}
	lines = lines[m.offset:]
	if m.height > 0 && len(lines) > m.pageSize() {
		lines = lines[:m.pageSize()]
	}
	return strings.Join(lines, "\n")
}
