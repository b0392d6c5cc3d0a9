// Package term provides a terminal deck hosting stopwatch keys with
// Bubble Tea. Keys are tapped; a tap may carry the hold flag.
package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deckwatch/internal/core/model"
	"deckwatch/internal/core/stopwatch"
	"deckwatch/internal/render"
)

const frameInterval = 100 * time.Millisecond

// FaceSize is the edge of the key images rendered for the terminal. The
// terminal only shows their text and palette.
const FaceSize = 32

// Handler receives the events produced by the terminal deck and reports
// how many visible keys are running.
type Handler interface {
	Handle(ctx context.Context, event stopwatch.Event)
	Running() int
}

type frameMsg struct{}

// Model implements the Bubble Tea deck.
type Model struct {
	handler Handler
	surface *Surface
	config  model.DeckConfig

	page    int
	cursor  int
	visible []string
}

var (
	enabledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#000000"))
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#333333"))
	blankStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")).Background(lipgloss.Color("#1C1C1E"))
	keyBorder      = lipgloss.RoundedBorder()
	borderColor    = lipgloss.Color("#3A3A3A")
	selectedColor  = lipgloss.Color("#C89A3A")
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pageLabelStyle = lipgloss.NewStyle().Bold(true)
)

const keyWidth = 11

// NewModel constructs the terminal deck.
func NewModel(handler Handler, surface *Surface, config model.DeckConfig) *Model {
	return &Model{
		handler: handler,
		surface: surface,
		config:  config,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.showPage(m.page)
	return frame()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, frame()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		m.hideAll()
		return tea.Quit
	case " ", "enter":
		m.tap(false)
	case "r", "backspace":
		m.tap(true)
	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		m.move(-m.config.Columns)
	case "down", "j":
		m.move(m.config.Columns)
	case "tab", "n":
		m.showPage(m.page + 1)
	case "shift+tab", "p":
		m.showPage(m.page - 1)
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	rows := make([]string, 0, m.config.Rows)
	for row := 0; row < m.config.Rows; row++ {
		cells := make([]string, 0, m.config.Columns)
		for col := 0; col < m.config.Columns; col++ {
			slot := row*m.config.Columns + col
			if slot >= len(m.visible) {
				break
			}
			cells = append(cells, m.renderKey(slot))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var builder strings.Builder
	builder.WriteString(pageLabelStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, m.config.Pages)))
	builder.WriteString(footerStyle.Render(fmt.Sprintf("  %d running", m.handler.Running())))
	builder.WriteString("\n")
	builder.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	builder.WriteString("\n")
	builder.WriteString(footerStyle.Render("space: start/stop  r: reset  arrows: select  tab: page  q: quit"))
	return builder.String()
}

func (m *Model) renderKey(slot int) string {
	current, ok := m.surface.lookup(m.visible[slot])
	style := blankStyle
	text := "--"
	if ok && !current.blank && current.text != "" {
		text = current.text
		style = enabledStyle
		if current.mode == render.ModeDisabled {
			style = disabledStyle
		}
	}
	if ok && current.title != "" {
		text = current.title
	}

	edge := borderColor
	if slot == m.cursor {
		edge = selectedColor
	}
	return style.
		Width(keyWidth).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Border(keyBorder).
		BorderForeground(edge).
		Render(text)
}

func (m *Model) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.cursor = next
}

func (m *Model) tap(hold bool) {
	if m.cursor >= len(m.visible) {
		return
	}
	instance := m.visible[m.cursor]
	m.handler.Handle(context.Background(), stopwatch.Event{
		Type:     stopwatch.EventTap,
		Instance: instance,
		Settings: m.surface.load(instance),
		Hold:     hold,
	})
}

func (m *Model) showPage(page int) {
	pages := m.config.Pages
	page = ((page % pages) + pages) % pages

	m.hideAll()
	m.page = page
	for slot := 0; slot < m.config.KeysPerPage(); slot++ {
		instance := model.InstanceID(page, slot)
		m.visible = append(m.visible, instance)
		m.handler.Handle(context.Background(), stopwatch.Event{
			Type:     stopwatch.EventWillAppear,
			Instance: instance,
			Settings: m.surface.load(instance),
		})
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m *Model) hideAll() {
	for _, instance := range m.visible {
		m.handler.Handle(context.Background(), stopwatch.Event{
			Type:     stopwatch.EventWillDisappear,
			Instance: instance,
		})
		m.surface.forget(instance)
	}
	m.visible = nil
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}
