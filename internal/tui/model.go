// Package tui is the terminal shell: type a node id, press enter, read its
// relations.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Bama-S/capec-rel/internal/domain"
	"github.com/Bama-S/capec-rel/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF9F43")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	resultBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "analyze node"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Enter, k.Quit}}
}

// Model is the bubbletea model of the explorer.
type Model struct {
	svc      domain.RelationService
	input    textinput.Model
	help     help.Model
	keys     keyMap
	analysis *models.NodeAnalysis
	errMsg   string
	width    int
}

// New returns a Model with the id input focused.
func New(svc domain.RelationService) Model {
	ti := textinput.New()
	ti.Placeholder = "CAPEC node id, e.g. 66"
	ti.Prompt = "Node ID > "
	ti.CharLimit = 20
	ti.Width = 24
	ti.Focus()

	return Model{
		svc:   svc,
		input: ti,
		help:  help.New(),
		keys:  keys,
	}
}

// Run starts the explorer on the terminal and blocks until the user quits
// or ctx is done.
func Run(ctx context.Context, svc domain.RelationService) error {
	if _, err := tea.NewProgram(New(svc), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Enter):
			m.analyze()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// analyze runs the query for the typed id. Non-numeric input leaves the
// previous result in place and shows an error instead.
func (m *Model) analyze() {
	raw := strings.TrimSpace(m.input.Value())

	id, err := models.ParseNodeID(raw)
	if err != nil || id < 0 {
		m.errMsg = fmt.Sprintf("%q is not a node id; enter a non-negative integer", raw)
		return
	}

	m.errMsg = ""
	m.analysis = m.svc.Analyze(id)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CAPEC ID Analysis"))
	b.WriteString("\n")
	b.WriteString(contentStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.analysis != nil {
		b.WriteString(resultBoxStyle.Render(renderAnalysis(m.analysis)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func renderAnalysis(a *models.NodeAnalysis) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Related Nodes for ID: %d", a.Node)))
	b.WriteString("\n")

	if !a.Exists {
		b.WriteString("not present in the loaded relations\n")
	}

	for _, row := range []struct {
		label string
		ids   []models.NodeID
	}{
		{"Parents", a.Parents},
		{"Grandparents", a.Grandparents},
		{"Children", a.Children},
		{"Grandchildren", a.Grandchildren},
		{"Peers", a.Peers},
		{"Can Precede", a.CanPrecede},
		{"Can Follow", a.CanFollow},
		{"Ancestors", a.Ancestors},
		{"Descendants", a.Descendants},
	} {
		b.WriteString(labelStyle.Render(row.label+":"))
		b.WriteString(joinIDs(row.ids))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Is Root?:"))
	b.WriteString(fmt.Sprintf("%t\n", a.IsRoot))
	b.WriteString(labelStyle.Render("Is Leaf?:"))
	b.WriteString(fmt.Sprintf("%t", a.IsLeaf))

	return b.String()
}

func joinIDs(ids []models.NodeID) string {
	if len(ids) == 0 {
		return "none"
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}

	return strings.Join(parts, ", ")
}
