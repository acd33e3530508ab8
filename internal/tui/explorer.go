package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dissectlabs/dissect/internal/graph"
)

// ViewMode represents the current viewing mode
type ViewMode int

const (
	ListView ViewMode = iota
	DetailView
)

// row is one line of the node list, a node with its tree depth.
type row struct {
	node  graph.ExportNode
	depth int
}

// Model is the bubbletea model for the trace explorer
type Model struct {
	exp          graph.Export
	title        string
	rows         []row
	visible      []row
	cursor       int
	viewMode     ViewMode
	criticalOnly bool

	detailViewport viewport.Model
	ready          bool
	width          int
	height         int
}

// NewExplorer creates an explorer over an analyzed trace.
func NewExplorer(exp graph.Export, title string) Model {
	return Model{
		exp:            exp,
		title:          title,
		rows:           buildRows(exp),
		visible:        buildRows(exp),
		viewMode:       ListView,
		detailViewport: viewport.New(40, 10),
	}
}

// buildRows flattens the graph into display order: depth-first from each
// root, children in edge order, each node shown once.
func buildRows(exp graph.Export) []row {
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range exp.Edges {
		children[e.Source] = append(children[e.Source], e.Target)
		hasParent[e.Target] = true
	}

	byID := make(map[string]graph.ExportNode, len(exp.Nodes))
	for _, n := range exp.Nodes {
		byID[n.ID] = n
	}

	var rows []row
	visited := make(map[string]bool)

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		rows = append(rows, row{node: byID[id], depth: depth})
		for _, child := range children[id] {
			walk(child, depth+1)
		}
	}

	for _, n := range exp.Nodes {
		if !hasParent[n.ID] {
			walk(n.ID, 0)
		}
	}
	// Nodes reachable only through dropped edges still get listed
	for _, n := range exp.Nodes {
		walk(n.ID, 0)
	}

	return rows
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.viewMode {
		case ListView:
			return m.updateListView(msg)
		case DetailView:
			return m.updateDetailView(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width-4, msg.Height-8)
			m.ready = true
		} else {
			m.detailViewport.Width = msg.Width - 4
			m.detailViewport.Height = msg.Height - 8
		}
	}

	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "g":
		m.cursor = 0

	case "G":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}

	case "c":
		m.criticalOnly = !m.criticalOnly
		m.visible = m.filterRows()
		if m.cursor >= len(m.visible) {
			m.cursor = 0
		}

	case "enter", "d":
		if m.cursor < len(m.visible) {
			m.viewMode = DetailView
			m.detailViewport.SetContent(m.renderDetail(m.visible[m.cursor].node))
			m.detailViewport.GotoTop()
		}
	}

	return m, nil
}

func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace", "enter":
		m.viewMode = ListView
		return m, nil

	default:
		m.detailViewport, cmd = m.detailViewport.Update(msg)
	}

	return m, cmd
}

func (m Model) filterRows() []row {
	if !m.criticalOnly {
		return m.rows
	}
	var out []row
	for _, r := range m.rows {
		if r.node.OnCriticalPath {
			out = append(out, r)
		}
	}
	return out
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	title := "Dissect Explorer"
	if m.title != "" {
		title += "  " + m.title
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	switch m.viewMode {
	case DetailView:
		b.WriteString(m.detailViewport.View())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderSummary() string {
	parts := []string{
		fmt.Sprintf("Nodes: %d", len(m.exp.Nodes)),
		fmt.Sprintf("Edges: %d", len(m.exp.Edges)),
		fmt.Sprintf("Critical path: %s", DurationStyle.Render(fmt.Sprintf("%.0fms", m.exp.CriticalPath.TotalDuration))),
	}
	if len(m.exp.Warnings) > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("Warnings: %d", len(m.exp.Warnings))))
	}
	if m.criticalOnly {
		parts = append(parts, CriticalStyle.Render("[critical only]"))
	}
	return MutedStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return MutedStyle.Render("No nodes to show.")
	}

	maxVisible := m.height - 8
	if maxVisible < 5 {
		maxVisible = 5
	}
	scrollOffset := 0
	if m.cursor >= maxVisible {
		scrollOffset = m.cursor - maxVisible + 1
	}

	var b strings.Builder
	for i, r := range m.visible {
		if i < scrollOffset || i >= scrollOffset+maxVisible {
			continue
		}
		line := m.renderRow(r)
		if i == m.cursor {
			b.WriteString(CursorStyle.Render("→ "))
			b.WriteString(SelectedStyle.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if len(m.visible) > maxVisible {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("[%d/%d nodes]", m.cursor+1, len(m.visible))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderRow(r row) string {
	indent := strings.Repeat("  ", r.depth)
	label := KindStyle(r.node.Kind).Render(r.node.Label)

	critical := ""
	if r.node.OnCriticalPath {
		critical = CriticalStyle.Render(" ●")
	}

	duration := DurationStyle.Render(fmt.Sprintf("(%.0fms)", r.node.Duration))
	kind := MutedStyle.Render("[" + string(r.node.Kind) + "]")

	return fmt.Sprintf("%s%s %s %s%s", indent, label, kind, duration, critical)
}

func (m Model) renderDetail(n graph.ExportNode) string {
	var b strings.Builder

	b.WriteString(SectionHeaderStyle.Render("Node"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%-12s %s\n", "Label:", n.Label))
	b.WriteString(fmt.Sprintf("%-12s %s\n", "ID:", MutedStyle.Render(n.ID)))
	b.WriteString(fmt.Sprintf("%-12s %s\n", "Kind:", string(n.Kind)))

	b.WriteString(SectionHeaderStyle.Render("Timing"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%-12s %.2fms\n", "Start:", n.Start))
	b.WriteString(fmt.Sprintf("%-12s %.2fms\n", "End:", n.End))
	b.WriteString(fmt.Sprintf("%-12s %s\n", "Duration:", DurationStyle.Render(fmt.Sprintf("%.2fms", n.Duration))))
	b.WriteString(fmt.Sprintf("%-12s %.2f\n", "Heat:", n.Heat))

	if n.OnCriticalPath {
		b.WriteString("\n")
		b.WriteString(CriticalStyle.Render("● On critical path"))
		b.WriteString("\n")
	}

	if len(n.Attributes) > 0 {
		b.WriteString(SectionHeaderStyle.Render("Attributes"))
		b.WriteString("\n\n")

		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("%-20s %v\n", AttributeKeyStyle.Render(k+":"), n.Attributes[k]))
		}
	}

	return b.String()
}

func (m Model) renderHelp() string {
	var keys []string
	switch m.viewMode {
	case DetailView:
		keys = []string{
			HelpKeyStyle.Render("[↑↓]") + " Scroll",
			HelpKeyStyle.Render("[Esc]") + " Back",
			HelpKeyStyle.Render("[q]") + " Quit",
		}
	default:
		keys = []string{
			HelpKeyStyle.Render("[↑↓]") + " Navigate",
			HelpKeyStyle.Render("[Enter]") + " Detail",
			HelpKeyStyle.Render("[c]") + " Critical only",
			HelpKeyStyle.Render("[q]") + " Quit",
		}
	}
	return HelpStyle.Render(strings.Join(keys, " "))
}
