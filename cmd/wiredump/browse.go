package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	wirecodec "github.com/wippyai/wire-codec"
	"github.com/wippyai/wire-codec/graph"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	shapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// detailLines is the height kept below the list for the selected
// instruction.
const detailLines = 6

type browseModel struct {
	err      error
	cat      tech.Catalog
	g        *graph.Graph
	shapes   map[int][]shape.Shape
	name     string
	instrs   []stream.Instruction
	list     viewport.Model
	jump     textinput.Model
	s        stream.Stream
	selected int
	state    browseState
	ready    bool
}

type browseState int

const (
	stateBrowse browseState = iota
	stateGoto
)

func newBrowseModel(name string, s stream.Stream, cat tech.Catalog) *browseModel {
	jump := textinput.New()
	jump.Prompt = "slot: "
	jump.Placeholder = "0"
	jump.Width = 12
	jump.CharLimit = 10
	return &browseModel{
		name:  name,
		s:     s,
		cat:   cat,
		list:  viewport.New(80, 20),
		jump:  jump,
		state: stateBrowse,
	}
}

type wireLoadedMsg struct {
	err    error
	g      *graph.Graph
	shapes map[int][]shape.Shape
	instrs []stream.Instruction
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadWire
}

func (m *browseModel) loadWire() tea.Msg {
	if err := stream.Validate(m.s); err != nil {
		return wireLoadedMsg{err: err}
	}
	shapes, err := wirecodec.Shapes(m.s, m.cat)
	if err != nil {
		return wireLoadedMsg{err: err}
	}
	g, err := wirecodec.Decode(m.s, m.cat)
	if err != nil {
		return wireLoadedMsg{err: err}
	}

	bySlot := make(map[int][]shape.Shape)
	for _, sh := range shapes {
		bySlot[sh.ID] = append(bySlot[sh.ID], sh)
	}
	return wireLoadedMsg{instrs: stream.Decode(m.s), shapes: bySlot, g: g}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.Width = msg.Width
		m.list.Height = max(msg.Height-detailLines-4, 1)
		m.render()

	case tea.KeyMsg:
		if m.state == stateGoto {
			return m.updateGoto(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "pgup":
			m.move(-m.list.Height)

		case "pgdown":
			m.move(m.list.Height)

		case "home":
			m.move(-len(m.instrs))

		case "end":
			m.move(len(m.instrs))

		case "g":
			if m.ready {
				m.state = stateGoto
				m.jump.Reset()
				return m, m.jump.Focus()
			}
		}

	case wireLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.instrs = msg.instrs
		m.shapes = msg.shapes
		m.g = msg.g
		m.ready = true
		m.render()
	}

	return m, nil
}

func (m *browseModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateBrowse
		m.jump.Blur()
		m.err = nil
		return m, nil

	case "enter":
		slot, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
		if err != nil {
			m.err = fmt.Errorf("bad slot %q", m.jump.Value())
			return m, nil
		}
		m.err = nil
		m.gotoSlot(slot)
		m.state = stateBrowse
		m.jump.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

// gotoSlot selects the instruction that covers slot.
func (m *browseModel) gotoSlot(slot int) {
	for i, in := range m.instrs {
		if slot >= in.Slot && slot < in.Slot+in.Slots {
			m.selected = i
			m.render()
			return
		}
	}
	m.err = fmt.Errorf("slot %d is outside the wire (%d slots)", slot, m.s.Len())
}

func (m *browseModel) move(delta int) {
	if len(m.instrs) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.instrs)-1)
	m.render()
}

// render redraws the instruction list and scrolls it to keep the selection
// visible.
func (m *browseModel) render() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, in := range m.instrs {
		line := in.String()
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < len(m.instrs)-1 {
			b.WriteString("\n")
		}
	}
	m.list.SetContent(b.String())

	switch {
	case m.selected < m.list.YOffset:
		m.list.SetYOffset(m.selected)
	case m.selected >= m.list.YOffset+m.list.Height:
		m.list.SetYOffset(m.selected - m.list.Height + 1)
	}
}

// detail describes what the selected instruction produced.
func (m *browseModel) detail() string {
	if len(m.instrs) == 0 {
		return "empty wire"
	}
	in := m.instrs[m.selected]

	var b strings.Builder
	b.WriteString(kindStyle.Render(in.Kind.String()))
	fmt.Fprintf(&b, " slots %d-%d, junction %d\n", in.Slot, in.Slot+in.Slots-1, in.ID)
	for _, sh := range m.shapes[in.Slot] {
		b.WriteString(shapeStyle.Render(sh.String()))
		b.WriteString("\n")
	}
	if id, ok := m.g.NodeAt(in.ID); ok {
		n := m.g.Node(id)
		fmt.Fprintf(&b, "node %s", n)
		for _, t := range n.Terminals() {
			fmt.Fprintf(&b, " %s", t)
		}
		b.WriteString("\n")
	}
	if id, ok := m.g.EdgeAt(in.ID); ok {
		fmt.Fprintf(&b, "edge %s\n", describeEdge(m.g, m.g.Edge(id)))
	}
	return b.String()
}

func (m *browseModel) View() string {
	if m.err != nil && !m.ready {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready {
		return "Decoding wire..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Wire Browser"))
	fmt.Fprintf(&b, " %s  %d slots, %d nodes, %d edges\n\n", m.name, m.s.Len(), m.g.NodeCount(), m.g.EdgeCount())
	b.WriteString(m.list.View())
	b.WriteString("\n\n")
	b.WriteString(m.detail())

	switch {
	case m.state == stateGoto:
		b.WriteString(m.jump.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc back"))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
		fallthrough
	default:
		b.WriteString(helpStyle.Render("↑/↓ select • pgup/pgdown page • g goto slot • q quit"))
	}
	return b.String()
}

func (a *app) runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("browse needs a terminal; use dump, shapes or graph instead")
	}
	if input(args) == "-" {
		return fmt.Errorf("browse reads keys from stdin; name the wire file")
	}
	s, cat, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newBrowseModel(input(args), s, cat), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
