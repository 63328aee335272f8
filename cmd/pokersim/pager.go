package main

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokersim/internal/phh"
)

// pager browses rendered hands one at a time.
type pager struct {
	hands    []*phh.HandHistory
	index    int
	view     viewport.Model
	quitting bool
}

var pagerHelp = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))

func newPager(hands []*phh.HandHistory) *pager {
	vp := viewport.New(80, 20)
	p := &pager{hands: hands, view: vp}
	p.view.SetContent(p.render())
	return p
}

func (p *pager) render() string {
	var buf bytes.Buffer
	RenderHand(&buf, p.index, p.hands[p.index])
	return buf.String()
}

// show moves to hand i, clamped to the loaded hands.
func (p *pager) show(i int) {
	i = max(0, min(i, len(p.hands)-1))
	if i == p.index {
		return
	}
	p.index = i
	p.view.SetContent(p.render())
	p.view.GotoTop()
}

func (p *pager) Init() tea.Cmd { return nil }

func (p *pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.view.Width = msg.Width
		p.view.Height = max(msg.Height-1, 1)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			p.quitting = true
			return p, tea.Quit
		case "n", "right", "l":
			p.show(p.index + 1)
			return p, nil
		case "p", "left", "h":
			p.show(p.index - 1)
			return p, nil
		case "home", "g":
			p.show(0)
			return p, nil
		case "end", "G":
			p.show(len(p.hands) - 1)
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p *pager) View() string {
	if p.quitting {
		return ""
	}
	help := pagerHelp.Render(fmt.Sprintf("hand %d/%d · n/p next/previous · ↑/↓ scroll · q quit", p.index+1, len(p.hands)))
	return p.view.View() + "\n" + help
}

func runPager(hands []*phh.HandHistory) error {
	_, err := tea.NewProgram(newPager(hands), tea.WithAltScreen()).Run()
	return err
}
