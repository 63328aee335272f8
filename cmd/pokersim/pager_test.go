package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokersim/internal/phh"
)

func TestPagerNavigation(t *testing.T) {
	hands := []*phh.HandHistory{
		{Variant: "kuhn", HandID: "first", Actions: []string{"d dh p1 Ks"}},
		{Variant: "kuhn", HandID: "second", Actions: []string{"d dh p1 Js"}},
	}
	p := newPager(hands)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(p.View(), "first") {
		t.Fatalf("expected first hand in view:\n%s", p.View())
	}

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if p.index != 1 || !strings.Contains(p.View(), "second") {
		t.Fatalf("expected second hand after n, index %d", p.index)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if p.index != 1 {
		t.Fatalf("paging past the end moved to %d", p.index)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if p.index != 0 {
		t.Fatalf("expected first hand after p, index %d", p.index)
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || !p.quitting {
		t.Fatal("expected q to quit")
	}
	if p.View() != "" {
		t.Fatal("expected empty view after quitting")
	}
}
