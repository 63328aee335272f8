package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/phh"
)

type styles struct {
	Header    lipgloss.Style
	Board     lipgloss.Style
	Action    lipgloss.Style
	Player    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Won       lipgloss.Style
	Lost      lipgloss.Style
	Dim       lipgloss.Style
}

var theme = styles{
	Header: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(true).
		Padding(0, 1),
	Board: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#96CEB4")).
		Bold(true),
	Action: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")),
	Player: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Bold(true),
	RedCard: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true),
	BlackCard: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#A0A0A0")).
		Bold(true),
	Won: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")),
	Lost: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")),
	Dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262")),
}

// RenderHand writes a readable view of one hand history.
func RenderHand(w io.Writer, idx int, h *phh.HandHistory) {
	profile := h.Profile
	if profile == "" {
		profile = h.Variant
	}
	title := fmt.Sprintf("Hand %d · %s", idx+1, profile)
	if h.Terminal != "" {
		title += " · " + h.Terminal
	}
	fmt.Fprintln(w, theme.Header.Render(title))
	if h.HandID != "" {
		fmt.Fprintln(w, theme.Dim.Render(h.HandID))
	}

	for i, start := range h.StartingStacks {
		line := fmt.Sprintf("%s %s stack %s", theme.Player.Render(playerLabel(h, i)), seatLabel(h, i), cents(start))
		if i < len(h.FinishingStacks) {
			end := h.FinishingStacks[i]
			line += " → " + cents(end) + " " + delta(end-start)
		}
		fmt.Fprintln(w, "  "+line)
	}

	var lines []string
	for _, a := range h.Actions {
		if l := describe(h, a); l != "" {
			lines = append(lines, l)
		}
	}
	fmt.Fprintln(w, lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n")))
	fmt.Fprintln(w)
}

func playerLabel(h *phh.HandHistory, i int) string {
	if i < len(h.Players) {
		return h.Players[i]
	}
	return "p" + strconv.Itoa(i+1)
}

func seatLabel(h *phh.HandHistory, i int) string {
	if i < len(h.Seats) {
		return theme.Dim.Render(fmt.Sprintf("(seat %d)", h.Seats[i]))
	}
	return ""
}

func cents(v int) string {
	if v < 0 {
		return "-" + money.Money(uint32(-v)).String()
	}
	return money.Money(uint32(v)).String()
}

func delta(d int) string {
	switch {
	case d > 0:
		return theme.Won.Render("+" + cents(d))
	case d < 0:
		return theme.Lost.Render(cents(d))
	default:
		return theme.Dim.Render("±0")
	}
}

// describe turns one PHH action into a display line.
func describe(h *phh.HandHistory, action string) string {
	fields := strings.Fields(action)
	if len(fields) < 2 || strings.HasPrefix(action, "#") {
		return theme.Dim.Render(action)
	}
	if fields[0] == "d" {
		switch {
		case fields[1] == "dh" && len(fields) == 4:
			return fmt.Sprintf("%s dealt %s", who(h, fields[2]), renderCards(fields[3]))
		case fields[1] == "db" && len(fields) == 3:
			return theme.Board.Render("board") + " " + renderCards(fields[2])
		}
		return theme.Dim.Render(action)
	}

	p := who(h, fields[0])
	switch fields[1] {
	case "f":
		return p + " " + theme.Action.Render("folds")
	case "cc":
		return p + " " + theme.Action.Render("calls")
	case "cbr":
		if len(fields) == 3 {
			amount, err := strconv.Atoi(fields[2])
			if err == nil {
				return fmt.Sprintf("%s %s %s", p, theme.Action.Render("raises to"), cents(amount))
			}
		}
	case "sm":
		if len(fields) == 3 {
			return fmt.Sprintf("%s shows %s", p, renderCards(fields[2]))
		}
	}
	return theme.Dim.Render(action)
}

func who(h *phh.HandHistory, token string) string {
	i, err := strconv.Atoi(strings.TrimPrefix(token, "p"))
	if err != nil || i < 1 {
		return token
	}
	return theme.Player.Render(playerLabel(h, i-1))
}

func renderCards(s string) string {
	cards, err := phh.ParseCards(s)
	if err != nil {
		return s
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := theme.BlackCard
		if c.Suit.Red() {
			style = theme.RedCard
		}
		parts[i] = style.Render(c.Short())
	}
	return strings.Join(parts, " ")
}
