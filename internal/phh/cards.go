package phh

import (
	"strings"

	"github.com/lox/pokersim/poker"
)

// FormatCards joins cards in PHH notation, e.g. "AhKh".
func FormatCards(cards []poker.Card) string {
	return poker.FormatCards(cards)
}

// NormalizeCard converts loose notation (e.g. 10h, ah) to PHH notation (Th, Ah).
func NormalizeCard(card string) string {
	card = strings.TrimSpace(card)
	if card == "" || card == "??" {
		return card
	}
	if len(card) < 2 {
		return strings.ToUpper(card)
	}
	rank, suit := card[:len(card)-1], strings.ToLower(card[len(card)-1:])
	if rank == "10" {
		rank = "T"
	}
	return strings.ToUpper(rank) + suit
}

// ParseCards reads a run of PHH cards such as "AhKh" or "10hJc". Unknown
// cards ("??") are rejected.
func ParseCards(s string) ([]poker.Card, error) {
	return poker.ParseCards(strings.ReplaceAll(s, "10", "T"))
}
