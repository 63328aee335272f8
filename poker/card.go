package poker

import (
	"cmp"
	"fmt"
	"strings"
)

// Rank is a card value, Two through Ace.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct card values.
const NumRanks = 13

// Suit of a card. The order matches the compact byte encoding.
type Suit uint8

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

const rankChars = "23456789TJQKA"
const suitChars = "shdc"

var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}

func (r Rank) String() string {
	if int(r) >= len(rankChars) {
		return "?"
	}
	return rankChars[r : r+1]
}

func (s Suit) String() string {
	if int(s) >= len(suitSymbols) {
		return "?"
	}
	return suitSymbols[s]
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Heart || s == Diamond
}

// Card is a single playing card. Cards order by rank first, then suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard returns the card with the given rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Byte returns the compact encoding rank + suit*13.
func (c Card) Byte() uint8 {
	return uint8(c.Rank) + uint8(c.Suit)*NumRanks
}

// CardFromByte decodes a card produced by Card.Byte.
func CardFromByte(b uint8) (Card, error) {
	if b >= NumRanks*NumSuits {
		return Card{}, fmt.Errorf("invalid card byte %d", b)
	}
	return Card{Rank: Rank(b % NumRanks), Suit: Suit(b / NumRanks)}, nil
}

// String renders the card with a suit symbol, e.g. "J♠".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Short renders the card in two ASCII characters, e.g. "Js".
func (c Card) Short() string {
	if int(c.Suit) >= len(suitChars) {
		return c.Rank.String() + "?"
	}
	return c.Rank.String() + suitChars[c.Suit:c.Suit+1]
}

// Compare orders cards by rank, then by suit.
func Compare(a, b Card) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmp.Compare(a.Suit, b.Suit)
}

// ParseCard parses a two character card such as "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}
	su := strings.IndexByte(suitChars, lower(s[1]))
	if su < 0 {
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}
	return Card{Rank: Rank(r), Suit: Suit(su)}, nil
}

// ParseCards parses a concatenated card string such as "AsKd" or "As Kd".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string %q", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals in tests and tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins the short form of each card.
func FormatCards(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Short())
	}
	return b.String()
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
