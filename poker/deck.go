package poker

import (
	rand "math/rand/v2"
	"slices"
)

// KuhnDeck is the three card Kuhn poker deck.
var KuhnDeck = []Card{
	{Jack, Spade}, {Queen, Spade}, {King, Spade},
}

// LeducDeck is the six card Leduc hold'em deck.
var LeducDeck = []Card{
	{Jack, Spade}, {Jack, Heart},
	{Queen, Spade}, {Queen, Heart},
	{King, Spade}, {King, Heart},
}

// FrenchDeck returns the 52 card deck, sorted.
func FrenchDeck() []Card {
	cards := make([]Card, 0, NumRanks*NumSuits)
	for r := range Rank(NumRanks) {
		for s := range Suit(NumSuits) {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}

// Deck deals from a shuffled copy of a card set.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck over cards with an explicit RNG.
// The input slice is not modified.
func NewDeck(rng *rand.Rand, cards []Card) *Deck {
	if rng == nil {
		panic("poker: NewDeck requires a non-nil RNG")
	}
	d := &Deck{
		cards: slices.Clone(cards),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// Shuffle reshuffles every card and resets the deal position.
func (d *Deck) Shuffle() {
	d.next = 0
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal deals n cards from the deck, or nil if not enough remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := slices.Clone(d.cards[d.next : d.next+n])
	d.next += n
	return cards
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
