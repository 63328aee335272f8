package phh

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// HandID derives a stable identifier for the index'th hand of a seeded run.
func HandID(seed int64, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "pokersim:%d:%d", seed, index)).String()
}

// Variant maps a profile to its PHH variant code. Profiles with no PHH
// equivalent keep their own ID.
func Variant(profileID string) string {
	if profileID == "texas-limit" {
		return "FT"
	}
	return profileID
}

// FromHand converts a played hand into a PHH record. Players are numbered in
// deal order.
func FromHand(sim *game.Sim, log game.Log, score game.Score, id string) (*HandHistory, error) {
	p := sim.Profile
	n := len(log.Players)
	if n == 0 {
		return nil, fmt.Errorf("phh: hand has no players")
	}

	index := make(map[game.SeatID]int, n)
	h := &HandHistory{
		Variant:           Variant(p.ID),
		SeatCount:         p.Players,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            int(sim.BlindBiggest),
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		HandID:            id,
		Profile:           p.ID,
		Terminal:          score.Terminal.String(),
	}
	if p.Limit != nil && len(p.Limit.Raises) > 0 {
		bb := int(sim.BlindBiggest)
		h.SmallBet = bb * int(p.Limit.Raises[0])
		h.BigBet = bb * int(p.Limit.Raises[len(p.Limit.Raises)-1])
	}

	for i, pl := range log.Players {
		index[pl.Seat] = i
		h.Seats[i] = pl.Seat + 1
		h.StartingStacks[i] = int(pl.Fund)
		final, ok := score.Fund(pl.Seat)
		if !ok {
			final = pl.Fund
		}
		h.FinishingStacks[i] = int(final)
		if final > pl.Fund {
			h.Winnings[i] = int(final - pl.Fund)
		}
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, FormatCards(pl.Cards)))
	}

	boards := splitBoards(p.Rounds, log.TableCards)
	ante := p.Ante()
	posts := min(len(p.Blinds), n)
	folded := make(map[game.SeatID]bool, n)

	for r, entries := range log.Rounds {
		if r > 0 {
			if r-1 >= len(boards) {
				return nil, fmt.Errorf("phh: round %d has no board cards", r)
			}
			h.Actions = appendBoard(h.Actions, boards[r-1])
		}
		street := make(map[game.SeatID]int, n)
		for i, e := range entries {
			pi, ok := index[e.Seat]
			if !ok {
				return nil, fmt.Errorf("phh: round %d: seat %d was not dealt in", r, e.Seat)
			}
			if r == 0 && i < posts {
				if ante {
					h.Antes[pi] += int(e.Move.Pledge)
				} else {
					h.BlindsOrStraddles[pi] += int(e.Move.Pledge)
					street[e.Seat] += int(e.Move.Pledge)
				}
				continue
			}
			street[e.Seat] += int(e.Move.Pledge)
			if e.Move.Action == game.Fold {
				folded[e.Seat] = true
			}
			h.Actions = append(h.Actions, FormatAction(pi, e.Move, street[e.Seat]))
		}
	}

	if score.Terminal == game.TerminalShowdown {
		for r := max(len(log.Rounds)-1, 0); r < len(boards); r++ {
			h.Actions = appendBoard(h.Actions, boards[r])
		}
		for i, pl := range log.Players {
			if !folded[pl.Seat] {
				h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", i+1, FormatCards(pl.Cards)))
			}
		}
	}
	return h, nil
}

func appendBoard(actions []string, board []poker.Card) []string {
	if len(board) == 0 {
		return actions
	}
	return append(actions, "d db "+FormatCards(board))
}

// splitBoards cuts the community cards into the boards of each street.
func splitBoards(rounds []int, table []poker.Card) [][]poker.Card {
	var boards [][]poker.Card
	for _, c := range rounds[1:] {
		if c > len(table) {
			break
		}
		boards = append(boards, table[:c])
		table = table[c:]
	}
	return boards
}
