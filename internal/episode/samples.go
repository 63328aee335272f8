package episode

import (
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/poker"
)

// Sample is a decision labelled with the outcome of its hand, in a form
// that survives JSON encoding.
type Sample struct {
	Hand        string   `json:"hand,omitempty"`
	Seat        int      `json:"seat"`
	Round       int      `json:"round"`
	Cards       []string `json:"cards"`
	Target      uint32   `json:"target"`
	TargetRaise uint32   `json:"target_raise"`
	Raisable    bool     `json:"raisable"`
	Pots        []uint32 `json:"pots"`
	Fund        uint32   `json:"fund"`
	Mask        uint32   `json:"mask"`
	Class       uint8    `json:"class"`
	// Reward is the seat's fund change over the hand in big blinds.
	Reward float64 `json:"reward"`
}

// Samples labels every decision with the final fund change of its seat.
// Decisions of seats missing from inits or score are dropped.
func Samples(decisions []Decision, score game.Score, inits []game.PlayerInit, blind money.Money) []Sample {
	rewards := make(map[game.SeatID]float64, len(inits))
	for _, p := range inits {
		if final, ok := score.Fund(p.Seat); ok {
			rewards[p.Seat] = float64(final.Delta(p.Fund)) / float64(blind)
		}
	}

	samples := make([]Sample, 0, len(decisions))
	for _, d := range decisions {
		reward, ok := rewards[d.Seat]
		if !ok {
			continue
		}
		pots := make([]uint32, len(d.Pots))
		for i, p := range d.Pots {
			pots[i] = uint32(p)
		}
		samples = append(samples, Sample{
			Seat:        d.Seat,
			Round:       d.Round,
			Cards:       cardNames(d.Cards),
			Target:      uint32(d.Target),
			TargetRaise: uint32(d.TargetRaise),
			Raisable:    d.Raisable,
			Pots:        pots,
			Fund:        uint32(d.Fund),
			Mask:        uint32(d.Mask),
			Class:       d.Class,
			Reward:      reward,
		})
	}
	return samples
}

// FromEpisode labels the decisions of a replayed hand.
func FromEpisode(ep *Episode, blind money.Money) []Sample {
	return Samples(ep.Decisions, ep.Score, ep.Log.Players, blind)
}

func cardNames(cards []poker.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Short()
	}
	return names
}
