// Package game implements the betting engine for limit poker variants
// (Kuhn, Leduc, Texas limit and friends).
//
// A hand is played by PlayHand, which posts blinds, asks a Players
// collaborator for an action class at every turn, applies it to per-seat
// funds and pots, and settles the pots once the hand ends. Every decision is
// recorded as an Event so that the hand can be replayed exactly.
//
// # Basic Usage
//
// Deal and play a single Kuhn hand between two scripted seats:
//
//	sim := game.NewSim(game.Kuhn(2), game.ActionKuhn{}, true)
//	funds := []game.SeatFund{{Seat: 0, Fund: money.New(10, 0)}, {Seat: 1, Fund: money.New(10, 0)}}
//	log, score, err := game.SimulateHand(rng, sim, poker.Naive{}, players, funds, 0)
//
// # Action classes
//
// Players never see Fold/Call/Raise with amounts; they answer with a small
// integer class. An ActionClass maps classes to concrete moves for the
// current betting context and computes the legal Mask. See ActionKuhn and
// ActionLimit.
//
// # Determinism
//
// The engine draws no randomness of its own. SimulateHand shuffles with the
// *rand.Rand it is given, and PlayHand is a pure function of its inputs and
// the collaborator's answers.
package game
