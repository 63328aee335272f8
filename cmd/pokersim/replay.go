package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/phh"
)

// ReplayCmd renders a PHH or PHHS file.
type ReplayCmd struct {
	File        string `arg:"" name:"file" type:"existingfile" help:"Path to a .phh or .phhs file"`
	Limit       int    `help:"Maximum number of hands to render (0 = all)"`
	Interactive bool   `short:"i" help:"Browse the hands in a full screen pager"`
}

func (cmd *ReplayCmd) Run(*Globals) error {
	if cmd.File == "" {
		return errors.New("replay requires a file path")
	}
	hands, err := loadPHHFile(cmd.File)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	limit := cmd.Limit
	if limit <= 0 || limit > len(hands) {
		limit = len(hands)
	}
	if cmd.Interactive {
		return runPager(hands[:limit])
	}
	for i := range limit {
		RenderHand(os.Stdout, i, hands[i])
	}
	return nil
}

// loadPHHFile reads a single hand (.phh) or a numbered session (.phhs).
func loadPHHFile(path string) ([]*phh.HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".phh") {
		hand, err := phh.Decode(f)
		if err != nil {
			return nil, err
		}
		return []*phh.HandHistory{hand}, nil
	}
	return phh.DecodeAll(f)
}

// ProfilesCmd lists the built-in profiles.
type ProfilesCmd struct{}

func (ProfilesCmd) Run(*Globals) error {
	for _, id := range game.ProfileIDs() {
		lo, hi, _ := game.ProfilePlayers(id)
		p, err := game.LookupProfile(id, lo)
		if err != nil {
			return err
		}
		raises := "no limit"
		if p.Limit != nil {
			raises = fmt.Sprintf("%d raises of %v bb", p.Limit.Caps, p.Limit.Raises)
		}
		fmt.Fprintf(os.Stdout, "%-13s %d-%d players, %d card deck, rounds %v, blinds %v, %s\n",
			id, lo, hi, len(p.Deck), p.Rounds, p.Blinds, raises)
	}
	return nil
}
