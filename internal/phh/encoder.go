package phh

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokersim/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeAll writes hands as a PHHS file: one numbered table per hand.
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	bw := bufio.NewWriter(w)
	for i, hand := range hands {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "[%d]\n", i+1)
		if err := Encode(bw, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// Decode reads a single PHH hand.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &hand, nil
}

// DecodeAll reads a PHHS file, returning the hands in table order.
func DecodeAll(r io.Reader) ([]*HandHistory, error) {
	var tables map[string]*HandHistory
	if _, err := toml.NewDecoder(r).Decode(&tables); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	keys := make([]int, 0, len(tables))
	for k := range tables {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("phh: table %q is not numbered", k)
		}
		keys = append(keys, n)
	}
	slices.Sort(keys)
	hands := make([]*HandHistory, len(keys))
	for i, k := range keys {
		hands[i] = tables[strconv.Itoa(k)]
	}
	return hands, nil
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts an engine move to its PHH action string. player is
// the zero based PHH player index and street is what the player has now put
// in on this street, in cents.
func FormatAction(player int, move game.Move, street int) string {
	p := fmt.Sprintf("p%d", player+1)
	switch move.Action {
	case game.Fold:
		return p + " f"
	case game.Call:
		return p + " cc"
	case game.Raise:
		return fmt.Sprintf("%s cbr %d", p, street)
	default:
		return fmt.Sprintf("# %s %s %d", p, move, street)
	}
}
