package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/simulator"
	"github.com/lox/pokersim/poker"
)

func kuhnRecords(t *testing.T, hands int) (*game.Sim, []simulator.HandRecord) {
	t.Helper()
	sim := game.NewSim(game.Kuhn(2), game.ActionKuhn{}, true)
	rng := randutil.New(3)
	table := simulator.Table{
		Sim:      &sim,
		Eval:     poker.Naive{},
		Players:  bot.NewRandom(randutil.Split(rng), sim.ActionClass),
		GamesMax: hands,
	}
	funds := []game.SeatFund{{Seat: 0, Fund: money.New(10, 0)}, {Seat: 1, Fund: money.New(10, 0)}}
	_, records, err := table.Simulate(t.Context(), rng, funds, 0)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return &sim, records
}

func TestHistoriesRoundTrip(t *testing.T) {
	sim, records := kuhnRecords(t, 10)
	if len(records) == 0 {
		t.Fatal("no hands played")
	}
	hands, err := histories(sim, records, 3, []string{"rand", "rand"})
	if err != nil {
		t.Fatalf("histories: %v", err)
	}
	if got := hands[0].Players; len(got) != 2 || !strings.HasPrefix(got[0], "rand-") {
		t.Fatalf("unexpected players %v", got)
	}

	path := filepath.Join(t.TempDir(), "session.phhs")
	if err := writePHH(path, hands); err != nil {
		t.Fatalf("writePHH: %v", err)
	}
	loaded, err := loadPHHFile(path)
	if err != nil {
		t.Fatalf("loadPHHFile: %v", err)
	}
	if len(loaded) != len(hands) {
		t.Fatalf("loaded %d hands, want %d", len(loaded), len(hands))
	}
	for i := range hands {
		if loaded[i].HandID != hands[i].HandID {
			t.Fatalf("hand %d id %q, want %q", i, loaded[i].HandID, hands[i].HandID)
		}
	}
}

func TestLoadSingleHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.phh")
	hand := &phh.HandHistory{Variant: "kuhn", Actions: []string{"d dh p1 Ks", "d dh p2 Js", "p1 f"}, HandID: "x"}
	data, err := phh.EncodeToBytes(hand)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	loaded, err := loadPHHFile(path)
	if err != nil {
		t.Fatalf("loadPHHFile: %v", err)
	}
	if len(loaded) != 1 || loaded[0].HandID != "x" {
		t.Fatalf("unexpected hands %+v", loaded)
	}
}

func TestDescribe(t *testing.T) {
	h := &phh.HandHistory{Players: []string{"alice", "bob"}}
	tests := []struct {
		action string
		want   string
	}{
		{"p1 f", "folds"},
		{"p2 cc", "calls"},
		{"p1 cbr 250", "raises to"},
		{"p1 cbr 250", "2.50"},
		{"d db AhKd", "board"},
		{"p2 sm Js", "shows"},
		{"d dh p2 Js", "bob"},
	}
	for _, tt := range tests {
		if got := describe(h, tt.action); !strings.Contains(got, tt.want) {
			t.Fatalf("describe(%q) = %q, want it to contain %q", tt.action, got, tt.want)
		}
	}
}

func TestRenderHand(t *testing.T) {
	sim, records := kuhnRecords(t, 3)
	hands, err := histories(sim, records, 3, []string{"rand", "rand"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	RenderHand(&buf, 0, hands[0])
	out := buf.String()
	if !strings.Contains(out, "Hand 1") || !strings.Contains(out, "kuhn") {
		t.Fatalf("unexpected render output:\n%s", out)
	}
}
