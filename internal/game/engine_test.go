package game

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

func kuhnSim(strict bool) Sim {
	return NewSim(Kuhn(2), ActionKuhn{}, strict)
}

func TestKuhnKingBetsJackCalls(t *testing.T) {
	t.Parallel()
	sim := kuhnSim(true)
	players := newScript(act(0, ClassRaise), act(1, ClassCall))
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	table := NewTableStatic(players, sim.Profile.Rounds, nil)

	log, score, err := PlayLog(&sim, poker.Naive{}, table, inits, nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := score.Fund(0); got != dollars(12) {
		t.Errorf("king holder fund = %s, want 12", got)
	}
	if got, _ := score.Fund(1); got != dollars(8) {
		t.Errorf("jack holder fund = %s, want 8", got)
	}
	if score.Pot != dollars(4) || score.Terminal != TerminalShowdown {
		t.Errorf("score = %+v", score)
	}
	if !slices.Equal(score.Winners, []SeatID{0}) {
		t.Errorf("winners = %v", score.Winners)
	}

	// Antes are not logged as plays.
	want := []Event{PlayEvent(0, ClassRaise), PlayEvent(1, ClassCall)}
	if len(log.Events) != len(want) {
		t.Fatalf("events = %v", log.Events)
	}
	for i := range want {
		if log.Events[i].Act != want[i].Act || log.Events[i].Kind != EventPlay {
			t.Errorf("event %d = %v, want %v", i, log.Events[i], want[i])
		}
	}
	if len(log.Rounds) != 1 || len(log.Rounds[0]) != 4 {
		t.Fatalf("rounds = %v", log.Rounds)
	}
	if log.Rounds[0][3] != (RoundEntry{Seat: 1, Move: CallMove(dollars(1))}) {
		t.Errorf("last entry = %+v", log.Rounds[0][3])
	}
	if players.inits != 1 {
		t.Errorf("Init called %d times", players.inits)
	}
	if players.turns[1].Raisable {
		t.Error("second turn should be at the raise cap")
	}
}

func TestDeadHandRefundsBlinds(t *testing.T) {
	t.Parallel()
	sim := NewSim(Leduc(2), ActionLimit{Raises: []uint32{2, 4}}, true)
	sim.SetBlinds([]money.Money{dollars(1), money.Cents(50)})

	players := newScript(act(0, ClassCall), act(1, ClassFold))
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	table := NewTableStatic(players, sim.Profile.Rounds, cards("Qs"))

	log, score, err := PlayLog(&sim, poker.Naive{}, table, inits, cards("Qs"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !score.Dead() {
		t.Fatalf("terminal = %v, want dead", score.Terminal)
	}
	for _, f := range score.Funds {
		if f.Fund != dollars(10) {
			t.Errorf("seat %d fund = %s, want 10", f.Seat, f.Fund)
		}
	}
	if len(score.Winners) != 0 || score.Pot != 0 {
		t.Errorf("dead score = %+v", score)
	}
	// Blind posts are logged outside ante mode.
	if len(log.Events) != 4 || log.Events[0].Act != act(0, ClassRaise) {
		t.Errorf("events = %v", log.Events)
	}
}

func TestAnteHandIsNeverDead(t *testing.T) {
	t.Parallel()
	sim := NewSim(Leduc(2), ActionLimit{Raises: []uint32{2, 4}}, true)
	players := newScript(act(0, ClassCall), act(1, ClassCall), act(0, ClassCall), act(1, ClassCall))
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	table := NewTableStatic(players, sim.Profile.Rounds, cards("Qs"))

	log, score, err := PlayLog(&sim, poker.Naive{}, table, inits, cards("Qs"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if score.Dead() {
		t.Fatal("checked-down ante hand should reach showdown")
	}
	if got, _ := score.Fund(0); got != dollars(11) {
		t.Errorf("winner fund = %s, want 11", got)
	}
	if len(log.Rounds) != 2 {
		t.Errorf("rounds = %d, want 2", len(log.Rounds))
	}
}

func TestAllInAnteGoesToShowdown(t *testing.T) {
	t.Parallel()
	sim := kuhnSim(true)
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(1), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	table := NewTableStatic(newScript(), sim.Profile.Rounds, nil)

	_, score, err := PlayLog(&sim, poker.Naive{}, table, inits, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if score.Terminal != TerminalShowdown {
		t.Fatalf("terminal = %v, want showdown", score.Terminal)
	}
	if got, _ := score.Fund(0); got != dollars(2) {
		t.Errorf("all-in fund = %s, want 2", got)
	}
	if got, _ := score.Fund(1); got != dollars(9) {
		t.Errorf("caller fund = %s, want 9", got)
	}
}

func TestAllAnteAllInIsNotDead(t *testing.T) {
	t.Parallel()
	sim := kuhnSim(true)
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(1), Cards: cards("Js")},
		{Seat: 1, Fund: dollars(1), Cards: cards("Ks")},
	}
	table := NewTableStatic(newScript(), sim.Profile.Rounds, nil)

	_, score, err := PlayLog(&sim, poker.Naive{}, table, inits, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if score.Dead() {
		t.Fatal("hand with every seat all-in on the ante was voided")
	}
	if got, _ := score.Fund(1); got != dollars(2) {
		t.Errorf("winner fund = %s, want 2", got)
	}
}

func threeWaySim(strict bool) Sim {
	profile := Profile{
		ID:      "three-way",
		Blinds:  []money.Money{dollars(5), dollars(10)},
		Deck:    poker.FrenchDeck(),
		Players: 3,
		Rounds:  []int{1, 1},
		Limit:   &Limit{Caps: 2, Raises: []uint32{1, 2}},
	}
	return NewSim(profile, ActionLimit{Raises: profile.Limit.Raises}, strict)
}

func threeWayInits() []PlayerInit {
	return []PlayerInit{
		{Seat: 0, Fund: dollars(100), Cards: cards("2h")},
		{Seat: 1, Fund: dollars(18), Cards: cards("7s")},
		{Seat: 2, Fund: dollars(100), Cards: cards("3d")},
	}
}

func threeWayScript() *script {
	return newScript(
		act(2, ClassCall), act(0, ClassCall), act(1, ClassCall),
		act(0, ClassRaise), act(1, ClassCall), act(2, ClassCall),
	)
}

func TestShortAllInCallIsClipped(t *testing.T) {
	t.Parallel()
	sim := threeWaySim(false)
	players := threeWayScript()
	board := cards("7c")
	table := NewTableStatic(players, sim.Profile.Rounds, board)

	log, score, err := PlayLog(&sim, poker.Naive{}, table, threeWayInits(), board, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(log.Rounds) != 2 {
		t.Fatalf("rounds = %v", log.Rounds)
	}
	if got := log.Rounds[1][1]; got != (RoundEntry{Seat: 1, Move: CallMove(dollars(8))}) {
		t.Errorf("short call recorded as %+v, want call 8", got)
	}

	// The short call must not close the round: seat 2 still owes the full raise.
	last := players.turns[len(players.turns)-1]
	if last.Seat != 2 || last.Target != dollars(30) || last.Pots[2] != dollars(10) {
		t.Errorf("seat 2 turn = %+v", last)
	}
	if last.Pots[1] != dollars(18) {
		t.Errorf("short stack pot = %s, want 18", last.Pots[1])
	}

	// The pair of sevens wins the main pot, the uncovered raises go back.
	want := map[SeatID]money.Money{0: dollars(82), 1: dollars(54), 2: dollars(82)}
	for seat, fund := range want {
		if got, _ := score.Fund(seat); got != fund {
			t.Errorf("seat %d fund = %s, want %s", seat, got, fund)
		}
	}
}

func TestStrictRejectsShortPledge(t *testing.T) {
	t.Parallel()
	sim := threeWaySim(true)
	board := cards("7c")
	table := NewTableStatic(threeWayScript(), sim.Profile.Rounds, board)

	log, _, err := PlayLog(&sim, poker.Naive{}, table, threeWayInits(), board, 0)
	var fundErr *InsufficientFundError
	if !errors.As(err, &fundErr) {
		t.Fatalf("err = %v, want InsufficientFundError", err)
	}
	if fundErr.Seat != 1 || fundErr.Fund != dollars(8) || fundErr.Bet != dollars(20) {
		t.Errorf("err = %+v", fundErr)
	}
	// Blinds, three round zero plays, the table and the raise.
	if len(log.Events) != 7 {
		t.Errorf("partial events = %v", log.Events)
	}
	if len(log.Rounds) != 2 || len(log.Rounds[1]) != 1 {
		t.Errorf("partial rounds = %v", log.Rounds)
	}
}

func TestFoldWhenMatched(t *testing.T) {
	t.Parallel()
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}

	strict := kuhnSim(true)
	_, _, err := PlayLog(&strict, poker.Naive{}, NewTableStatic(newScript(act(0, ClassFold)), []int{1}, nil), inits, nil, 0)
	var semantic *SemanticError
	if !errors.As(err, &semantic) {
		t.Fatalf("strict err = %v, want SemanticError", err)
	}

	loose := kuhnSim(false)
	players := newScript(act(0, ClassFold), act(1, ClassCall))
	log, score, err := PlayLog(&loose, poker.Naive{}, NewTableStatic(players, []int{1}, nil), inits, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !log.Rounds[0][2].Move.IsCheck() {
		t.Errorf("matched fold recorded as %v, want check", log.Rounds[0][2].Move)
	}
	if e := log.Events[0]; e.Kind != EventPlay || e.Act != act(0, ClassCall) {
		t.Errorf("matched fold logged as %v, want a check event", log.Events[0])
	}
	if score.Terminal != TerminalShowdown {
		t.Errorf("terminal = %v", score.Terminal)
	}
}

func TestInsufficientBringIn(t *testing.T) {
	t.Parallel()
	sim := kuhnSim(true)
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: money.Cents(99), Cards: cards("Js")},
	}
	_, _, err := PlayLog(&sim, poker.Naive{}, NewTableStatic(newScript(), []int{1}, nil), inits, nil, 0)
	var bringIn *InsufficientBringInError
	if !errors.As(err, &bringIn) || bringIn.Seat != 1 {
		t.Fatalf("err = %v, want InsufficientBringInError for seat 1", err)
	}
}

func TestPlayErrorKeepsPartialLog(t *testing.T) {
	t.Parallel()
	sim := kuhnSim(true)
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	players := newScript(act(0, ClassRaise))
	log, _, err := PlayLog(&sim, poker.Naive{}, NewTableStatic(players, []int{1}, nil), inits, nil, 0)

	var playErr *PlayError
	if !errors.As(err, &playErr) {
		t.Fatalf("err = %v, want PlayError", err)
	}
	if len(log.Events) != 1 || log.Events[0].Act != act(0, ClassRaise) {
		t.Errorf("partial events = %v", log.Events)
	}
	if len(log.Rounds) != 1 || len(log.Rounds[0]) != 3 {
		t.Errorf("partial rounds = %v", log.Rounds)
	}
}

func TestEventWindows(t *testing.T) {
	t.Parallel()
	sim := NewSim(Leduc(2), ActionLimit{Raises: []uint32{2, 4}}, true)
	players := newScript(
		act(0, ClassCall), act(1, ClassRaise), act(0, ClassCall),
		act(0, ClassCall), act(1, ClassCall),
	)
	inits := []PlayerInit{
		{Seat: 0, Fund: dollars(10), Cards: cards("Ks")},
		{Seat: 1, Fund: dollars(10), Cards: cards("Js")},
	}
	board := cards("Qs")
	_, score, err := PlayLog(&sim, poker.Naive{}, NewTableStatic(players, sim.Profile.Rounds, board), inits, board, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := score.Fund(0); got != dollars(13) {
		t.Errorf("seat 0 fund = %s, want 13", got)
	}

	p0, p1 := PlayEvent(0, ClassCall), PlayEvent(1, ClassRaise)
	flop := TableEvent(board)
	want := [][]Event{
		{},
		{p0},
		{p0, p1},
		{p0, flop},
		{p1, p0, flop, p0},
	}
	if len(players.turns) != len(want) {
		t.Fatalf("%d turns, want %d", len(players.turns), len(want))
	}
	for i, turn := range players.turns {
		if !sameEvents(turn.Events, want[i]) {
			t.Errorf("turn %d window = %v, want %v", i, turn.Events, want[i])
		}
	}
	if players.turns[3].Round != 1 || players.turns[3].TargetRaise != dollars(1) {
		t.Errorf("round one turn = %+v", players.turns[3])
	}
}

func sameEvents(a, b []Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Act != b[i].Act || !slices.Equal(a[i].Cards, b[i].Cards) {
			return false
		}
	}
	return true
}

// Random legal play always terminates, conserves funds, and stays within
// the action bound of the profile.
func TestRandomPlayTerminates(t *testing.T) {
	t.Parallel()
	profiles := []Profile{
		Kuhn(2), Kuhn(3),
		Leduc(2), Leduc(5),
		Cochard(3),
		TexasLimit(2, money.Cents(50), dollars(1)),
		TexasLimit(6, money.Cents(50), dollars(1)),
	}
	for _, p := range profiles {
		for _, strict := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s-%d-strict=%t", p.ID, p.Players, strict), func(t *testing.T) {
				t.Parallel()
				var ac ActionClass = ActionKuhn{}
				if p.ID != "kuhn" {
					ac = NewActionLimit(*p.Limit)
				}
				sim := NewSim(p, ac, strict)
				bound := len(p.Rounds)*p.Players*(p.Limit.Caps+2) + len(p.Blinds)

				for seed := int64(0); seed < 200; seed++ {
					rng := randutil.New(seed)
					funds := make([]SeatFund, p.Players)
					for i := range funds {
						funds[i] = SeatFund{Seat: i, Fund: sim.BlindBiggest.Mul(1 + rng.Uint32N(20))}
					}
					players := &randomPlayers{rng: rng, ac: ac}
					log, score, err := SimulateHand(rng, &sim, poker.Naive{}, players, funds, int(seed)%p.Players)
					if err != nil {
						t.Fatalf("seed %d: %v", seed, err)
					}
					if n := len(log.Events); n > bound+len(p.Rounds) {
						t.Fatalf("seed %d: %d events over bound %d", seed, n, bound)
					}
					if len(score.Funds) != p.Players {
						t.Fatalf("seed %d: %d funds", seed, len(score.Funds))
					}
				}
			})
		}
	}
}

func TestSimulateHandDeterministic(t *testing.T) {
	t.Parallel()
	p := TexasLimit(4, money.Cents(50), dollars(1))
	sim := NewSim(p, NewActionLimit(*p.Limit), true)
	run := func() (Log, Score) {
		rng := randutil.New(1234)
		funds := []SeatFund{{0, dollars(20)}, {1, dollars(20)}, {2, dollars(20)}, {3, dollars(20)}}
		log, score, err := SimulateHand(rng, &sim, poker.Texas{}, &randomPlayers{rng: randutil.Split(rng), ac: sim.ActionClass}, funds, 1)
		if err != nil {
			t.Fatal(err)
		}
		return log, score
	}
	l1, s1 := run()
	l2, s2 := run()
	if !sameEvents(l1.Events, l2.Events) || !slices.Equal(l1.TableCards, l2.TableCards) {
		t.Error("same seed produced different logs")
	}
	if !slices.Equal(s1.Funds, s2.Funds) {
		t.Errorf("same seed produced funds %v and %v", s1.Funds, s2.Funds)
	}
	if len(l1.TableCards) != 5 || len(l1.Players[0].Cards) != 2 {
		t.Errorf("dealt %d table cards and %d private cards", len(l1.TableCards), len(l1.Players[0].Cards))
	}
}
