package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	for name, got := range map[string]float64{
		"mean":       stats.Mean(),
		"variance":   stats.Variance(),
		"stddev":     stats.StdDev(),
		"stderr":     stats.StdError(),
		"median":     stats.Median(),
		"percentile": stats.Percentile(0.9),
		"seat mean":  stats.SeatMean(0),
	} {
		if got != 0 {
			t.Errorf("%s of empty stats = %f, want 0", name, got)
		}
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []HandResult{
		{NetBB: 1.0, Seat: 0},
		{NetBB: -2.0, Seat: 1, Showdown: true},
		{NetBB: 3.0, Seat: 2, Showdown: true},
		{NetBB: 0.0, Seat: 0, Dead: true},
		{NetBB: -1.0, Seat: 1},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if math.Abs(stats.Mean()-0.2) > 1e-9 {
		t.Errorf("Expected mean of 0.2, got %f", stats.Mean())
	}
	if math.Abs(stats.MBBPerHand()-200) > 1e-6 {
		t.Errorf("Expected 200 mbb/hand, got %f", stats.MBBPerHand())
	}
	// Sorted: -2, -1, 0, 1, 3
	if stats.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("wins = %d showdown, %d non-showdown", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.DeadHands != 1 {
		t.Errorf("Expected 1 dead hand, got %d", stats.DeadHands)
	}
	if len(stats.Seats) != 3 || stats.Seats[0].Hands != 2 || stats.Seats[2].Hands != 1 {
		t.Errorf("seats = %+v", stats.Seats)
	}
	if got := stats.SeatMean(1); math.Abs(got+1.5) > 1e-9 {
		t.Errorf("seat 1 mean = %f, want -1.5", got)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
		{1.5, 5.0},
	}
	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("interval [%f, %f] not centred on %f", low, high, stats.Mean())
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v})
	}
	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}
}

func TestStatistics_PotSizeTracking(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, PotBB: 10})
	stats.Add(HandResult{NetBB: 5.0, PotBB: 100})
	stats.Add(HandResult{NetBB: -1.0, PotBB: 2})

	if stats.MaxPotBB != 100 {
		t.Errorf("Expected max pot of 100bb, got %f", stats.MaxPotBB)
	}
	if stats.BigPots != 1 || stats.BigPotsBB != 5 {
		t.Errorf("big pots = %d worth %f", stats.BigPots, stats.BigPotsBB)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	for i, v := range []float64{1, -2, 4, 0.5, -3} {
		r := HandResult{NetBB: v, Seat: i % 3, Showdown: i%2 == 0, PotBB: float64(20 * i)}
		if i < 2 {
			a.Add(r)
		} else {
			b.Add(r)
		}
		all.Add(r)
	}
	a.Merge(b)

	if a.Hands != all.Hands || math.Abs(a.Mean()-all.Mean()) > 1e-9 || math.Abs(a.Variance()-all.Variance()) > 1e-9 {
		t.Errorf("merged = %d hands mean %f var %f, want %d %f %f",
			a.Hands, a.Mean(), a.Variance(), all.Hands, all.Mean(), all.Variance())
	}
	if a.BigPots != all.BigPots || a.MaxPotBB != all.MaxPotBB {
		t.Errorf("merged pots = %d max %f", a.BigPots, a.MaxPotBB)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
		want  string
	}{
		{
			name: "ledger mismatch",
			stats: Statistics{
				Hands: 1, SumBB: 1, Values: []float64{1},
				ShowdownBB: 0.5, NonShowdownBB: 0.6,
				Seats: []SeatStats{{Hands: 1}},
			},
			want: "ledger mismatch",
		},
		{
			name:  "invalid hands count",
			stats: Statistics{},
			want:  "invalid hands count",
		},
		{
			name: "values mismatch",
			stats: Statistics{
				Hands: 2, SumBB: 1, Values: []float64{1}, NonShowdownBB: 1,
			},
			want: "values array length",
		},
		{
			name: "too many wins",
			stats: Statistics{
				Hands: 2, SumBB: 2, Values: []float64{1, 1},
				ShowdownBB: 1, NonShowdownBB: 1, ShowdownWins: 2, NonShowdownWins: 2,
				Seats: []SeatStats{{Hands: 2}},
			},
			want: "exceeds total hands",
		},
		{
			name: "seat mismatch",
			stats: Statistics{
				Hands: 2, SumBB: 2, Values: []float64{1, 1},
				ShowdownBB: 1, NonShowdownBB: 1,
				Seats: []SeatStats{{Hands: 1}},
			},
			want: "seat hands total",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
