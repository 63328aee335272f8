package simulator

import (
	"fmt"
	"io"
	"time"
)

// PrintSummary writes a per-seat summary of a benchmark. labels names the
// strategy of each seat and may be shorter than the seat count.
func PrintSummary(w io.Writer, r *Report, labels []string) {
	fmt.Fprintf(w, "\n=== BENCH RESULTS ===\n")
	fmt.Fprintf(w, "Hands played: %d in %s (%.0f hands/s)\n", r.Hands, r.Elapsed.Round(time.Millisecond), r.HandsPerSecond())

	fmt.Fprintf(w, "\n=== SEAT RATES ===\n")
	for seat := range r.Seats {
		s := &r.Seats[seat]
		if s.Hands == 0 {
			continue
		}
		label := "?"
		if seat < len(labels) {
			label = labels[seat]
		}
		mbb, ci := r.MBB(seat)
		fmt.Fprintf(w, "Seat %d (%s): %.1f ± %.1f mbb/hand, median %.2f bb, P5=%.2f P95=%.2f\n",
			seat, label, mbb, ci, s.Median(), s.Percentile(0.05), s.Percentile(0.95))
	}

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	for seat := range r.Seats {
		s := &r.Seats[seat]
		if s.Hands == 0 {
			continue
		}
		fmt.Fprintf(w, "Seat %d: showdown %.3f bb/hand, non-showdown %.3f bb/hand, %d dead, max pot %.1f bb\n",
			seat, s.ShowdownBB/float64(s.Hands), s.NonShowdownBB/float64(s.Hands), s.DeadHands, s.MaxPotBB)
	}

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	for seat := range r.Seats {
		s := &r.Seats[seat]
		for pos, ps := range s.Seats {
			if ps.Hands > 0 {
				fmt.Fprintf(w, "Seat %d, button+%d: %d hands, %.3f bb/hand\n", seat, pos, ps.Hands, ps.Mean())
			}
		}
	}
}
