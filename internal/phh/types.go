package phh

// HandHistory represents a single poker hand encoded in PHH format.
// Amounts are in cents.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	SmallBet          int      `toml:"small_bet,omitempty"`
	BigBet            int      `toml:"big_bet,omitempty"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`

	// User defined fields carry what PHH has no field for.
	Profile  string `toml:"_profile,omitempty"`
	Terminal string `toml:"_terminal,omitempty"`
}
