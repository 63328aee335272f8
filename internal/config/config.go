// Package config loads the HCL description of a simulation run.
package config

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/money"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

// Config is a complete run configuration.
type Config struct {
	Game   *GameConfig   `hcl:"game,block"`
	Run    *RunConfig    `hcl:"run,block"`
	Seats  []SeatConfig  `hcl:"seat,block"`
	Bots   string        `hcl:"bots,optional"`
	Replay *ReplayConfig `hcl:"replay,block"`
}

// GameConfig selects the profile and its table rules.
type GameConfig struct {
	Profile string   `hcl:"profile,label"`
	Players int      `hcl:"players,optional"`
	Blinds  []string `hcl:"blinds,optional"`
	Strict  bool     `hcl:"strict,optional"`
	// Accuracy is the Monte Carlo sample count of strength based bots.
	Accuracy int `hcl:"accuracy,optional"`
}

// RunConfig controls how many hands are played and how.
type RunConfig struct {
	Hands    int    `hcl:"hands,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	Fund     string `hcl:"fund,optional"`
	First    int    `hcl:"first,optional"`
	GamesMax int    `hcl:"games_max,optional"`
}

// SeatConfig assigns a bot to one seat. Seats are labelled by index.
type SeatConfig struct {
	Index string `hcl:"index,label"`
	Bot   string `hcl:"bot"`
}

// ReplayConfig describes where training samples go. An empty RedisAddr
// keeps them in memory.
type ReplayConfig struct {
	Capacity  int    `hcl:"capacity,optional"`
	RedisAddr string `hcl:"redis_addr,optional"`
	Password  string `hcl:"password,optional"`
	DB        int    `hcl:"db,optional"`
	Namespace string `hcl:"namespace,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameConfig{Profile: "leduc"}
	}
	if c.Game.Players == 0 {
		c.Game.Players = 2
	}
	if c.Game.Accuracy == 0 {
		c.Game.Accuracy = bot.DefaultAccuracy
	}

	if c.Run == nil {
		c.Run = &RunConfig{Seed: 1}
	}
	if c.Run.Hands == 0 {
		c.Run.Hands = 1000
	}
	if c.Run.Workers == 0 {
		c.Run.Workers = 4
	}
	if c.Run.Fund == "" {
		c.Run.Fund = "100"
	}

	if c.Bots == "" {
		c.Bots = "rand"
	}

	if c.Replay == nil {
		c.Replay = &ReplayConfig{}
	}
	if c.Replay.Capacity == 0 {
		c.Replay.Capacity = 10000
	}
	if c.Replay.Namespace == "" {
		c.Replay.Namespace = "pokersim"
	}
}

// Validate checks the configuration can be played.
func (c *Config) Validate() error {
	if _, err := c.Profile(); err != nil {
		return err
	}
	fund, err := money.Parse(c.Run.Fund)
	if err != nil {
		return fmt.Errorf("run: fund: %w", err)
	}
	if fund == 0 {
		return fmt.Errorf("run: fund must be positive")
	}
	if c.Run.Hands < 1 {
		return fmt.Errorf("run: hands must be positive, got %d", c.Run.Hands)
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("run: workers must be positive, got %d", c.Run.Workers)
	}
	if c.Run.First < 0 || c.Run.First >= c.Game.Players {
		return fmt.Errorf("run: first seat %d out of range [0, %d)", c.Run.First, c.Game.Players)
	}
	if c.Run.GamesMax < 0 {
		return fmt.Errorf("run: games_max must not be negative")
	}

	if err := checkBot(c.Bots); err != nil {
		return err
	}
	seen := make(map[int]bool, len(c.Seats))
	for _, s := range c.Seats {
		i, err := seatIndex(s.Index, c.Game.Players)
		if err != nil {
			return err
		}
		if seen[i] {
			return fmt.Errorf("seat %d: assigned twice", i)
		}
		seen[i] = true
		if err := checkBot(s.Bot); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
	}

	if c.Replay.Capacity < 1 {
		return fmt.Errorf("replay: capacity must be positive, got %d", c.Replay.Capacity)
	}
	return nil
}

func checkBot(name string) error {
	if !slices.Contains(bot.Names(), strings.ToLower(name)) {
		return fmt.Errorf("unknown bot %q (available: %s)", name, strings.Join(bot.Names(), ", "))
	}
	return nil
}

func seatIndex(label string, players int) (int, error) {
	i, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("seat %q: label must be a seat number", label)
	}
	if i < 0 || i >= players {
		return 0, fmt.Errorf("seat %d: out of range [0, %d)", i, players)
	}
	return i, nil
}

// Profile builds the configured profile, with blinds overridden when set.
func (c *Config) Profile() (game.Profile, error) {
	p, err := game.LookupProfile(c.Game.Profile, c.Game.Players)
	if err != nil {
		return game.Profile{}, fmt.Errorf("game: %w", err)
	}
	if len(c.Game.Blinds) == 0 {
		return p, nil
	}
	blinds := make([]money.Money, len(c.Game.Blinds))
	for i, s := range c.Game.Blinds {
		b, err := money.Parse(s)
		if err != nil {
			return game.Profile{}, fmt.Errorf("game: blind %d: %w", i, err)
		}
		blinds[i] = b
	}
	p.Blinds = blinds
	if err := p.Validate(); err != nil {
		return game.Profile{}, fmt.Errorf("game: %w", err)
	}
	return p, nil
}

// Sim builds the rules of the configured game.
func (c *Config) Sim() (game.Sim, error) {
	p, err := c.Profile()
	if err != nil {
		return game.Sim{}, err
	}
	var ac game.ActionClass = game.ActionKuhn{}
	if p.ID != "kuhn" {
		ac = game.NewActionLimit(*p.Limit)
	}
	sim := game.NewSim(p, ac, c.Game.Strict)
	if len(c.Game.Blinds) > 0 {
		sim.SetBlinds(p.Blinds)
	}
	return sim, nil
}

// Fund returns the starting fund of every seat.
func (c *Config) Fund() money.Money {
	fund, _ := money.Parse(c.Run.Fund)
	return fund
}

// Funds seats every player with the starting fund.
func (c *Config) Funds() []game.SeatFund {
	funds := make([]game.SeatFund, c.Game.Players)
	for i := range funds {
		funds[i] = game.SeatFund{Seat: i, Fund: c.Fund()}
	}
	return funds
}

// BotNames returns the strategy of each seat.
func (c *Config) BotNames() []string {
	names := make([]string, c.Game.Players)
	for i := range names {
		names[i] = c.Bots
	}
	for _, s := range c.Seats {
		if i, err := seatIndex(s.Index, c.Game.Players); err == nil {
			names[i] = s.Bot
		}
	}
	return names
}

// Players builds one bot per seat, each with its own RNG split from rng.
func (c *Config) Players(rng *rand.Rand, sim *game.Sim, eval poker.Evaluator) (*bot.Seats, error) {
	seats := bot.NewSeats()
	for i, name := range c.BotNames() {
		p, err := bot.New(name, bot.Env{
			Rng:      randutil.Split(rng),
			Sim:      sim,
			Eval:     eval,
			Accuracy: c.Game.Accuracy,
		})
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		seats.Assign(p, i)
	}
	return seats, nil
}
