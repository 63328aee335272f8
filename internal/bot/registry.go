package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// Env is what a strategy may need to be built.
type Env struct {
	Rng      *rand.Rand
	Sim      *game.Sim
	Eval     poker.Evaluator
	Accuracy int
}

type factory func(Env) game.Players

var registry = map[string]factory{
	"fold": func(e Env) game.Players { return NewFold(e.Sim.ActionClass) },
	"call": func(e Env) game.Players { return NewCall(e.Sim.ActionClass) },
	"rand": func(e Env) game.Players { return NewRandom(e.Rng, e.Sim.ActionClass) },
	"kuhn": func(e Env) game.Players { return NewKuhn2(e.Rng, e.Sim.ActionClass) },
	"lex": func(e Env) game.Players {
		return NewLex(e.Rng, e.Sim.ActionClass, e.Eval, e.Sim.Profile, e.Accuracy)
	},
}

// New builds the named strategy.
func New(name string, env Env) (game.Players, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if env.Sim == nil {
		return nil, fmt.Errorf("bot %q: missing simulation settings", name)
	}
	if env.Rng == nil {
		return nil, fmt.Errorf("bot %q: missing RNG", name)
	}
	if env.Eval == nil {
		env.Eval = poker.Naive{}
	}
	return f(env), nil
}

// Names lists the registered strategies, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
