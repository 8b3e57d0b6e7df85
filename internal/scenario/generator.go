package scenario

import (
	"math/rand"

	"github.com/edgedlt/beat"
)

// GeneratorConfig configures schedule generation.
type GeneratorConfig struct {
	// MinRate is the lowest tick rate to generate.
	MinRate float64

	// MaxRate is the highest tick rate to generate.
	MaxRate float64

	// MinSeconds is the shortest run to generate.
	MinSeconds int

	// MaxSeconds is the longest run to generate.
	MaxSeconds int

	// IncludeStalls enables schedules with injected stalls.
	IncludeStalls bool

	// Seed for reproducible generation (0 = random).
	Seed int64
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinRate:       4,
		MaxRate:       240,
		MinSeconds:    2,
		MaxSeconds:    6,
		IncludeStalls: true,
		Seed:          0,
	}
}

// Generator generates random schedules.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a new schedule generator.
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate generates a single random schedule. Costs stay inside the
// envelope ValidateSchedule accepts, so every generated schedule runs.
func (g *Generator) Generate() Schedule {
	rate := g.config.MinRate + g.rng.Float64()*(g.config.MaxRate-g.config.MinRate)
	target := beat.Sec(1 / rate)

	limits := []beat.Limit{beat.Always, beat.Once, beat.Never}
	limit := limits[g.rng.Intn(len(limits))]

	seconds := g.config.MinSeconds + g.rng.Intn(g.config.MaxSeconds-g.config.MinSeconds+1)

	schedule := Schedule{
		Rate:       rate,
		Limit:      limit,
		UpdateCost: target.Mul(g.rng.Float64() * 0.6),
		RenderCost: target.Mul(g.rng.Float64() * 2),
		ReadStep:   target.Div(256),
		Seconds:    seconds,
	}

	// Add a random stall (30% chance)
	if g.config.IncludeStalls && g.rng.Float64() < 0.3 {
		schedule.Stalls = map[int]beat.Sec{
			1 + g.rng.Intn(seconds): target.Mul(1 + g.rng.Float64()*49),
		}
	}

	return schedule
}

// GenerateN generates n random schedules.
func (g *Generator) GenerateN(n int) []Schedule {
	schedules := make([]Schedule, n)
	for i := range schedules {
		schedules[i] = g.Generate()
	}
	return schedules
}

// GenerateComprehensive generates a comprehensive suite: hand-picked
// edge cases plus random schedules.
func GenerateComprehensive(randomCount int) []Schedule {
	schedules := []Schedule{
		// Minimum viable: one tick per second
		{
			Rate:     1,
			Limit:    beat.Always,
			ReadStep: 1.0 / 256,
			Seconds:  2,
		},

		// High rate with rendering off
		{
			Rate:       240,
			Limit:      beat.Never,
			UpdateCost: beat.Sec(1.0 / 240 / 8),
			ReadStep:   beat.Sec(1.0 / 240 / 256),
			Seconds:    3,
		},

		// A two-second stall forcing a catch-up burst
		{
			Rate:     30,
			Limit:    beat.Always,
			ReadStep: beat.Sec(1.0 / 30 / 256),
			Seconds:  3,
			Stalls:   map[int]beat.Sec{1: 2},
		},

		// Background pacing: one frame per cycle
		{
			Rate:       60,
			Limit:      beat.Once,
			UpdateCost: beat.Sec(1.0 / 60 / 4),
			ReadStep:   beat.Sec(1.0 / 60 / 256),
			Seconds:    3,
		},

		// Updates near the drain limit
		{
			Rate:       8,
			Limit:      beat.Always,
			UpdateCost: 0.09,
			ReadStep:   1.0 / 8 / 256,
			Seconds:    2,
		},

		// Frames several targets long
		{
			Rate:       12,
			Limit:      beat.Always,
			RenderCost: 0.25,
			ReadStep:   1.0 / 12 / 256,
			Seconds:    3,
		},
	}

	gen := NewGenerator(DefaultGeneratorConfig())
	return append(schedules, gen.GenerateN(randomCount)...)
}
