package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gd_auction/internal/belief"
	"gd_auction/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds every setting of a simulation run.
// After LoadConfig parses the file, environment variables override selected values.
type Config struct {
	Market struct {
		Values  []int64 `yaml:"values"`  // buyer valuations, in pool order
		Costs   []int64 `yaml:"costs"`   // seller costs, in pool order
		Ceiling int64   `yaml:"ceiling"` // sentinel ask m
	} `yaml:"market"`

	Simulation struct {
		MovesPerRound int    `yaml:"moves_per_round"`
		Rounds        int    `yaml:"rounds"`
		Memory        int    `yaml:"memory"` // epochs; 0 is infinite
		Replacement   string `yaml:"replacement"`
		Seed          uint64 `yaml:"seed"` // 0 seeds from the clock
		CarryHistory  *bool  `yaml:"carry_history"`
	} `yaml:"simulation"`

	Belief struct {
		Degenerate string `yaml:"degenerate"`
	} `yaml:"belief"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// DefaultConfig returns the reference market: four buyers and four sellers
// over a 1000 ceiling, one 40-move round with infinite memory.
func DefaultConfig() *Config {
	var cfg Config
	cfg.Market.Values = []int64{225, 260, 280, 305}
	cfg.Market.Costs = []int64{140, 165, 190, 230}
	cfg.Market.Ceiling = 1000
	cfg.Simulation.MovesPerRound = 40
	cfg.Simulation.Rounds = 1
	cfg.Simulation.Replacement = domain.ReplaceNone.String()
	cfg.Belief.Degenerate = "neutral"
	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	return &cfg
}

// LoadConfig reads and parses the config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML on top of DefaultConfig, applies environment
// overrides and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	// Market
	if c.Market.Ceiling < 2 {
		return domain.NewConfigError("market.ceiling", fmt.Errorf("%w: %d < 2", domain.ErrOutOfRange, c.Market.Ceiling))
	}
	if len(c.Market.Values) != len(c.Market.Costs) {
		return domain.NewConfigError("market", fmt.Errorf("%w: %d buyers, %d sellers",
			domain.ErrMismatchedPools, len(c.Market.Values), len(c.Market.Costs)))
	}
	if err := checkPrices("market.values", c.Market.Values, c.Market.Ceiling); err != nil {
		return err
	}
	if err := checkPrices("market.costs", c.Market.Costs, c.Market.Ceiling); err != nil {
		return err
	}

	// Simulation
	if c.Simulation.Rounds < 1 {
		return domain.NewConfigError("simulation.rounds", fmt.Errorf("%w: must be at least 1", domain.ErrOutOfRange))
	}
	if c.Simulation.MovesPerRound < 1 {
		return domain.NewConfigError("simulation.moves_per_round", fmt.Errorf("%w: must be at least 1", domain.ErrOutOfRange))
	}
	if c.Simulation.Memory < 0 {
		return domain.NewConfigError("simulation.memory", fmt.Errorf("%w: must not be negative", domain.ErrOutOfRange))
	}
	if _, err := domain.ParseReplacementPolicy(c.Simulation.Replacement); err != nil {
		return domain.NewConfigError("simulation.replacement", err)
	}

	// Belief
	if _, err := belief.ParseDegeneratePolicy(c.Belief.Degenerate); err != nil {
		return domain.NewConfigError("belief.degenerate", err)
	}

	// Logging
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return domain.NewConfigError("logging.level", err)
	}

	return nil
}

func checkPrices(field string, prices []int64, ceiling int64) error {
	for i, p := range prices {
		if p < 0 || p >= ceiling {
			return domain.NewConfigError(fmt.Sprintf("%s[%d]", field, i),
				fmt.Errorf("%w: %d not in [0, %d)", domain.ErrOutOfRange, p, ceiling))
		}
	}
	return nil
}

// ReplacementPolicy returns the parsed replacement policy. Call after Validate.
func (c *Config) ReplacementPolicy() domain.ReplacementPolicy {
	p, _ := domain.ParseReplacementPolicy(c.Simulation.Replacement)
	return p
}

// DegeneratePolicy returns the parsed degenerate-belief policy. Call after Validate.
func (c *Config) DegeneratePolicy() belief.DegeneratePolicy {
	p, _ := belief.ParseDegeneratePolicy(c.Belief.Degenerate)
	return p
}

// CarriesHistory reports whether the ledger persists across rounds. Rounds are
// independent unless carry_history is explicitly true.
func (c *Config) CarriesHistory() bool {
	return c.Simulation.CarryHistory != nil && *c.Simulation.CarryHistory
}

// overrideWithEnv overrides config values when the environment sets them.
func overrideWithEnv(cfg *Config) error {
	if v := os.Getenv("GDA_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return domain.NewConfigError("GDA_SEED", err)
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv("GDA_ROUNDS"); v != "" {
		rounds, err := strconv.Atoi(v)
		if err != nil {
			return domain.NewConfigError("GDA_ROUNDS", err)
		}
		cfg.Simulation.Rounds = rounds
	}
	if v := os.Getenv("GDA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}
