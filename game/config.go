package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/plus3/roids/physics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// WallConfig places a static box obstacle.
type WallConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	HalfW float64 `yaml:"half_w"`
	HalfH float64 `yaml:"half_h"`
}

// Config holds every gameplay constant. Ticks are simulation steps.
type Config struct {
	Seed uint64 `yaml:"seed"`

	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	WrapBuffer      float64 `yaml:"wrap_buffer"`
	OffscreenMargin float64 `yaml:"offscreen_margin"`
	CompactEvery    uint64  `yaml:"compact_every"`

	AsteroidEvery     float64 `yaml:"asteroid_every"`
	AsteroidMinRadius float64 `yaml:"asteroid_min_radius"`
	AsteroidMaxRadius float64 `yaml:"asteroid_max_radius"`
	AsteroidMinSpeed  float64 `yaml:"asteroid_min_speed"`
	AsteroidMaxSpeed  float64 `yaml:"asteroid_max_speed"`
	AimJitter         float64 `yaml:"aim_jitter"`

	SplitDivisor   float64 `yaml:"split_divisor"`
	SplitMinRadius float64 `yaml:"split_min_radius"`
	SplitSpread    float64 `yaml:"split_spread"`

	SpinnerEvery    float64 `yaml:"spinner_every"`
	SpinnerRadius   float64 `yaml:"spinner_radius"`
	SpinnerSpeed    float64 `yaml:"spinner_speed"`
	SpinnerCurve    float64 `yaml:"spinner_curve"`
	SpinnerAccel    float64 `yaml:"spinner_accel"`
	SpinnerCooldown int     `yaml:"spinner_cooldown"`

	PlayerHP       int     `yaml:"player_hp"`
	IframeMax      int     `yaml:"iframe_max"`
	PlayerSpeed    float64 `yaml:"player_speed"`
	PlayerRadius   float64 `yaml:"player_radius"`
	PlayerCooldown int     `yaml:"player_cooldown"`

	BulletSpeed       float64 `yaml:"bullet_speed"`
	BulletRadius      float64 `yaml:"bullet_radius"`
	BulletBounceLimit int     `yaml:"bullet_bounce_limit"`

	Walls []WallConfig `yaml:"walls"`
}

func DefaultConfig() Config {
	return Config{
		Seed: 1,

		Width:           1280,
		Height:          720,
		WrapBuffer:      4,
		OffscreenMargin: 1000,
		CompactEvery:    600,

		AsteroidEvery:     50,
		AsteroidMinRadius: 10,
		AsteroidMaxRadius: 100,
		AsteroidMinSpeed:  5,
		AsteroidMaxSpeed:  10,
		AimJitter:         22,

		SplitDivisor:   1.5,
		SplitMinRadius: 15,
		SplitSpread:    140,

		SpinnerEvery:    400,
		SpinnerRadius:   18,
		SpinnerSpeed:    3,
		SpinnerCurve:    1.5,
		SpinnerAccel:    0.01,
		SpinnerCooldown: 90,

		PlayerHP:       3,
		IframeMax:      20,
		PlayerSpeed:    5,
		PlayerRadius:   16,
		PlayerCooldown: 8,

		BulletSpeed:       12,
		BulletRadius:      4,
		BulletBounceLimit: 3,
	}
}

// LoadConfig reads YAML from r on top of DefaultConfig. Keys that are absent
// keep their default value. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.SplitDivisor <= 1:
		return fmt.Errorf("%w: split_divisor must be greater than 1, got %v", ErrInvalidConfig, c.SplitDivisor)
	case c.SplitMinRadius <= 0:
		return fmt.Errorf("%w: split_min_radius must be positive, got %v", ErrInvalidConfig, c.SplitMinRadius)
	case c.SplitSpread < 0:
		return fmt.Errorf("%w: negative split_spread %v", ErrInvalidConfig, c.SplitSpread)
	case c.AsteroidEvery <= 0 || c.SpinnerEvery <= 0:
		return fmt.Errorf("%w: spawn thresholds must be positive", ErrInvalidConfig)
	case c.AsteroidMinRadius <= 0 || c.AsteroidMaxRadius < c.AsteroidMinRadius:
		return fmt.Errorf("%w: asteroid radius range [%v, %v]", ErrInvalidConfig, c.AsteroidMinRadius, c.AsteroidMaxRadius)
	case c.AsteroidMaxSpeed < c.AsteroidMinSpeed:
		return fmt.Errorf("%w: asteroid speed range [%v, %v]", ErrInvalidConfig, c.AsteroidMinSpeed, c.AsteroidMaxSpeed)
	case c.PlayerHP <= 0:
		return fmt.Errorf("%w: player_hp must be positive", ErrInvalidConfig)
	case c.IframeMax < 0 || c.BulletBounceLimit < 0:
		return fmt.Errorf("%w: negative iframe_max or bullet_bounce_limit", ErrInvalidConfig)
	}

	for i, w := range c.Walls {
		if w.HalfW <= 0 || w.HalfH <= 0 {
			return fmt.Errorf("%w: wall %d has empty extents", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Bounds is the visible world rectangle.
func (c Config) Bounds() physics.Bounds {
	return physics.NewBounds(c.Width, c.Height)
}
