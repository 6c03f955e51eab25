package carousel

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the file form of a carousel's tunable behavior.
//
//	transition:
//	  duration_ms: 777
//	  timing: ease-in-out(2.5)
//	autocenter_delay_ms: 300
type Config struct {
	Transition TransitionConfig `json:"transition" yaml:"transition"`

	// AutocenterDelayMS is the scroll quiet period before autocenter.
	// Zero disables autocenter.
	AutocenterDelayMS int `json:"autocenter_delay_ms" yaml:"autocenter_delay_ms" validate:"min=0,max=60000"`
}

// TransitionConfig configures programmatic transitions.
type TransitionConfig struct {
	// DurationMS is the transition length. Zero makes transitions instant.
	DurationMS int `json:"duration_ms" yaml:"duration_ms" validate:"min=0,max=60000"`

	// Timing names a timing function accepted by ParseTiming.
	Timing string `json:"timing" yaml:"timing" validate:"timing"`
}

// validate is the shared validator instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("timing", validateTiming); err != nil {
		panic(err)
	}
	return v
}

func validateTiming(fl validator.FieldLevel) bool {
	_, err := ParseTiming(fl.Field().String())
	return err == nil
}

// DefaultConfig returns an eased 777ms transition with a 300ms autocenter.
func DefaultConfig() Config {
	return Config{
		Transition: TransitionConfig{
			DurationMS: 777,
			Timing:     "ease-in-out(2.5)",
		},
		AutocenterDelayMS: 300,
	}
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Animation returns the transition animation, or nil for instant jumps.
func (c Config) Animation() (*Animation, error) {
	if c.Transition.DurationMS <= 0 {
		return nil, nil
	}
	timing, err := ParseTiming(c.Transition.Timing)
	if err != nil {
		return nil, err
	}
	return &Animation{
		Duration: time.Duration(c.Transition.DurationMS) * time.Millisecond,
		Timing:   timing,
	}, nil
}

// AutocenterDelay returns the autocenter quiet period, zero when disabled.
func (c Config) AutocenterDelay() time.Duration {
	return time.Duration(max(0, c.AutocenterDelayMS)) * time.Millisecond
}

// LoadConfig decodes and validates raw configuration data.
func LoadConfig(data []byte, codec Codec) (Config, error) {
	var cfg Config
	if err := codec.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", codec.ContentType(), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}
