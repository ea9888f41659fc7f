package reflection

import "time"

// Purpose is the event-log label for reflection requests.
const Purpose = "reflection"

// Config holds reflection generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for reflection generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.4,
		Timeout:     20 * time.Second,
	}
}
