package transform

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout is the per-invocation bound applied when Config.Timeout is
// zero.
const DefaultTimeout = 300 * time.Second

// Config locates the external transform tools and sets invocation policy.
// Tool paths are resolved once at startup (by the CLI config layer or the
// embedding application) and passed in explicitly; the package keeps no
// global state.
type Config struct {
	// Graph2JSON is the path of the tool producing node-link JSON.
	Graph2JSON string

	// Graph2DOT is the path of the tool producing DOT text.
	Graph2DOT string

	// Timeout bounds each tool invocation. Applied per graph, also in
	// batched conversions. Defaults to [DefaultTimeout].
	Timeout time.Duration

	// Logger receives debug-level invocation records. Defaults to a
	// discarding logger.
	Logger *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Converter runs graph conversions against a fixed tool configuration.
// Converters are stateless apart from their Config; one Converter may be
// shared by any number of goroutines.
type Converter struct {
	cfg Config
}

// New creates a Converter, applying defaults for unset Config fields.
func New(cfg Config) *Converter {
	return &Converter{cfg: cfg.withDefaults()}
}
