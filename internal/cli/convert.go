package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/cache"
	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
	"github.com/lkraemer/flowgraph/pkg/transform"
	"github.com/lkraemer/flowgraph/pkg/vocab"
)

// Output formats for the convert command.
const (
	FormatJSON       = "json"
	FormatDOT        = "dot"
	FormatMultigraph = "multigraph"
	FormatTensor     = "tensor"
)

// ValidFormats is the set of supported conversion targets.
var ValidFormats = map[string]bool{
	FormatJSON:       true,
	FormatDOT:        true,
	FormatMultigraph: true,
	FormatTensor:     true,
}

// ValidateFormat checks that a conversion target is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, multigraph, tensor)", format)
	}
	return nil
}

// convertOptions collects the convert command's flag and config values.
type convertOptions struct {
	format    string
	vocabPath string
	output    string
	jobs      int
	chunk     int
	noCache   bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		opts       convertOptions
		graph2json string
		graph2dot  string
		timeoutSec int
	)

	cmd := &cobra.Command{
		Use:   "convert --to <format> [graph.pb ...]",
		Short: "Convert program graphs to model-ready representations",
		Long: `Convert binary program graph files to a target representation.

Formats:
  json        node-link JSON produced by the graph2json tool
  dot         DOT graph description produced by the graph2dot tool
  multigraph  directed multigraph built from the node-link form, with
              ordered node and edge views (JSON-encoded)
  tensor      heterogeneous tensor graph computed in-process
              (JSON-encoded); pass --vocab to attach per-node
              vocabulary ids

With --jobs > 1 conversions run on a worker pool; --chunk bounds how many
inputs are in flight at once. Results are always written in input order.
Subprocess-backed conversions are cached per graph; use --no-cache to
bypass the cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateFormat(opts.format); err != nil {
				return err
			}

			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if graph2json != "" {
				cfg.Tools.Graph2JSON = graph2json
			}
			if graph2dot != "" {
				cfg.Tools.Graph2DOT = graph2dot
			}
			if timeoutSec > 0 {
				cfg.Tools.TimeoutSeconds = timeoutSec
			}
			if opts.jobs == 0 {
				opts.jobs = cfg.Convert.Jobs
			}
			if opts.chunk == 0 {
				opts.chunk = cfg.Convert.Chunk
			}

			return c.runConvert(cmd, cfg, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "to", "", "target format: json, dot, multigraph, tensor (required)")
	cmd.Flags().StringVar(&opts.vocabPath, "vocab", "", "vocabulary file for tensor conversion")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory, or - for stdout (single input)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "worker count for batched conversion (default serial)")
	cmd.Flags().IntVar(&opts.chunk, "chunk", 0, "inputs in flight per chunk (default: all)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().StringVar(&graph2json, "graph2json", "", "path of the graph2json tool")
	cmd.Flags().StringVar(&graph2dot, "graph2dot", "", "path of the graph2dot tool")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "per-graph tool timeout in seconds")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// runConvert drives the batched conversion of the given graph files.
func (c *CLI) runConvert(cmd *cobra.Command, cfg Config, opts convertOptions, inputs []string) error {
	ctx := cmd.Context()
	logger := c.Logger.With("run", shortRunID())

	if opts.output == "-" && len(inputs) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output requires a single input file")
	}
	if opts.output != "" && opts.output != "-" {
		if err := os.MkdirAll(opts.output, 0755); err != nil {
			return err
		}
	}

	var v vocab.Vocabulary
	if opts.vocabPath != "" {
		if opts.format != FormatTensor {
			return errors.New(errors.ErrCodeInvalidInput, "--vocab only applies to tensor conversion")
		}
		var err error
		if v, err = vocab.LoadFile(opts.vocabPath); err != nil {
			return err
		}
		logger.Debug("loaded vocabulary", "tokens", len(v), "path", opts.vocabPath)
	}

	store, err := newCache(cmd, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	conv := transform.New(c.transformConfig(cfg))

	var ex batch.Executor
	if opts.jobs > 1 {
		pool := batch.NewPool(opts.jobs)
		defer pool.Close()
		ex = pool
		logger.Debug("using worker pool", "jobs", opts.jobs, "chunk", opts.chunk)
	}

	cc := &converter{
		ctx:    ctx,
		conv:   conv,
		cache:  store,
		ttl:    cacheTTL(cfg),
		opts:   opts,
		vocab:  v,
		logger: logger,
	}

	prog := newProgress(logger)
	failed := 0
	done := 0
	i := 0
	for out, err := range batch.MapSlice(cc.convertFile, inputs, ex, opts.chunk) {
		if err != nil {
			failed++
			logger.Error("conversion failed", "input", inputs[i], "err", errors.UserMessage(err))
		} else {
			done++
			if out != "" {
				logger.Debug("wrote output", "path", out)
			}
		}
		i++
	}
	prog.done(fmt.Sprintf("Converted %d of %d graphs", done, len(inputs)))

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(inputs))
	}
	return nil
}

// converter holds per-run state shared by all convertFile calls. Everything
// here is read-only during the run, so the worker pool may call convertFile
// concurrently.
type converter struct {
	ctx    context.Context
	conv   *transform.Converter
	cache  cache.Cache
	ttl    time.Duration
	opts   convertOptions
	vocab  vocab.Vocabulary
	logger *log.Logger
}

// convertFile converts one graph file and writes the result. It returns the
// output path, or "" when writing to stdout.
func (cc *converter) convertFile(path string) (string, error) {
	wire, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
		}
		return "", err
	}

	g, err := program.UnmarshalWire(wire)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	if err := g.Validate(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidGraph, err, "validate %s", path)
	}

	data, err := cc.convertGraph(g, wire)
	if err != nil {
		return "", err
	}

	if cc.opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return "", err
	}
	out := cc.outputPath(path)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", err
	}
	return out, nil
}

// convertGraph produces the target representation bytes, consulting the
// artifact cache for subprocess-backed formats.
func (cc *converter) convertGraph(g *program.Graph, wire []byte) ([]byte, error) {
	if cc.opts.format == FormatTensor {
		h := transform.Hetero(g, cc.vocab)
		return json.MarshalIndent(h, "", "  ")
	}

	key := cache.ArtifactKey(cache.Hash(wire), cc.opts.format)
	if data, hit, err := cc.cache.Get(cc.ctx, key); err == nil && hit {
		cc.logger.Debug("cache hit", "format", cc.opts.format)
		return data, nil
	}

	var data []byte
	switch cc.opts.format {
	case FormatJSON:
		nl, err := cc.conv.JSON(cc.ctx, g)
		if err != nil {
			return nil, err
		}
		if data, err = json.MarshalIndent(nl, "", "  "); err != nil {
			return nil, err
		}
	case FormatDOT:
		dot, err := cc.conv.DOT(cc.ctx, g)
		if err != nil {
			return nil, err
		}
		data = []byte(dot)
	case FormatMultigraph:
		m, err := cc.conv.Multigraph(cc.ctx, g)
		if err != nil {
			return nil, err
		}
		if data, err = json.MarshalIndent(m, "", "  "); err != nil {
			return nil, err
		}
	}

	ttl := cc.ttl
	if ttl == 0 {
		ttl = cache.TTLArtifact
	}
	_ = cc.cache.Set(cc.ctx, key, data, ttl)
	return data, nil
}

// outputPath places the result next to the input, or under the output
// directory when set, swapping the extension for the target format's.
func (cc *converter) outputPath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	ext := "." + cc.opts.format
	switch cc.opts.format {
	case FormatTensor:
		ext = ".tensor.json"
	case FormatMultigraph:
		ext = ".multigraph.json"
	}
	dir := filepath.Dir(input)
	if cc.opts.output != "" {
		dir = cc.opts.output
	}
	return filepath.Join(dir, base+ext)
}

// shortRunID returns a compact id correlating all log lines of one run.
func shortRunID() string {
	return uuid.NewString()[:8]
}
