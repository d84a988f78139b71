package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
	"github.com/lkraemer/flowgraph/pkg/render"
	"github.com/lkraemer/flowgraph/pkg/transform"
)

// renderCommand creates the render command: graph → DOT → image.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		graph2dot  string
		timeoutSec int
	)

	cmd := &cobra.Command{
		Use:   "render [graph.pb]",
		Short: "Render a program graph to SVG or PNG via Graphviz",
		Long: `Render a program graph to an image.

The graph is first converted to DOT text by the graph2dot tool, then
rasterized with Graphviz. The output format follows the output file
extension (.svg or .png); the default is SVG next to the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if graph2dot != "" {
				cfg.Tools.Graph2DOT = graph2dot
			}
			if timeoutSec > 0 {
				cfg.Tools.TimeoutSeconds = timeoutSec
			}
			return c.runRender(cmd, cfg, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .png)")
	cmd.Flags().StringVar(&graph2dot, "graph2dot", "", "path of the graph2dot tool")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "tool timeout in seconds")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, cfg Config, input, output string) error {
	ctx := cmd.Context()

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	format := strings.ToLower(filepath.Ext(output))
	if format != ".svg" && format != ".png" {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported output extension %q (must be .svg or .png)", format)
	}

	wire, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", input)
		}
		return err
	}
	g, err := program.UnmarshalWire(wire)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "decode %s", input)
	}
	if err := g.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "validate %s", input)
	}

	prog := newProgress(c.Logger)

	conv := transform.New(c.transformConfig(cfg))
	dot, err := conv.DOT(ctx, g)
	if err != nil {
		return err
	}

	var img []byte
	switch format {
	case ".png":
		img, err = render.PNG(ctx, dot)
	default:
		img, err = render.SVG(ctx, dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}

	if err := os.WriteFile(output, img, 0644); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", output))
	return nil
}
