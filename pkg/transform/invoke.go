package transform

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
)

// stdinFormatArg tells the transform tool its stdin carries the binary wire
// form.
const stdinFormatArg = "--stdin_fmt=pb"

// genericTransformMessage replaces stderr diagnostics that are not valid
// text. The caller always receives an error; a broken diagnostic must never
// become the reported cause.
const genericTransformMessage = "unknown error in graph transformation"

// run invokes bin with the wire-encoded graph on stdin and returns its
// stdout bytes. It spawns one OS process per call and shares no state
// between calls.
//
// Outcome classification:
//   - the timeout elapses: TIMEOUT, and the child process is killed.
//   - non-zero exit: TRANSFORM_FAILED carrying the stderr text, or the
//     generic message when stderr is not valid UTF-8.
//   - exit 0: stdout bytes, stderr discarded.
func (c *Converter) run(ctx context.Context, bin string, g *program.Graph) ([]byte, error) {
	if bin == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transform tool path not configured")
	}

	rctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(rctx, bin, stdinFormatArg)
	cmd.Stdin = bytes.NewReader(g.MarshalWire())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	switch {
	case rctx.Err() == context.DeadlineExceeded:
		// CommandContext has killed and reaped the child at this point.
		return nil, errors.Wrap(errors.ErrCodeTimeout, rctx.Err(),
			"%s did not finish within %s", filepath.Base(bin), c.cfg.Timeout)
	case rctx.Err() != nil:
		return nil, rctx.Err()
	case err != nil:
		return nil, errors.New(errors.ErrCodeTransform, "%s", diagnostic(stderr.Bytes()))
	}

	c.cfg.Logger.Debug("ran graph transform",
		"tool", filepath.Base(bin),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"bytes", stdout.Len(),
		"duration", time.Since(start).Round(time.Millisecond))

	return stdout.Bytes(), nil
}

// diagnostic extracts a human-readable message from stderr output, falling
// back to the generic message when the bytes are not decodable text.
func diagnostic(stderr []byte) string {
	if !utf8.Valid(stderr) {
		return genericTransformMessage
	}
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return genericTransformMessage
	}
	return msg
}
