// Package vocab provides the node-text vocabulary used to assign integer
// ids to graph nodes.
package vocab

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lkraemer/flowgraph/pkg/errors"
)

// Vocabulary maps node text to a dense non-negative integer id. Texts not
// in the vocabulary map to the sentinel id equal to the vocabulary's size.
// Vocabularies are read-only once built and safe to share across
// concurrent conversions.
type Vocabulary map[string]int64

// ID returns the id for text, or the out-of-vocabulary sentinel.
func (v Vocabulary) ID(text string) int64 {
	if id, ok := v[text]; ok {
		return id
	}
	return v.Sentinel()
}

// Sentinel returns the out-of-vocabulary id: the vocabulary's size.
func (v Vocabulary) Sentinel() int64 {
	return int64(len(v))
}

// Load reads a vocabulary with one token per line; a token's id is its
// zero-based line ordinal. Blank lines are skipped without consuming an id.
func Load(r io.Reader) (Vocabulary, error) {
	v := Vocabulary{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		token := strings.TrimRight(sc.Text(), "\r")
		if token == "" {
			continue
		}
		if _, dup := v[token]; dup {
			return nil, errors.New(errors.ErrCodeInvalidVocab, "duplicate token %q", token)
		}
		v[token] = int64(len(v))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVocab, err, "read vocabulary")
	}
	return v, nil
}

// LoadFile reads a vocabulary file; see [Load] for the format.
func LoadFile(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "vocabulary %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
