package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lkraemer/flowgraph/pkg/errors"
)

func TestLoad(t *testing.T) {
	v, err := Load(strings.NewReader("add\nsub\nmul\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		text string
		want int64
	}{
		{"add", 0},
		{"sub", 1},
		{"mul", 2},
		{"div", 3}, // out of vocabulary
		{"", 3},
	}

	for _, tt := range tests {
		if got := v.ID(tt.text); got != tt.want {
			t.Errorf("ID(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}

	if got := v.Sentinel(); got != 3 {
		t.Errorf("Sentinel() = %d, want 3", got)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	v, err := Load(strings.NewReader("add\n\n\nsub\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := v.ID("sub"); got != 1 {
		t.Errorf("ID(sub) = %d, want 1", got)
	}
	if got := v.Sentinel(); got != 2 {
		t.Errorf("Sentinel() = %d, want 2", got)
	}
}

func TestLoadCRLF(t *testing.T) {
	v, err := Load(strings.NewReader("add\r\nsub\r\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := v.ID("add"); got != 0 {
		t.Errorf("ID(add) = %d, want 0", got)
	}
}

func TestLoadDuplicate(t *testing.T) {
	_, err := Load(strings.NewReader("add\nadd\n"))
	if err == nil {
		t.Fatal("Load() = nil error, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidVocab {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidVocab)
	}
}

func TestEmptyVocabulary(t *testing.T) {
	var v Vocabulary
	if got := v.ID("anything"); got != 0 {
		t.Errorf("ID() = %d, want sentinel 0", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	if err := os.WriteFile(path, []byte("br\nret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := v.ID("ret"); got != 1 {
		t.Errorf("ID(ret) = %d, want 1", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("LoadFile() = nil error, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeFileNotFound)
	}
}
