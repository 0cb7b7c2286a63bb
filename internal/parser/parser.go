package parser

import (
	"fmt"
	"io"

	"git.lost.host/meutraa/sightread/internal/game"
)

type Parser interface {
	Parse(r io.Reader) ([]*game.Note, error)
}

// ImportError means the file could not be read as a whole. No notes are
// returned alongside it.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("import failed: %v", e.Err)
	}
	return fmt.Sprintf("import %s failed: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
