package receipt

import (
	"fmt"
	"os"
	"path/filepath"
)

// Renderer writes a formatted receipt to some output sink.
type Renderer interface {
	// Render persists the receipt. Render failures never unwind a settlement;
	// callers log and move on.
	Render(r *Receipt) error
}

// --- File Renderer (writes plain-text receipts into a directory) ---

type fileRenderer struct {
	dir string
}

// NewFileRenderer creates a renderer that writes one text file per receipt.
func NewFileRenderer(dir string) Renderer {
	return &fileRenderer{dir: dir}
}

func (f *fileRenderer) Render(r *Receipt) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("receipt: failed to create output dir %s: %w", f.dir, err)
	}

	name := fmt.Sprintf("receipt-%s-%s.txt", r.IssuedAt.Format("20060102-150405"), r.Number)
	path := filepath.Join(f.dir, name)

	if err := os.WriteFile(path, []byte(r.Format()), 0o644); err != nil {
		return fmt.Errorf("receipt: failed to write %s: %w", path, err)
	}
	return nil
}

// --- Null Renderer (no-op, used when receipts are disabled) ---

type nullRenderer struct{}

// NewNullRenderer creates a no-op renderer.
func NewNullRenderer() Renderer {
	return &nullRenderer{}
}

func (nullRenderer) Render(r *Receipt) error {
	return nil
}
