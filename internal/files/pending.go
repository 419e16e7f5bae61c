package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// Pending is an output file staged next to its final path. Readers of the
// final path see either the previous file or the complete new one.
type Pending struct {
	path string
	tmp  *os.File
	done bool
}

// Create stages a new file for path with the given permission bits.
func Create(path string, perm os.FileMode) (*Pending, error) {
	if err := RejectLinks(path); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".glosst-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("chmod staged file: %w", err)
	}
	return &Pending{path: path, tmp: tmp}, nil
}

func (p *Pending) Write(b []byte) (int, error) {
	return p.tmp.Write(b)
}

// Commit flushes the staged file and moves it over the final path.
func (p *Pending) Commit() error {
	if p.done {
		return fmt.Errorf("%s already finished", p.path)
	}
	p.done = true
	name := p.tmp.Name()
	if err := p.tmp.Sync(); err != nil {
		p.tmp.Close()
		os.Remove(name)
		return fmt.Errorf("sync staged file: %w", err)
	}
	if err := p.tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close staged file: %w", err)
	}
	if err := replace(name, p.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("move staged file to %s: %w", p.path, err)
	}
	return nil
}

// Discard drops the staged file. It is a no-op after Commit.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	p.tmp.Close()
	os.Remove(p.tmp.Name())
}

// WriteFile stages data for path and commits it in one step.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	p, err := Create(path, perm)
	if err != nil {
		return err
	}
	if _, err := p.Write(data); err != nil {
		p.Discard()
		return fmt.Errorf("write staged file: %w", err)
	}
	return p.Commit()
}
