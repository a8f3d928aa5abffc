package rules

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Provider hands out the current rule Set and supports hot reload from
// the rule file. Readers get a consistent snapshot; an in-flight
// analysis keeps using the Set it started with.
type Provider struct {
	mu   sync.RWMutex
	set  *Set
	path string
}

// NewProvider loads the rule file at path (creating it with defaults if
// absent) and returns a Provider serving the compiled set.
func NewProvider(path string) (*Provider, error) {
	set, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Provider{set: set, path: path}, nil
}

// StaticProvider wraps a fixed Set; used by the local analyze command
// where no rule file watching is wanted.
func StaticProvider(set *Set) *Provider {
	return &Provider{set: set}
}

// Current returns the active rule set.
func (p *Provider) Current() *Set {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.set
}

// Reload re-reads the rule file. On any error the previous set stays
// active, so a half-saved edit never takes down classification.
func (p *Provider) Reload() error {
	set, err := Load(p.path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.set = set
	p.mu.Unlock()
	return nil
}

// Watch follows the rule file with OS-level notifications and reloads
// on every write. Blocks until the context is cancelled. Editors that
// replace the file (rename + create) are handled by watching the
// parent directory.
func (p *Provider) Watch(ctx context.Context) error {
	if p.path == "" {
		<-ctx.Done()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dir := filepath.Dir(p.path)
	if err := fsw.Add(dir); err != nil {
		return err
	}

	abs, _ := filepath.Abs(p.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			evAbs, _ := filepath.Abs(ev.Name)
			if evAbs != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := p.Reload(); err != nil {
				log.Printf("rules: reload failed, keeping previous set: %v", err)
				continue
			}
			log.Printf("rules: reloaded %s (%d rules)", p.path, len(p.Current().Rules()))
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("rules: watch error: %v", err)
		}
	}
}
