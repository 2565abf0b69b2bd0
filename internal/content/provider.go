package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"structcheck/internal/classify"
	"structcheck/internal/logging"
)

// Provider is the static content collaborator consumed by the flow
// controllers and the presentation layer. It serves a validated catalog and
// supports live replacement when an external catalog file changes.
type Provider struct {
	mu      sync.RWMutex
	catalog *Catalog
	path    string // empty when serving the embedded catalog
}

// NewProvider serves the embedded default catalog.
func NewProvider() (*Provider, error) {
	c, err := LoadDefault()
	if err != nil {
		return nil, err
	}
	return &Provider{catalog: c}, nil
}

// NewProviderFromFile serves an external catalog file.
func NewProviderFromFile(path string) (*Provider, error) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Provider{catalog: c, path: path}, nil
}

// QuestionCount returns the number of diagnosis questions.
func (p *Provider) QuestionCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.catalog.Questions)
}

// Question returns question i.
func (p *Provider) Question(i int) (Question, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.catalog.Questions) {
		return Question{}, fmt.Errorf("question index %d out of range [0,%d)", i, len(p.catalog.Questions))
	}
	return p.catalog.Questions[i], nil
}

// OptionCount returns how many options question i offers, or 0 when i is
// out of range.
func (p *Provider) OptionCount(i int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.catalog.Questions) {
		return 0
	}
	return len(p.catalog.Questions[i].Options)
}

// Category resolves a category reference to its display data.
func (p *Provider) Category(ref string) (Category, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.catalog.Categories {
		if c.ID == ref {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown category %q", ref)
}

// OwnerTypeContent returns the result copy for one owner-type label.
func (p *Provider) OwnerTypeContent(label classify.OwnerType) (OwnerTypeContent, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.catalog.OwnerTypes[string(label)]
	if !ok {
		return OwnerTypeContent{}, fmt.Errorf("no content for owner type %q", label)
	}
	return c, nil
}

// TrackerTask returns the prompt for day d (1-based).
func (p *Provider) TrackerTask(day int) (TrackerTask, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if day < 1 || day > len(p.catalog.Tracker) {
		return TrackerTask{}, fmt.Errorf("tracker day %d out of range [1,%d]", day, len(p.catalog.Tracker))
	}
	return p.catalog.Tracker[day-1], nil
}

// Scorer builds the owner-type scorer for the current catalog.
func (p *Provider) Scorer() *classify.Scorer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return classify.NewScorer(p.catalog.ScorerWeights())
}

// Reload re-reads the external catalog file. Invalid replacements are
// rejected and the current catalog stays in service. No-op for the embedded
// catalog.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}
	c, err := LoadFile(p.path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.catalog = c
	p.mu.Unlock()
	return nil
}

// Watch blocks until ctx is done, reloading the external catalog whenever
// its file changes. onReload is called after each successful reload.
// Returns immediately for the embedded catalog.
func (p *Provider) Watch(ctx context.Context, onReload func()) error {
	if p.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files by rename,
	// which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	log := logging.Named("content")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(p.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := p.Reload(); err != nil {
				log.Warn("catalog reload rejected", logging.Err(err))
				continue
			}
			log.Info("catalog reloaded", logging.String("path", p.path))
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", logging.Err(err))
		}
	}
}
