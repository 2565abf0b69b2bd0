package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structcheck/internal/classify"
	"structcheck/internal/session"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Questions)
	assert.Len(t, c.Tracker, session.TrackerDays)
	for _, ot := range classify.OwnerTypes {
		oc, ok := c.OwnerTypes[string(ot)]
		require.True(t, ok, "missing content for %s", ot)
		assert.NotEmpty(t, oc.Name)
		assert.NotEmpty(t, oc.Summary)
		assert.NotEmpty(t, oc.CanDo)
		assert.NotEmpty(t, oc.CantDo)
	}
}

func TestDefaultCatalogCanReachEveryOwnerType(t *testing.T) {
	// Every owner type must be producible, or the closed label set has a
	// dead member. Greedy per-label check: picking the option with the
	// highest weight for a label on every question must yield that label.
	c, err := LoadDefault()
	require.NoError(t, err)
	scorer := classify.NewScorer(c.ScorerWeights())

	for _, target := range classify.OwnerTypes {
		answers := make([]int, len(c.Questions))
		for i, q := range c.Questions {
			best, bestW := 0, -1
			for j, opt := range q.Options {
				if w := opt.Weights[string(target)]; w > bestW {
					best, bestW = j, w
				}
			}
			answers[i] = best
		}
		got, err := scorer.OwnerType(answers)
		require.NoError(t, err)
		assert.Equal(t, target, got, "owner type %s unreachable", target)
	}
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	base := func() *Catalog {
		c, err := LoadDefault()
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name    string
		corrupt func(*Catalog)
	}{
		{"no questions", func(c *Catalog) { c.Questions = nil }},
		{"unknown category", func(c *Catalog) { c.Questions[0].Category = "ghosts" }},
		{"single option", func(c *Catalog) { c.Questions[0].Options = c.Questions[0].Options[:1] }},
		{"unknown weight label", func(c *Catalog) {
			c.Questions[0].Options[0].Weights = map[string]int{"visionary": 1}
		}},
		{"missing owner type", func(c *Catalog) { delete(c.OwnerTypes, "intuitive") }},
		{"six tracker days", func(c *Catalog) { c.Tracker = c.Tracker[:6] }},
		{"blank tracker title", func(c *Catalog) { c.Tracker[3].Title = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.corrupt(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestProviderAccessors(t *testing.T) {
	p, err := NewProvider()
	require.NoError(t, err)

	n := p.QuestionCount()
	require.Greater(t, n, 0)

	q, err := p.Question(0)
	require.NoError(t, err)
	assert.NotEmpty(t, q.Text)
	assert.Equal(t, len(q.Options), p.OptionCount(0))

	cat, err := p.Category(q.Category)
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Name)

	_, err = p.Question(n)
	assert.Error(t, err)
	assert.Zero(t, p.OptionCount(n))
	_, err = p.Category("nope")
	assert.Error(t, err)

	task, err := p.TrackerTask(1)
	require.NoError(t, err)
	assert.NotEmpty(t, task.Question)
	_, err = p.TrackerTask(8)
	assert.Error(t, err)

	oc, err := p.OwnerTypeContent(classify.OwnerNoSystem)
	require.NoError(t, err)
	assert.NotEmpty(t, oc.Tip)

	assert.Equal(t, n, p.Scorer().QuestionCount())
}

func TestProviderReloadRejectsInvalidReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o644))

	p, err := NewProviderFromFile(path)
	require.NoError(t, err)
	n := p.QuestionCount()

	// A broken edit must not replace the serving catalog.
	require.NoError(t, os.WriteFile(path, []byte("questions: []"), 0o644))
	assert.Error(t, p.Reload())
	assert.Equal(t, n, p.QuestionCount())

	// A valid edit takes effect.
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o644))
	assert.NoError(t, p.Reload())
	assert.Equal(t, n, p.QuestionCount())
}

func TestEmbeddedProviderReloadIsNoop(t *testing.T) {
	p, err := NewProvider()
	require.NoError(t, err)
	assert.NoError(t, p.Reload())
}
