package memo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/toonify/internal/convert"
)

const sample = `{"order":{"id":1,"status":"paid"}}`

func TestNew(t *testing.T) {
	t.Run("negative size", func(t *testing.T) {
		_, err := New(nil, -1, nil)
		require.Error(t, err)
	})

	t.Run("nil engine and logger", func(t *testing.T) {
		e, err := New(nil, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, "ORDER OBJECT\n  ID 1\n  STATUS paid", e.Convert(sample, convert.FormatJSON).Tokens)
	})
}

func TestEngine_ConvertCaches(t *testing.T) {
	e, err := New(convert.NewEngine(), 4, nil)
	require.NoError(t, err)

	first := e.Convert(sample, convert.FormatAuto)
	second := e.Convert(sample, convert.FormatAuto)

	assert.Equal(t, first, second)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1, Capacity: 4}, e.Stats())
	assert.InDelta(t, 0.5, e.Stats().HitRate(), 0.0001)
}

func TestEngine_FormatIsPartOfKey(t *testing.T) {
	e, err := New(convert.NewEngine(), 4, nil)
	require.NoError(t, err)

	asJSON := e.Convert(sample, convert.FormatJSON)
	asText := e.Convert(sample, convert.FormatText)

	assert.Equal(t, convert.FormatJSON, asJSON.Format)
	assert.Equal(t, convert.FormatText, asText.Format)
	assert.Equal(t, int64(2), e.Stats().Misses)
	assert.NotEqual(t, Key(sample, convert.FormatJSON), Key(sample, convert.FormatText))
}

func TestEngine_Eviction(t *testing.T) {
	e, err := New(convert.NewEngine(), 2, nil)
	require.NoError(t, err)

	e.Convert("a: 1", convert.FormatYAML)
	e.Convert("b: 2", convert.FormatYAML)
	e.Convert("c: 3", convert.FormatYAML)
	e.Convert("a: 1", convert.FormatYAML)

	s := e.Stats()
	assert.Equal(t, int64(0), s.Hits)
	assert.Equal(t, int64(4), s.Misses)
	assert.Equal(t, 2, s.Entries)
}

func TestEngine_ZeroSizeDisablesCaching(t *testing.T) {
	e, err := New(convert.NewEngine(), 0, nil)
	require.NoError(t, err)

	e.Convert(sample, convert.FormatJSON)
	e.Convert(sample, convert.FormatJSON)

	assert.Equal(t, Stats{Misses: 2}, e.Stats())
	assert.Zero(t, e.Stats().HitRate())
}

func TestEngine_Purge(t *testing.T) {
	e, err := New(convert.NewEngine(), 4, nil)
	require.NoError(t, err)

	e.Convert(sample, convert.FormatJSON)
	e.Purge()
	e.Convert(sample, convert.FormatJSON)

	assert.Equal(t, int64(2), e.Stats().Misses)
	assert.Equal(t, 1, e.Stats().Entries)
}

func TestEngine_Detect(t *testing.T) {
	e, err := New(nil, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, convert.FormatYAML, e.Detect("name: x"))
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e, err := New(convert.NewEngine(), 8, nil)
	require.NoError(t, err)
	want := convert.NewEngine().Convert(sample, convert.FormatAuto)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.Convert(sample, convert.FormatAuto))
		}()
	}
	wg.Wait()

	s := e.Stats()
	assert.Equal(t, int64(16), s.Hits+s.Misses)
	assert.Equal(t, 1, s.Entries)
}

func TestKey(t *testing.T) {
	assert.Len(t, Key("x", convert.FormatJSON), 64)
	assert.Equal(t, Key("x", convert.FormatJSON), Key("x", convert.FormatJSON))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}
