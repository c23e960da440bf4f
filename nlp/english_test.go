package nlp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnglish(t *testing.T) {
	m, err := NewEnglish()
	require.NoError(t, err)

	cost, ok := m.WordCost("pet")
	assert.True(t, ok)
	assert.Greater(t, cost, 0.0)

	_, ok = m.WordCost("zzyzx")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, m.MaxWordLen(), len("configuration"))
}

func TestFromWords(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := FromWords(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrModelUnavailable))
	})

	t.Run("rank orders cost", func(t *testing.T) {
		m, err := FromWords([]string{"the", "pet", "store", "pet"})
		require.NoError(t, err)

		the, _ := m.WordCost("the")
		pet, _ := m.WordCost("pet")
		store, _ := m.WordCost("store")
		assert.Less(t, the, pet)
		assert.Less(t, pet, store)
		assert.Equal(t, 5, m.MaxWordLen())
	})
}

func TestLoadEnglish(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadEnglish(filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("word file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(path, []byte("pet\nstore order\n"), 0644))

		m, err := LoadEnglish(path)
		require.NoError(t, err)
		_, ok := m.WordCost("order")
		assert.True(t, ok)
	})
}

func TestLemmatize(t *testing.T) {
	m, err := NewEnglish()
	require.NoError(t, err)

	assert.Equal(t, "id", m.Lemmatize("id"))
	assert.Equal(t, "pet", m.Lemmatize("pets"))
	assert.Equal(t, m.Lemmatize("category"), m.Lemmatize("categories"))
	assert.Equal(t, m.Lemmatize("create"), m.Lemmatize("created"))
}

func TestSimilarity(t *testing.T) {
	m, err := NewEnglish()
	require.NoError(t, err)

	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"created", "create", 1, 1},
		{"remove", "delete", 0.8, 0.8},
		{"fetch", "retrieve", 0.8, 0.8},
		{"pet", "create", 0, 0.33},
		{"update", "delete", 0, 0.33},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			s := m.Similarity(tt.a, tt.b)
			assert.GreaterOrEqual(t, s, tt.min)
			assert.LessOrEqual(t, s, tt.max)
		})
	}
}
