package mealplan

import (
	"math/rand"
	"testing"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorPick(t *testing.T) {
	candidates := []Candidate{
		{Recipe: recipe.Recipe{ID: "rec_a"}, Score: 0.9},
		{Recipe: recipe.Recipe{ID: "rec_b"}, Score: 0.5},
		{Recipe: recipe.Recipe{ID: "rec_c"}, Score: 0.1},
	}

	t.Run("EmptyCandidates_ShouldReportFalse", func(t *testing.T) {
		s := NewSelector(rand.NewSource(1), 0.7)
		_, ok := s.Pick(nil)
		assert.False(t, ok)
	})

	t.Run("SameSeed_ShouldReproduceDraws", func(t *testing.T) {
		first := NewSelector(rand.NewSource(42), 0.7)
		second := NewSelector(rand.NewSource(42), 0.7)

		for i := 0; i < 50; i++ {
			a, okA := first.Pick(candidates)
			b, okB := second.Pick(candidates)
			require.True(t, okA)
			require.True(t, okB)
			assert.Equal(t, a, b)
		}
	})

	t.Run("Roulette_ShouldNotAlwaysPickArgmax", func(t *testing.T) {
		s := NewSelector(rand.NewSource(7), 1.0)
		picked := make(map[int]int)
		for i := 0; i < 500; i++ {
			idx, ok := s.Pick(candidates)
			require.True(t, ok)
			picked[idx]++
		}
		assert.Greater(t, picked[0], picked[2], "higher score draws more often")
		assert.Greater(t, picked[1], 0, "lower-scored candidates still get drawn")
	})

	t.Run("LowTemperature_ShouldSharpenTowardTop", func(t *testing.T) {
		count := func(temperature float64) int {
			s := NewSelector(rand.NewSource(7), temperature)
			top := 0
			for i := 0; i < 500; i++ {
				if idx, _ := s.Pick(candidates); idx == 0 {
					top++
				}
			}
			return top
		}

		assert.Greater(t, count(0.2), count(1.0))
	})

	t.Run("AllZeroScores_ShouldDrawUniformly", func(t *testing.T) {
		zeros := []Candidate{
			{Recipe: recipe.Recipe{ID: "rec_a"}},
			{Recipe: recipe.Recipe{ID: "rec_b"}},
		}
		s := NewSelector(rand.NewSource(3), 0.7)
		picked := make(map[int]bool)
		for i := 0; i < 100; i++ {
			idx, ok := s.Pick(zeros)
			require.True(t, ok)
			picked[idx] = true
		}
		assert.Len(t, picked, 2)
	})
}

func TestFilterBySlot(t *testing.T) {
	pool := []recipe.Recipe{
		{ID: "rec_bizcocho", Category: "reposteria"},
		{ID: "rec_lentejas", Category: "guisos", Tags: []string{"principal"}},
		{ID: "rec_ensalada", Category: "ensaladas", Tags: []string{"ligero"}},
	}
	keywords := DefaultSlotKeywords()

	t.Run("Desayuno_ShouldMatchReposteria", func(t *testing.T) {
		matched := FilterBySlot(pool, mealplan.SlotDesayuno, keywords)
		require.Len(t, matched, 1)
		assert.Equal(t, "rec_bizcocho", matched[0].ID)
	})

	t.Run("Comida_ShouldMatchTagsAndCategory", func(t *testing.T) {
		matched := FilterBySlot(pool, mealplan.SlotComida, keywords)
		require.Len(t, matched, 1)
		assert.Equal(t, "rec_lentejas", matched[0].ID)
	})

	t.Run("CategorySubstring_ShouldMatch", func(t *testing.T) {
		// "ensaladas" contains the keyword "ensalada"
		matched := FilterBySlot(pool, mealplan.SlotCena, keywords)
		require.Len(t, matched, 1)
		assert.Equal(t, "rec_ensalada", matched[0].ID)
	})

	t.Run("ZeroMatches_ShouldFallBackToWholePool", func(t *testing.T) {
		soloGuisos := []recipe.Recipe{{ID: "rec_lentejas", Category: "guisos"}}
		matched := FilterBySlot(soloGuisos, mealplan.SlotDesayuno, keywords)
		assert.Equal(t, soloGuisos, matched, "an unmatchable slot keeps the pool instead of starving")
	})

	t.Run("UnknownSlot_ShouldKeepPool", func(t *testing.T) {
		matched := FilterBySlot(pool, "merienda", keywords)
		assert.Equal(t, pool, matched)
	})
}
