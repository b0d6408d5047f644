package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	adaptationapp "github.com/cocinero/v1/internal/application/adaptation"
	knowledgeapp "github.com/cocinero/v1/internal/application/knowledge"
	mealplanapp "github.com/cocinero/v1/internal/application/mealplan"
	preferenceapp "github.com/cocinero/v1/internal/application/preference"
	substitutionapp "github.com/cocinero/v1/internal/application/substitution"
	variantapp "github.com/cocinero/v1/internal/application/variant"
	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/infrastructure/config"
	"github.com/cocinero/v1/internal/infrastructure/http/handlers"
	"github.com/cocinero/v1/internal/infrastructure/persistence/memory"
)

// APITestSuite drives the full router over memory-backed services, the
// same wiring the container uses with the memory driver.
type APITestSuite struct {
	suite.Suite
	server *Server
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	ctx := context.Background()
	logger := zap.NewNop()

	ingredients := memory.NewIngredientRepository()
	appliances := memory.NewApplianceRepository()
	subEdges := memory.NewSubstitutionEdgeRepository()
	adaptEdges := memory.NewAdaptationEdgeRepository()
	prefRepo := memory.NewPreferenceRepository()
	recipes := memory.NewRecipeRepository()
	variants := memory.NewVariantRepository()
	history := memory.NewHistoryRepository()
	knowledgeRepo := memory.NewKnowledgeRepository()
	plans := memory.NewMealPlanRepository()
	inventory := memory.NewInventoryRepository()
	profiles := memory.NewProfileRepository()
	cache := memory.NewCacheRepository()

	s.Require().NoError(ingredients.Save(ctx, catalog.Ingredient{ID: "ing_butter", Name: "Mantequilla", Category: "lacteos"}))
	s.Require().NoError(ingredients.Save(ctx, catalog.Ingredient{ID: "ing_oliveoil", Name: "Aceite de oliva", Category: "aceites"}))
	s.Require().NoError(subEdges.Save(ctx, catalog.SubstitutionEdge{
		OriginalID:    "ing_butter",
		AlternativeID: "ing_oliveoil",
		Ratio:         0.75,
		Confidence:    0.8,
		DietaryTags:   []string{"vegan"},
	}))

	for i := 0; i < 10; i++ {
		s.Require().NoError(recipes.Save(ctx, recipe.Recipe{
			ID:       fmt.Sprintf("rec_%02d", i),
			Title:    fmt.Sprintf("Receta %d", i),
			Category: []string{"reposteria", "sopas", "ensaladas", "legumbres", "arroces"}[i%5],
			Cuisine:  "espanola",
			Servings: 4,
			Ingredients: []recipe.Ingredient{
				{IngredientID: fmt.Sprintf("ing_%02d", i), Name: "Principal", Amount: 100, Unit: "g"},
			},
			Steps:            []recipe.Step{{Number: 1, Instruction: "Cocinar"}},
			TotalTimeMinutes: 30,
		}))
	}

	preferences := preferenceapp.NewService(prefRepo, logger)
	substitutions := substitutionapp.NewService(ingredients, subEdges, preferences, logger)
	adaptations := adaptationapp.NewApplianceService(appliances, adaptEdges, profiles, preferences, logger)
	recipeAdapt := adaptationapp.NewRecipeService(recipes, ingredients, subEdges, substitutions, adaptations, nil, logger)
	variantSvc := variantapp.NewService(variants, recipes, logger)
	knowledgeSvc := knowledgeapp.NewService(knowledgeRepo, logger)
	planner := mealplanapp.NewService(recipes, inventory, history, profiles, plans, cache, mealplanapp.Options{}, logger)
	historySvc := mealplanapp.NewHistoryService(history, recipes, preferences, knowledgeSvc, logger)

	h := handlers.NewAPIHandlers(
		substitutions, adaptations, preferences, recipeAdapt,
		variantSvc, knowledgeSvc, planner, historySvc,
		profiles, inventory, logger,
	)

	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	s.server = NewServer(cfg, logger, h)
}

func (s *APITestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.server.router.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, data interface{}) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Require().True(envelope.Success)
	if data != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, data))
	}
}

func (s *APITestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func (s *APITestSuite) TestHealthCheck() {
	rec := s.do(http.MethodGet, "/api/v1/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.decode(rec, nil)
}

func (s *APITestSuite) TestSubstitutions() {
	s.Run("Search_ShouldReturnSeededEdge", func() {
		rec := s.do(http.MethodPost, "/api/v1/substitutions/search", map[string]interface{}{
			"ingredient_id": "ing_butter",
		})
		s.Equal(http.StatusOK, rec.Code)

		var results []struct {
			SubstituteID string  `json:"substitute_id"`
			Ratio        float64 `json:"ratio"`
		}
		s.decode(rec, &results)
		s.Require().Len(results, 1)
		s.Equal("ing_oliveoil", results[0].SubstituteID)
		s.InDelta(0.75, results[0].Ratio, 0.001)
	})

	s.Run("Search_MissingIngredientID_ShouldFailValidation", func() {
		rec := s.do(http.MethodPost, "/api/v1/substitutions/search", map[string]interface{}{})
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_FAILED", s.errorCode(rec))
	})

	s.Run("Best_UnknownIngredient_ShouldReturn404", func() {
		rec := s.do(http.MethodPost, "/api/v1/substitutions/best", map[string]interface{}{
			"ingredient_id": "ing_fantasma",
		})
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("INGREDIENT_NOT_FOUND", s.errorCode(rec))
	})

	s.Run("Amount_ShouldApplyRatio", func() {
		rec := s.do(http.MethodPost, "/api/v1/substitutions/amount", map[string]interface{}{
			"amount": 200.0,
			"ratio":  0.75,
		})
		s.Equal(http.StatusOK, rec.Code)

		var conversion struct {
			Amount  float64 `json:"amount"`
			Display string  `json:"display"`
		}
		s.decode(rec, &conversion)
		s.InDelta(150.0, conversion.Amount, 0.001)
		s.Equal("use less (75% of original)", conversion.Display)
	})

	s.Run("InvalidJSONBody_ShouldReturnBadRequest", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/substitutions/search", bytes.NewReader([]byte("{broken")))
		rec := httptest.NewRecorder()
		s.server.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("BAD_REQUEST", s.errorCode(rec))
	})
}

func (s *APITestSuite) TestVariantLifecycle() {
	create := s.do(http.MethodPost, "/api/v1/recipes/rec_00/variants", map[string]interface{}{
		"name": "Sin mantequilla",
		"ingredient_changes": []map[string]interface{}{
			{"kind": "removed", "ingredient_id": "ing_00"},
		},
	})
	s.Require().Equal(http.StatusCreated, create.Code)

	var created struct {
		VariantID string `json:"variant_id"`
	}
	s.decode(create, &created)
	s.Require().NotEmpty(created.VariantID)

	apply := s.do(http.MethodPost, "/api/v1/recipes/rec_00/variants/"+created.VariantID+"/apply", nil)
	s.Require().Equal(http.StatusOK, apply.Code)

	var derived struct {
		Ingredients []struct {
			IngredientID string `json:"IngredientID"`
		} `json:"Ingredients"`
	}
	s.decode(apply, &derived)
	s.Empty(derived.Ingredients)

	list := s.do(http.MethodGet, "/api/v1/recipes/rec_00/variants/", nil)
	s.Equal(http.StatusOK, list.Code)

	del := s.do(http.MethodDelete, "/api/v1/variants/"+created.VariantID, nil)
	s.Equal(http.StatusOK, del.Code)

	summary := s.do(http.MethodGet, "/api/v1/variants/"+created.VariantID+"/summary", nil)
	s.Equal(http.StatusNotFound, summary.Code)
	s.Equal("VARIANT_NOT_FOUND", s.errorCode(summary))
}

func (s *APITestSuite) TestKnowledge() {
	add := s.do(http.MethodPost, "/api/v1/knowledge", map[string]interface{}{
		"type":       "general-tip",
		"summary":    "salar al final",
		"confidence": 0.8,
	})
	s.Require().Equal(http.StatusCreated, add.Code)

	digest := s.do(http.MethodGet, "/api/v1/knowledge/digest", nil)
	s.Equal(http.StatusOK, digest.Code)

	var body struct {
		Digest string `json:"digest"`
	}
	s.decode(digest, &body)
	s.Contains(body.Digest, "salar al final")
}

func (s *APITestSuite) TestProfileAndInventory() {
	put := s.do(http.MethodPut, "/api/v1/profile", map[string]interface{}{
		"skill":               "beginner",
		"preferred_cuisines":  []string{"espanola"},
		"max_cooking_minutes": 45,
	})
	s.Require().Equal(http.StatusOK, put.Code)

	get := s.do(http.MethodGet, "/api/v1/profile/", nil)
	s.Equal(http.StatusOK, get.Code)

	item := s.do(http.MethodPut, "/api/v1/inventory/ing_butter", map[string]interface{}{
		"quantity": 250.0,
		"unit":     "g",
	})
	s.Require().Equal(http.StatusOK, item.Code)

	list := s.do(http.MethodGet, "/api/v1/inventory/", nil)
	s.Equal(http.StatusOK, list.Code)

	var items []struct {
		IngredientID string  `json:"IngredientID"`
		Quantity     float64 `json:"Quantity"`
	}
	s.decode(list, &items)
	s.Require().Len(items, 1)
	s.Equal("ing_butter", items[0].IngredientID)

	del := s.do(http.MethodDelete, "/api/v1/inventory/ing_butter", nil)
	s.Equal(http.StatusOK, del.Code)
}

func (s *APITestSuite) TestHistory() {
	record := s.do(http.MethodPost, "/api/v1/history", map[string]interface{}{
		"recipe_id":    "rec_00",
		"completed_at": "2026-06-01T20:30:00Z",
		"rating":       5,
		"changes": []map[string]interface{}{
			{"type": "substitution", "ingredient_id": "ing_butter", "substitute_id": "ing_oliveoil"},
			{"type": "tip", "description": "salar al final"},
		},
	})
	s.Require().Equal(http.StatusCreated, record.Code)

	list := s.do(http.MethodGet, "/api/v1/history/rec_00", nil)
	s.Equal(http.StatusOK, list.Code)

	var entries []struct {
		RecipeID string `json:"RecipeID"`
		Rating   int    `json:"Rating"`
	}
	s.decode(list, &entries)
	s.Require().Len(entries, 1)
	s.Equal(5, entries[0].Rating)

	// The session's substitution landed in the preference store
	preferred := s.do(http.MethodGet, "/api/v1/preferences/ing_butter", nil)
	s.Equal(http.StatusOK, preferred.Code)

	var records []struct {
		AlternativeID string `json:"AlternativeID"`
		TimesUsed     int    `json:"TimesUsed"`
	}
	s.decode(preferred, &records)
	s.Require().Len(records, 1)
	s.Equal("ing_oliveoil", records[0].AlternativeID)
	s.Equal(1, records[0].TimesUsed)

	s.Run("UnknownRecipe_ShouldReturn404", func() {
		rec := s.do(http.MethodPost, "/api/v1/history", map[string]interface{}{
			"recipe_id": "rec_fantasma",
		})
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("RECIPE_NOT_FOUND", s.errorCode(rec))
	})
}

func (s *APITestSuite) TestPlans() {
	s.Run("Questionnaire_ShouldProduceFullWeek", func() {
		rec := s.do(http.MethodPost, "/api/v1/plans/questionnaire", map[string]interface{}{
			"start_date":  "2026-06-01",
			"skill_level": "beginner",
			"max_minutes": 60,
		})
		s.Require().Equal(http.StatusCreated, rec.Code)

		var plan struct {
			Active bool `json:"Active"`
			Days   []struct {
				Comida string `json:"Comida"`
			} `json:"Days"`
		}
		s.decode(rec, &plan)
		s.True(plan.Active)
		s.Len(plan.Days, 7)
	})

	s.Run("Active_ShouldFindPlanMidweek", func() {
		generate := s.do(http.MethodPost, "/api/v1/plans/generate", map[string]interface{}{
			"start_date": "2026-06-08",
			"seed":       42,
		})
		s.Require().Equal(http.StatusCreated, generate.Code)

		rec := s.do(http.MethodGet, "/api/v1/plans/active?date=2026-06-10", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("Active_BadDate_ShouldReturnBadRequest", func() {
		rec := s.do(http.MethodGet, "/api/v1/plans/active?date=10-06-2026", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("BAD_REQUEST", s.errorCode(rec))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	handler := requestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])
	assert.Contains(t, fields, "latency")
}
