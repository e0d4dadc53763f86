package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) ModelName() string            { return "fake" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) DetectText(_ context.Context, _ []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeOCR) Name() string { return "fake" }
func (f *fakeOCR) Close() error { return nil }

// newTestRouter wires real services over a memory store.
func newTestRouter(t *testing.T, llm driven.LLMService, ocr driven.OCRService) *gin.Engine {
	t.Helper()

	store := memory.NewMenuStore()
	resolver := services.NewIngredientResolver(store, true)
	r, err := NewRouter(&Ports{
		Quiz:    services.NewQuizService(store, domain.DefaultAppSettings().Quiz),
		Menu:    services.NewMenuService(store, resolver),
		Ingest:  services.NewIngestService(store, resolver, llm, ocr, nil, 2),
		LLMName: "ollama",
		OCRName: "tesseract",
	}, Options{})
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if s, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(s))
	} else if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNewRouter_MissingPorts(t *testing.T) {
	_, err := NewRouter(&Ports{}, Options{})
	assert.ErrorIs(t, err, ErrMissingQuizService)

	_, err = NewRouter(&Ports{Quiz: services.NewQuizService(nil, domain.QuizSettings{})}, Options{})
	assert.ErrorIs(t, err, ErrMissingMenuService)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := do(t, r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, HealthResponse{Status: "ok", LLM: "ollama", OCR: "tesseract"}, decode[HealthResponse](t, w))
}

func TestCORS(t *testing.T) {
	t.Run("all origins by default", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		store := memory.NewMenuStore()
		r, err := NewRouter(&Ports{
			Quiz: services.NewQuizService(store, domain.QuizSettings{}),
			Menu: services.NewMenuService(store, services.NewIngredientResolver(store, true)),
		}, Options{AllowedOrigins: []string{"http://localhost:3000"}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestQuiz_EmptyAnswersKeepTheirKeys(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := do(t, r, http.MethodPost, "/menu/upload", `{"items":[{"name":"Fries"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/quiz?seed=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	quiz := decode[[]map[string]any](t, w)
	require.Len(t, quiz, 2)

	multi := quiz[0]
	assert.Equal(t, "multi-select", multi["type"])
	require.Contains(t, multi, "correctAnswers")
	assert.Equal(t, []any{}, multi["correctAnswers"])
	assert.Equal(t, []any{}, multi["options"])
	assert.NotContains(t, multi, "correctAnswer")

	single := quiz[1]
	assert.Equal(t, "single-select", single["type"])
	require.Contains(t, single, "correctAnswer")
	assert.Equal(t, "", single["correctAnswer"])
	assert.Equal(t, []any{""}, single["options"])
	assert.NotContains(t, single, "correctAnswers")
}

func TestQuiz_FlourEggCheese(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := do(t, r, http.MethodPost, "/menu/upload", gin.H{"items": []gin.H{
		{"name": "Pancakes", "description": "Stacked and syrupy", "ingredients": []string{"flour", "egg"}},
		{"name": "Omelette", "description": "Folded with cheese", "ingredients": []string{"egg", "cheese"}},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/quiz?seed=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	quiz := decode[[]QuestionDTO](t, w)
	require.Len(t, quiz, 4)

	assert.Equal(t, "multi-select", quiz[0].Type)
	assert.Equal(t, `Select all ingredients for "Pancakes":`, quiz[0].Question)
	assert.ElementsMatch(t, []string{"flour", "egg"}, quiz[0].CorrectAnswers)
	assert.ElementsMatch(t, []string{"flour", "egg", "cheese"}, quiz[0].Options)

	assert.Equal(t, "single-select", quiz[1].Type)
	assert.Equal(t, "Stacked and syrupy", quiz[1].CorrectAnswer)
	assert.ElementsMatch(t, []string{"Stacked and syrupy", "Folded with cheese"}, quiz[1].Options)

	assert.Equal(t, "multi-select", quiz[2].Type)
	assert.ElementsMatch(t, []string{"flour", "egg", "cheese"}, quiz[2].Options)
	assert.Equal(t, "single-select", quiz[3].Type)

	// The same seed gives the same quiz.
	again := decode[[]QuestionDTO](t, do(t, r, http.MethodGet, "/quiz?seed=1", nil))
	assert.Equal(t, quiz, again)
}

func TestQuiz_Query(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	t.Run("empty menu gives empty quiz", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/quiz", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	for _, q := range []string{"seed=abc", "seed=-1", "limit=x", "limit=-2"} {
		t.Run("rejects "+q, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/quiz?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("limit caps dishes", func(t *testing.T) {
		for _, name := range []string{"A", "B", "C"} {
			require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/menu", gin.H{"name": name}).Code)
		}
		w := do(t, r, http.MethodGet, "/quiz?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]QuestionDTO](t, w), 2)
	})
}

func TestUpload(t *testing.T) {
	t.Run("partial failure is 207 with per-item results", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)

		w := do(t, r, http.MethodPost, "/menu/upload", gin.H{"items": []gin.H{
			{"name": "Soup", "price": 4.5},
			{"name": "  "},
		}})

		require.Equal(t, http.StatusMultiStatus, w.Code)
		resp := decode[UploadResponse](t, w)
		assert.False(t, resp.Success)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Soup", resp.Items[0].Name)
		assert.Equal(t, domain.DefaultCategory, resp.Items[0].Category)

		require.Len(t, resp.Results, 2)
		assert.Equal(t, "succeeded", resp.Results[0].Status)
		assert.NotNil(t, resp.Results[0].Dish)
		assert.Equal(t, "failed", resp.Results[1].Status)
		assert.Equal(t, 1, resp.Results[1].Index)
		assert.Contains(t, resp.Results[1].Error, "name")
	})

	t.Run("all failed is 422", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)

		w := do(t, r, http.MethodPost, "/menu/upload", gin.H{"items": []gin.H{{"name": "Bad", "price": -1}}})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decode[UploadResponse](t, w)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Items)
		require.Len(t, resp.Results, 1)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)
		w := do(t, r, http.MethodPost, "/menu/upload", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ingredients are shared across dishes", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)

		w := do(t, r, http.MethodPost, "/menu/upload", gin.H{"items": []gin.H{
			{"name": "A", "ingredients": []string{"Garlic", "oil"}},
			{"name": "B", "ingredients": []string{"garlic "}},
		}})
		require.Equal(t, http.StatusOK, w.Code)

		ingredients := decode[[]IngredientDTO](t, do(t, r, http.MethodGet, "/ingredients", nil))
		names := make([]string, len(ingredients))
		for i, ing := range ingredients {
			names[i] = ing.Name
		}
		assert.ElementsMatch(t, []string{"garlic", "oil"}, names)
	})
}

func TestParseMenu(t *testing.T) {
	t.Run("returns drafts and skipped items", func(t *testing.T) {
		llm := &fakeLLM{response: "Here you go:\n```json\n[{\"name\":\"Fries\"},{\"price\":3}]\n```"}
		r := newTestRouter(t, llm, nil)

		w := do(t, r, http.MethodPost, "/menu/parse-ai", gin.H{"text": "Fries 3.50"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[ParseResponse](t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, DraftDTO{Name: "Fries", Category: domain.DefaultCategory, Ingredients: []string{}}, resp.Items[0])
		require.Len(t, resp.Skipped, 1)
		assert.Equal(t, 1, resp.Skipped[0].Index)

		// Parsing never stores.
		assert.JSONEq(t, "[]", do(t, r, http.MethodGet, "/menu", nil).Body.String())
	})

	t.Run("answer without array is 422", func(t *testing.T) {
		r := newTestRouter(t, &fakeLLM{response: "Sorry, I cannot read this menu."}, nil)

		w := do(t, r, http.MethodPost, "/menu/parse-ai", gin.H{"text": "???"})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, domain.ReasonNoArray, decode[ErrorResponse](t, w).Error)
	})

	t.Run("missing text is 400", func(t *testing.T) {
		r := newTestRouter(t, &fakeLLM{}, nil)
		w := do(t, r, http.MethodPost, "/menu/parse-ai", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no LLM configured is 503", func(t *testing.T) {
		r := newTestRouter(t, nil, nil)
		w := do(t, r, http.MethodPost, "/menu/parse-ai", gin.H{"text": "Soup"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRecognizeText(t *testing.T) {
	image := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	tests := []struct {
		name     string
		ocr      driven.OCRService
		body     any
		wantCode int
		wantText string
	}{
		{"recognised text", &fakeOCR{text: "Soup 4"}, gin.H{"base64Image": image}, http.StatusOK, "Soup 4"},
		{"data url", &fakeOCR{text: "Tea"}, gin.H{"base64Image": "data:image/png;base64," + image}, http.StatusOK, "Tea"},
		{"no text is not an error", &fakeOCR{}, gin.H{"base64Image": image}, http.StatusOK, ""},
		{"provider failure", &fakeOCR{err: errors.New("quota")}, gin.H{"base64Image": image}, http.StatusBadGateway, ""},
		{"invalid base64", &fakeOCR{}, gin.H{"base64Image": "!!!"}, http.StatusBadRequest, ""},
		{"missing image", &fakeOCR{}, gin.H{}, http.StatusBadRequest, ""},
		{"not configured", nil, gin.H{"base64Image": image}, http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, nil, tt.ocr)

			w := do(t, r, http.MethodPost, "/menu/ocr-google", tt.body)

			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantText, decode[OCRResponse](t, w).Text)
			}
		})
	}
}

func TestAddDishAndCategories(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := do(t, r, http.MethodPost, "/menu", gin.H{
		"name": "Tiramisu", "category": "Desserts", "price": 6, "ingredients": []string{"Mascarpone"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	dish := decode[DishDTO](t, w)
	assert.NotEmpty(t, dish.ID)
	assert.Equal(t, []string{"mascarpone"}, dish.Ingredients)

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/menu", gin.H{"name": "Bruschetta", "category": "Starters"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/menu", gin.H{"description": "no name"}).Code)

	menu := decode[[]DishDTO](t, do(t, r, http.MethodGet, "/menu", nil))
	require.Len(t, menu, 2)
	assert.Equal(t, "Tiramisu", menu[0].Name)

	categories := decode[[]string](t, do(t, r, http.MethodGet, "/categories", nil))
	assert.Equal(t, []string{"Desserts", "Starters"}, categories)
}

func TestIngredients(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	first := decode[IngredientDTO](t, do(t, r, http.MethodPost, "/ingredients", gin.H{"name": "Basil"}))
	second := decode[IngredientDTO](t, do(t, r, http.MethodPost, "/ingredients", gin.H{"name": " basil"}))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "basil", first.Name)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/ingredients", gin.H{}).Code)

	dish := decode[DishDTO](t, do(t, r, http.MethodPost, "/menu", gin.H{"name": "Pesto"}))

	t.Run("links by name and id", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/menu/"+dish.ID+"/ingredients", gin.H{
			"names":         []string{"Garlic"},
			"ingredientIds": []string{first.ID},
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.ElementsMatch(t, []string{"garlic", "basil"}, decode[DishDTO](t, w).Ingredients)
	})

	t.Run("linking again is idempotent", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/menu/"+dish.ID+"/ingredients", gin.H{"ingredientIds": []string{first.ID}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[DishDTO](t, w).Ingredients, 2)
	})

	t.Run("unknown dish is 404", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/menu/missing/ingredients", gin.H{"names": []string{"salt"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown ingredient is 404", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/menu/"+dish.ID+"/ingredients", gin.H{"ingredientIds": []string{"missing"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty request is 400", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/menu/"+dish.ID+"/ingredients", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
