package rest

import (
	"encoding/json"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// DraftDTO is a dish as submitted by clients or proposed by extraction.
type DraftDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// DishDTO is a stored dish with its ingredient names.
type DishDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// IngredientDTO is one corpus entry.
type IngredientDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuestionDTO is one quiz question. Multi-select questions carry
// CorrectAnswers, single-select questions carry CorrectAnswer.
type QuestionDTO struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	CorrectAnswers []string `json:"correctAnswers"`
	CorrectAnswer  string   `json:"correctAnswer"`
	Options        []string `json:"options"`
}

type multiSelectJSON struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	CorrectAnswers []string `json:"correctAnswers"`
	Options        []string `json:"options"`
}

type singleSelectJSON struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
}

// MarshalJSON writes the answer key that matches Type, even when the
// answer is empty: a dish without ingredients still has "correctAnswers": []
// and one without a description still has "correctAnswer": "".
func (q QuestionDTO) MarshalJSON() ([]byte, error) {
	if q.Type == domain.KindMultiSelect.String() {
		return json.Marshal(multiSelectJSON{
			Type:           q.Type,
			Question:       q.Question,
			CorrectAnswers: nonNil(q.CorrectAnswers),
			Options:        nonNil(q.Options),
		})
	}
	return json.Marshal(singleSelectJSON{
		Type:          q.Type,
		Question:      q.Question,
		CorrectAnswer: q.CorrectAnswer,
		Options:       nonNil(q.Options),
	})
}

// SkippedDTO names an element of the model's answer that was dropped.
type SkippedDTO struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ParseResponse is returned by POST /menu/parse-ai.
type ParseResponse struct {
	Items   []DraftDTO   `json:"items"`
	Skipped []SkippedDTO `json:"skipped"`
}

// ItemResultDTO reports the outcome of one uploaded item.
type ItemResultDTO struct {
	Index  int      `json:"index"`
	Item   DraftDTO `json:"item"`
	Status string   `json:"status"`
	Dish   *DishDTO `json:"dish,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// UploadResponse is returned by POST /menu/upload.
type UploadResponse struct {
	Success bool            `json:"success"`
	Items   []DishDTO       `json:"items"`
	Results []ItemResultDTO `json:"results"`
}

// OCRResponse is returned by POST /menu/ocr-google.
type OCRResponse struct {
	Text string `json:"text"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	LLM    string `json:"llm"`
	OCR    string `json:"ocr"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

type uploadRequest struct {
	Items []DraftDTO `json:"items" binding:"required"`
}

type ocrRequest struct {
	Base64Image string `json:"base64Image" binding:"required"`
}

type ingredientRequest struct {
	Name string `json:"name" binding:"required"`
}

type linkRequest struct {
	Names         []string `json:"names"`
	IngredientIDs []string `json:"ingredientIds"`
}

func (d DraftDTO) toDomain() domain.DraftDish {
	return domain.DraftDish{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Ingredients: d.Ingredients,
	}
}

func draftDTO(d domain.DraftDish) DraftDTO {
	return DraftDTO{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Ingredients: nonNil(d.Ingredients),
	}
}

func dishDTO(d domain.Dish) DishDTO {
	return DishDTO{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Ingredients: nonNil(d.Ingredients),
	}
}

func dishDTOs(dishes []domain.Dish) []DishDTO {
	out := make([]DishDTO, len(dishes))
	for i := range dishes {
		out[i] = dishDTO(dishes[i])
	}
	return out
}

func questionDTOs(quiz []domain.QuizQuestion) []QuestionDTO {
	out := make([]QuestionDTO, len(quiz))
	for i, q := range quiz {
		out[i] = QuestionDTO{
			Type:     q.Kind.String(),
			Question: q.Prompt,
			Options:  nonNil(q.Options),
		}
		if q.Kind == domain.KindMultiSelect {
			out[i].CorrectAnswers = nonNil(q.Correct)
		} else {
			out[i].CorrectAnswer = q.CorrectAnswer
		}
	}
	return out
}

func uploadResponse(report *domain.IngestReport) UploadResponse {
	resp := UploadResponse{
		Success: report.Failed() == 0,
		Items:   dishDTOs(report.Dishes()),
		Results: make([]ItemResultDTO, len(report.Results)),
	}
	for i, res := range report.Results {
		item := ItemResultDTO{
			Index:  res.Index,
			Item:   draftDTO(res.Item),
			Status: string(res.Status),
		}
		if res.Dish != nil {
			dish := dishDTO(*res.Dish)
			item.Dish = &dish
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		resp.Results[i] = item
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
