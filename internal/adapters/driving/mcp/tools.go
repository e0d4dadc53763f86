package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// QuizInput is the input schema for the generate_quiz tool.
type QuizInput struct {
	Seed  uint64 `json:"seed,omitempty" jsonschema:"seed for a reproducible quiz (0 picks a random one)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of dishes to quiz on (0 for all)"`
}

// QuizOutput is the output schema for the generate_quiz tool.
type QuizOutput struct {
	Questions []QuestionOutput `json:"questions"`
	Count     int              `json:"count"`
}

// QuestionOutput is one quiz question.
type QuestionOutput struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	CorrectAnswers []string `json:"correctAnswers"`
	CorrectAnswer  string   `json:"correctAnswer"`
	Options        []string `json:"options"`
}

// ListMenuInput is the (empty) input schema for the list_menu tool.
type ListMenuInput struct{}

// MenuOutput is the output schema for the list_menu tool.
type MenuOutput struct {
	Dishes []DishOutput `json:"dishes"`
	Count  int          `json:"count"`
}

// DishOutput is one stored dish.
type DishOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// ListCategoriesInput is the (empty) input schema for the list_categories tool.
type ListCategoriesInput struct{}

// CategoriesOutput is the output schema for the list_categories tool.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
}

// ParseMenuInput is the input schema for the parse_menu tool.
type ParseMenuInput struct {
	Text string `json:"text" jsonschema:"raw menu text, e.g. copied from a website or recognised from a photo"`
}

// ParseMenuOutput is the output schema for the parse_menu tool.
type ParseMenuOutput struct {
	Items   []DraftOutput   `json:"items"`
	Skipped []SkippedOutput `json:"skipped"`
}

// DraftOutput is a dish extracted from menu text, not yet stored.
type DraftOutput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// SkippedOutput names an element of the model's answer that was dropped.
type SkippedOutput struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a quiz on the stored menu: for every dish, one ingredient question and one description question",
	}, s.handleGenerateQuiz)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_menu",
		Description: "List every stored dish with its ingredients",
	}, s.handleListMenu)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the distinct dish categories",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_menu",
		Description: "Extract structured dishes from menu text without storing them",
	}, s.handleParseMenu)
}

func (s *Server) handleGenerateQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	quiz, err := s.ports.Quiz.Generate(ctx, domain.QuizOptions{Seed: input.Seed, Limit: input.Limit})
	if err != nil {
		return nil, QuizOutput{}, err
	}

	output := QuizOutput{
		Questions: make([]QuestionOutput, len(quiz)),
		Count:     len(quiz),
	}
	for i, q := range quiz {
		output.Questions[i] = QuestionOutput{
			Type:           q.Kind.String(),
			Question:       q.Prompt,
			Options:        nonNil(q.Options),
			CorrectAnswers: []string{},
		}
		if q.Kind == domain.KindMultiSelect {
			output.Questions[i].CorrectAnswers = nonNil(q.Correct)
		} else {
			output.Questions[i].CorrectAnswer = q.CorrectAnswer
		}
	}

	return nil, output, nil
}

func (s *Server) handleListMenu(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListMenuInput,
) (*mcp.CallToolResult, MenuOutput, error) {
	dishes, err := s.ports.Menu.List(ctx)
	if err != nil {
		return nil, MenuOutput{}, err
	}

	return nil, MenuOutput{Dishes: dishOutputs(dishes), Count: len(dishes)}, nil
}

func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	categories, err := s.ports.Menu.Categories(ctx)
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	if categories == nil {
		categories = []string{}
	}
	return nil, CategoriesOutput{Categories: categories}, nil
}

func (s *Server) handleParseMenu(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseMenuInput,
) (*mcp.CallToolResult, ParseMenuOutput, error) {
	if s.ports.Ingest == nil {
		return nil, ParseMenuOutput{}, fmt.Errorf("parse_menu: %w", domain.ErrLLMUnavailable)
	}

	ext, err := s.ports.Ingest.ParseMenu(ctx, input.Text)
	if err != nil {
		return nil, ParseMenuOutput{}, err
	}

	output := ParseMenuOutput{
		Items:   make([]DraftOutput, len(ext.Items)),
		Skipped: make([]SkippedOutput, len(ext.Skipped)),
	}
	for i, d := range ext.Items {
		output.Items[i] = DraftOutput{
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Price:       d.Price,
			Ingredients: nonNil(d.Ingredients),
		}
	}
	for i, sk := range ext.Skipped {
		output.Skipped[i] = SkippedOutput{Index: sk.Index, Reason: sk.Reason}
	}

	return nil, output, nil
}

func dishOutputs(dishes []domain.Dish) []DishOutput {
	out := make([]DishOutput, len(dishes))
	for i := range dishes {
		out[i] = DishOutput{
			ID:          dishes[i].ID,
			Name:        dishes[i].Name,
			Description: dishes[i].Description,
			Category:    dishes[i].Category,
			Price:       dishes[i].Price,
			Ingredients: nonNil(dishes[i].Ingredients),
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
