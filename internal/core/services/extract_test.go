package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

func TestExtractDrafts_ProseAroundArray(t *testing.T) {
	ext, err := ExtractDrafts("Here are the dishes:\n[{\"name\":\"Soup\",\"ingredients\":[\"carrot\"]}]\nEnjoy!")

	require.NoError(t, err)
	require.Len(t, ext.Items, 1)
	assert.Equal(t, "Soup", ext.Items[0].Name)
	assert.Equal(t, []string{"carrot"}, ext.Items[0].Ingredients)
	assert.Empty(t, ext.Skipped)
}

func TestExtractDrafts_MarkdownFence(t *testing.T) {
	raw := "```json\n[{\"name\": \"Tacos\", \"price\": 9.5, \"category\": \"Mains\"}]\n```"

	ext, err := ExtractDrafts(raw)

	require.NoError(t, err)
	require.Len(t, ext.Items, 1)
	assert.Equal(t, "Tacos", ext.Items[0].Name)
	assert.InDelta(t, 9.5, ext.Items[0].Price, 1e-9)
	assert.Equal(t, "Mains", ext.Items[0].Category)
}

func TestExtractDrafts_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"no array", "no array here", domain.ReasonNoArray},
		{"empty", "", domain.ReasonNoArray},
		{"reversed brackets", "] then [", domain.ReasonNoArray},
		{"bad json", "[{bad json]", domain.ReasonMalformedJSON},
		{"truncated", `[{"name":"Soup"}, {"name":`, domain.ReasonMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ExtractDrafts(tt.raw)

			assert.Nil(t, ext)
			var extErr *domain.ExtractionError
			require.True(t, errors.As(err, &extErr), "got %v", err)
			assert.Equal(t, tt.reason, extErr.Reason)
		})
	}
}

func TestExtractDrafts_Defaults(t *testing.T) {
	ext, err := ExtractDrafts(`[{"name":"Fries"}]`)

	require.NoError(t, err)
	require.Len(t, ext.Items, 1)
	fries := ext.Items[0]
	assert.Equal(t, domain.DefaultCategory, fries.Category)
	assert.Zero(t, fries.Price)
	assert.NotNil(t, fries.Ingredients)
	assert.Empty(t, fries.Ingredients)
}

func TestExtractDrafts_SkipsUnusableElements(t *testing.T) {
	raw := `[{"name":"Soup"}, "Salad", {"description":"no name"}, {"name":"  "}, {"name":"Pie"}]`

	ext, err := ExtractDrafts(raw)

	require.NoError(t, err)
	require.Len(t, ext.Items, 2)
	assert.Equal(t, "Soup", ext.Items[0].Name)
	assert.Equal(t, "Pie", ext.Items[1].Name)

	require.Len(t, ext.Skipped, 3)
	assert.Equal(t, domain.SkippedItem{Index: 1, Reason: "not an object"}, ext.Skipped[0])
	assert.Equal(t, domain.SkippedItem{Index: 2, Reason: "missing name"}, ext.Skipped[1])
	assert.Equal(t, 3, ext.Skipped[2].Index)
}

func TestExtractDrafts_EmptyArray(t *testing.T) {
	ext, err := ExtractDrafts("[]")

	require.NoError(t, err)
	assert.NotNil(t, ext.Items)
	assert.Empty(t, ext.Items)
}

func TestExtractDrafts_PriceFormats(t *testing.T) {
	tests := []struct {
		price string
		want  float64
	}{
		{`12`, 12},
		{`12.75`, 12.75},
		{`"$12.50"`, 12.5},
		{`"₹1,200"`, 1200},
		{`"market price"`, 0},
		{`null`, 0},
		{`true`, 0},
		{`-5`, 0},
		{`"-5"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			ext, err := ExtractDrafts(`[{"name":"Dish","price":` + tt.price + `}]`)
			require.NoError(t, err)
			require.Len(t, ext.Items, 1)
			assert.InDelta(t, tt.want, ext.Items[0].Price, 1e-9)
			assert.NoError(t, ext.Items[0].Validate())
		})
	}
}

func TestExtractDrafts_IngredientShapes(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        []string
	}{
		{"strings", `["egg", "flour"]`, []string{"egg", "flour"}},
		{"objects", `[{"name":"egg"}, {"name":"flour"}]`, []string{"egg", "flour"}},
		{"comma string", `"egg, flour ,"`, []string{"egg", "flour"}},
		{"blank entries", `["egg", "", "  "]`, []string{"egg"}},
		{"null", `null`, []string{}},
		{"number", `42`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ExtractDrafts(`[{"name":"Dish","ingredients":` + tt.ingredients + `}]`)
			require.NoError(t, err)
			require.Len(t, ext.Items, 1)
			assert.Equal(t, tt.want, ext.Items[0].Ingredients)
		})
	}
}

func TestExtractDrafts_NonStringFieldsIgnored(t *testing.T) {
	ext, err := ExtractDrafts(`[{"name":"Dish","description":5,"category":["x"]}]`)

	require.NoError(t, err)
	require.Len(t, ext.Items, 1)
	assert.Empty(t, ext.Items[0].Description)
	assert.Equal(t, domain.DefaultCategory, ext.Items[0].Category)
}
