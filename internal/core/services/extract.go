package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/logger"
)

// rawDraft is one element of the array the LLM returns. Fields are kept
// raw because models disagree on their types.
type rawDraft struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	Price       json.RawMessage `json:"price"`
	Ingredients json.RawMessage `json:"ingredients"`
}

var priceNumber = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// ExtractDrafts turns LLM output into draft dishes.
//
// The JSON array is taken from the first '[' to the last ']' so that
// prose, markdown fences and trailing commentary around it are ignored.
// A missing array or one that fails to parse is an *domain.ExtractionError;
// there is no partial recovery. Elements that are not objects or have no
// name are skipped and reported in Extraction.Skipped. Defaults are applied
// to every returned draft.
func ExtractDrafts(raw string) (*domain.Extraction, error) {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start < 0 || end < start {
		return nil, &domain.ExtractionError{Reason: domain.ReasonNoArray}
	}
	span := raw[start : end+1]

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elems); err != nil {
		return nil, &domain.ExtractionError{
			Reason:  domain.ReasonMalformedJSON,
			Snippet: span,
			Err:     err,
		}
	}

	ext := &domain.Extraction{Items: make([]domain.DraftDish, 0, len(elems))}
	for i, elem := range elems {
		draft, reason := decodeDraft(elem)
		if reason != "" {
			logger.Warn("Skipping extracted item %d: %s", i, reason)
			ext.Skipped = append(ext.Skipped, domain.SkippedItem{Index: i, Reason: reason})
			continue
		}
		ext.Items = append(ext.Items, draft)
	}

	logger.Debug("Extracted %d dishes (%d skipped)", len(ext.Items), len(ext.Skipped))
	return ext, nil
}

// decodeDraft returns the draft or a non-empty reason it was rejected.
func decodeDraft(elem json.RawMessage) (domain.DraftDish, string) {
	if trimmed := bytes.TrimSpace(elem); len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.DraftDish{}, "not an object"
	}

	var r rawDraft
	if err := json.Unmarshal(elem, &r); err != nil {
		return domain.DraftDish{}, fmt.Sprintf("invalid field: %v", err)
	}
	name := asString(r.Name)
	if strings.TrimSpace(name) == "" {
		return domain.DraftDish{}, "missing name"
	}

	draft := domain.DraftDish{
		Name:        name,
		Description: asString(r.Description),
		Category:    asString(r.Category),
		Price:       parsePrice(r.Price),
		Ingredients: parseIngredients(r.Ingredients),
	}
	return draft.ApplyDefaults(), ""
}

// asString returns the JSON string value, or "" for any other type.
func asString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// parsePrice accepts a JSON number or a string such as "$12.50" or "₹1,200".
// Commas are read as thousands separators. Anything else, and any negative
// amount, yields 0 (unknown) so the draft stays uploadable.
func parsePrice(raw json.RawMessage) float64 {
	if f := parseAmount(raw); f > 0 {
		return f
	}
	return 0
}

func parseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	m := priceNumber.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseIngredients accepts an array of names, an array of {"name": ...}
// objects, or one comma-separated string.
func parseIngredients(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		names := make([]string, 0, len(list))
		for _, item := range list {
			var name string
			if json.Unmarshal(item, &name) == nil {
				names = append(names, name)
				continue
			}
			var obj struct {
				Name string `json:"name"`
			}
			if json.Unmarshal(item, &obj) == nil {
				names = append(names, obj.Name)
			}
		}
		return names
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.Split(s, ",")
	}
	return []string{}
}
