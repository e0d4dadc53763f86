package domain

import "strings"

// ItemStatus is the outcome of ingesting one draft dish.
type ItemStatus string

// Item statuses.
const (
	ItemSucceeded ItemStatus = "succeeded"
	ItemFailed    ItemStatus = "failed"
)

// ItemResult records what happened to one item of an upload batch.
type ItemResult struct {
	// Index is the item's position in the submitted batch.
	Index int

	// Item is the draft as submitted, after defaults were applied.
	Item DraftDish

	// Status is ItemSucceeded or ItemFailed.
	Status ItemStatus

	// Dish is the stored dish when Status is ItemSucceeded.
	Dish *Dish

	// Err is the failure when Status is ItemFailed.
	Err error
}

// IngestReport lists per-item results in submission order.
type IngestReport struct {
	Results []ItemResult
}

// Succeeded returns the number of items stored.
func (r *IngestReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ItemSucceeded {
			n++
		}
	}
	return n
}

// Failed returns the number of items that were not stored.
func (r *IngestReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Dishes returns the stored dishes in submission order.
func (r *IngestReport) Dishes() []Dish {
	dishes := make([]Dish, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Status == ItemSucceeded && res.Dish != nil {
			dishes = append(dishes, *res.Dish)
		}
	}
	return dishes
}

// FailedItems returns the drafts that should be resubmitted.
func (r *IngestReport) FailedItems() []DraftDish {
	var items []DraftDish
	for _, res := range r.Results {
		if res.Status == ItemFailed {
			items = append(items, res.Item)
		}
	}
	return items
}

// SkippedItem flags an element of AI output that could not become a draft.
type SkippedItem struct {
	Index  int
	Reason string
}

// Extraction is the result of normalising AI output.
type Extraction struct {
	Items   []DraftDish
	Skipped []SkippedItem
}

// MenuFile is a menu document found on disk, e.g. by a watched directory.
type MenuFile struct {
	// Path is the absolute file path.
	Path string

	// MIMEType is detected from the file extension.
	MIMEType string
}

// IsImage reports whether the file needs OCR before extraction.
func (f MenuFile) IsImage() bool {
	return strings.HasPrefix(f.MIMEType, "image/")
}
