package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// menuStore implements driven.MenuStore.
type menuStore struct {
	store *Store
}

var _ driven.MenuStore = (*menuStore)(nil)

// CreateDish inserts the dish and its links in one transaction.
func (s *menuStore) CreateDish(ctx context.Context, draft domain.DraftDish, ingredientIDs []string) (string, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO dishes (id, name, description, category, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, draft.Name, draft.Description, draft.Category, draft.Price, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting dish: %w", err)
	}

	for _, ingID := range ingredientIDs {
		if err := linkTx(ctx, tx, id, ingID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing dish: %w", err)
	}
	return id, nil
}

// LinkIngredient links an ingredient to a dish. Existing links are kept.
func (s *menuStore) LinkIngredient(ctx context.Context, dishID, ingredientID string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM dishes WHERE id = ?", dishID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking dish: %w", err)
	}

	if err := linkTx(ctx, tx, dishID, ingredientID); err != nil {
		return err
	}
	return tx.Commit()
}

// linkTx inserts one link, mapping an unknown ingredient to ErrNotFound.
func linkTx(ctx context.Context, tx *sql.Tx, dishID, ingredientID string) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM ingredients WHERE id = ?", ingredientID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ingredient %s: %w", ingredientID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking ingredient: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dish_ingredients (dish_id, ingredient_id)
		VALUES (?, ?)
		ON CONFLICT(dish_id, ingredient_id) DO NOTHING
	`, dishID, ingredientID)
	if err != nil {
		return fmt.Errorf("linking ingredient: %w", err)
	}
	return nil
}

// FindIngredientByName returns the ingredient with exactly this name.
func (s *menuStore) FindIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM ingredients WHERE name = ?", name,
	).Scan(&ing.ID, &ing.Name, &ing.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying ingredient: %w", err)
	}
	return &ing, nil
}

// CreateIngredient inserts a new ingredient. The UNIQUE name constraint
// decides races: the losing insert affects no rows and reports
// domain.ErrAlreadyExists.
func (s *menuStore) CreateIngredient(ctx context.Context, name string) (*domain.Ingredient, error) {
	ing := domain.Ingredient{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, ing.ID, ing.Name, ing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrAlreadyExists
	}
	return &ing, nil
}

// GetDish returns one dish with its ingredient names.
func (s *menuStore) GetDish(ctx context.Context, id string) (*domain.Dish, error) {
	var d domain.Dish
	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, price, created_at
		FROM dishes WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Price, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying dish: %w", err)
	}

	links, err := s.ingredientNames(ctx, s.store.db, "WHERE di.dish_id = ?", id)
	if err != nil {
		return nil, err
	}
	d.Ingredients = links[d.ID]
	if d.Ingredients == nil {
		d.Ingredients = []string{}
	}
	return &d, nil
}

// ListDishesWithIngredients returns every dish in insertion order.
// Both queries run in one transaction so they see the same snapshot.
func (s *menuStore) ListDishesWithIngredients(ctx context.Context) ([]domain.Dish, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, description, category, price, created_at
		FROM dishes ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying dishes: %w", err)
	}

	dishes := make([]domain.Dish, 0)
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Price, &d.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating dishes: %w", err)
	}
	rows.Close()

	links, err := s.ingredientNames(ctx, tx, "")
	if err != nil {
		return nil, err
	}
	for i := range dishes {
		dishes[i].Ingredients = links[dishes[i].ID]
		if dishes[i].Ingredients == nil {
			dishes[i].Ingredients = []string{}
		}
	}
	return dishes, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ingredientNames maps dish ID to linked ingredient names in link order.
func (s *menuStore) ingredientNames(ctx context.Context, q queryer, where string, args ...any) (map[string][]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT di.dish_id, i.name
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		`+where+`
		ORDER BY di.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dish ingredients: %w", err)
	}
	defer rows.Close()

	links := make(map[string][]string)
	for rows.Next() {
		var dishID, name string
		if err := rows.Scan(&dishID, &name); err != nil {
			return nil, fmt.Errorf("scanning dish ingredient: %w", err)
		}
		links[dishID] = append(links[dishID], name)
	}
	return links, rows.Err()
}

// ListDistinctCategories returns the sorted set of dish categories.
func (s *menuStore) ListDistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT DISTINCT category FROM dishes ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListIngredients returns the ingredient corpus sorted by name.
func (s *menuStore) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id, name, created_at FROM ingredients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]domain.Ingredient, 0)
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
