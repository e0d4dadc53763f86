package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

type menuStore struct {
	pool *pgxpool.Pool
}

var _ driven.MenuStore = (*menuStore)(nil)

func (s *menuStore) CreateDish(ctx context.Context, draft domain.DraftDish, ingredientIDs []string) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	id := uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO dishes (id, name, description, category, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, draft.Name, draft.Description, draft.Category, draft.Price, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting dish: %w", err)
	}

	for _, ingID := range ingredientIDs {
		if err := linkTx(ctx, tx, id, ingID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing dish: %w", err)
	}
	return id, nil
}

func (s *menuStore) LinkIngredient(ctx context.Context, dishID, ingredientID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var exists int
	err = tx.QueryRow(ctx, "SELECT 1 FROM dishes WHERE id = $1", dishID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking dish: %w", err)
	}

	if err := linkTx(ctx, tx, dishID, ingredientID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func linkTx(ctx context.Context, tx pgx.Tx, dishID, ingredientID string) error {
	var exists int
	err := tx.QueryRow(ctx, "SELECT 1 FROM ingredients WHERE id = $1", ingredientID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ingredient %s: %w", ingredientID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking ingredient: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO dish_ingredients (dish_id, ingredient_id)
		VALUES ($1, $2)
		ON CONFLICT (dish_id, ingredient_id) DO NOTHING
	`, dishID, ingredientID)
	if err != nil {
		return fmt.Errorf("linking ingredient: %w", err)
	}
	return nil
}

func (s *menuStore) FindIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM ingredients WHERE name = $1", name,
	).Scan(&ing.ID, &ing.Name, &ing.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying ingredient: %w", err)
	}
	return &ing, nil
}

// CreateIngredient inserts a new ingredient. When another writer holds
// the name, RETURNING yields no row and domain.ErrAlreadyExists is
// reported.
func (s *menuStore) CreateIngredient(ctx context.Context, name string) (*domain.Ingredient, error) {
	ing := domain.Ingredient{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ingredients (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, ing.ID, ing.Name, ing.CreatedAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}
	return &ing, nil
}

func (s *menuStore) GetDish(ctx context.Context, id string) (*domain.Dish, error) {
	var d domain.Dish
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, category, price, created_at
		FROM dishes WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Price, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying dish: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT i.name
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = $1
		ORDER BY di.seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying dish ingredients: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning dish ingredients: %w", err)
	}
	d.Ingredients = names
	if d.Ingredients == nil {
		d.Ingredients = []string{}
	}
	return &d, nil
}

// ListDishesWithIngredients reads dishes and links in one repeatable-read
// transaction.
func (s *menuStore) ListDishesWithIngredients(ctx context.Context) ([]domain.Dish, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rows, err := tx.Query(ctx, `
		SELECT id, name, description, category, price, created_at
		FROM dishes ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying dishes: %w", err)
	}
	dishes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Dish, error) {
		var d domain.Dish
		err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Price, &d.CreatedAt)
		d.Ingredients = []string{}
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning dishes: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT di.dish_id, i.name
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		ORDER BY di.seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying dish ingredients: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int, len(dishes))
	for i, d := range dishes {
		index[d.ID] = i
	}
	for rows.Next() {
		var dishID, name string
		if err := rows.Scan(&dishID, &name); err != nil {
			return nil, fmt.Errorf("scanning dish ingredient: %w", err)
		}
		if i, ok := index[dishID]; ok {
			dishes[i].Ingredients = append(dishes[i].Ingredients, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dish ingredients: %w", err)
	}
	if dishes == nil {
		dishes = []domain.Dish{}
	}
	return dishes, nil
}

func (s *menuStore) ListDistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT DISTINCT category FROM dishes ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *menuStore) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, created_at FROM ingredients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	ingredients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ingredient, error) {
		var ing domain.Ingredient
		err := row.Scan(&ing.ID, &ing.Name, &ing.CreatedAt)
		return ing, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning ingredients: %w", err)
	}
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	return ingredients, nil
}
