package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

var menuJSON bool

var (
	addDescription string
	addCategory    string
	addPrice       float64
	addIngredients []string
)

var menuCmd = &cobra.Command{
	Use:         "menu",
	Short:       "Inspect and edit the stored menu",
	Annotations: map[string]string{annotationStore: "true"},
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored dishes",
	RunE:  runMenuList,
}

var menuCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List dish categories",
	RunE:  runMenuCategories,
}

var menuIngredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List the ingredient corpus",
	RunE:  runMenuIngredients,
}

var menuAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a dish by hand",
	Long: `Add a single dish. Ingredients are deduplicated against the corpus
exactly as for ingested menus.

Example:
  menumem menu add "Margherita" --category Pizza --price 9.5 -i tomato -i mozzarella -i basil`,
	Args: cobra.ExactArgs(1),
	RunE: runMenuAdd,
}

func init() {
	menuListCmd.Flags().BoolVar(&menuJSON, "json", false, "output dishes as JSON")

	menuAddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "dish description")
	menuAddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "dish category")
	menuAddCmd.Flags().Float64VarP(&addPrice, "price", "p", 0, "dish price")
	menuAddCmd.Flags().StringSliceVarP(&addIngredients, "ingredient", "i", nil, "ingredient (repeatable)")

	menuCmd.AddCommand(menuListCmd)
	menuCmd.AddCommand(menuCategoriesCmd)
	menuCmd.AddCommand(menuIngredientsCmd)
	menuCmd.AddCommand(menuAddCmd)
	rootCmd.AddCommand(menuCmd)
}

func runMenuList(cmd *cobra.Command, _ []string) error {
	if menuService == nil {
		return errors.New("menu service not configured")
	}

	dishes, err := menuService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list dishes: %w", err)
	}

	if menuJSON {
		data, err := json.MarshalIndent(dishesJSON(dishes), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal dishes: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(dishes) == 0 {
		cmd.Println("No dishes stored.")
		return nil
	}
	for i := range dishes {
		printDish(cmd, &dishes[i])
	}
	cmd.Printf("\n%d dishes\n", len(dishes))
	return nil
}

func runMenuCategories(cmd *cobra.Command, _ []string) error {
	if menuService == nil {
		return errors.New("menu service not configured")
	}

	categories, err := menuService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		cmd.Println(c)
	}
	return nil
}

func runMenuIngredients(cmd *cobra.Command, _ []string) error {
	if menuService == nil {
		return errors.New("menu service not configured")
	}

	ingredients, err := menuService.Ingredients(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list ingredients: %w", err)
	}
	for _, ing := range ingredients {
		cmd.Printf("%s  %s\n", ing.ID, ing.Name)
	}
	return nil
}

func runMenuAdd(cmd *cobra.Command, args []string) error {
	if menuService == nil {
		return errors.New("menu service not configured")
	}

	dish, err := menuService.AddDish(cmd.Context(), domain.DraftDish{
		Name:        args[0],
		Description: addDescription,
		Category:    addCategory,
		Price:       addPrice,
		Ingredients: addIngredients,
	})
	if err != nil {
		return fmt.Errorf("failed to add dish: %w", err)
	}

	cmd.Println("Added:")
	printDish(cmd, dish)
	return nil
}

func printDish(cmd *cobra.Command, d *domain.Dish) {
	cmd.Printf("[%s] %s", d.Category, d.Name)
	if d.Price > 0 {
		cmd.Printf("  %.2f", d.Price)
	}
	cmd.Println()
	if d.Description != "" {
		cmd.Printf("    %s\n", d.Description)
	}
	if len(d.Ingredients) > 0 {
		cmd.Printf("    Ingredients: %s\n", strings.Join(d.Ingredients, ", "))
	}
}

type dishJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
}

func dishesJSON(dishes []domain.Dish) []dishJSON {
	out := make([]dishJSON, len(dishes))
	for i, d := range dishes {
		ingredients := d.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		out[i] = dishJSON{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Price:       d.Price,
			Ingredients: ingredients,
		}
	}
	return out
}
