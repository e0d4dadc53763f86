package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range menuCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "categories", "ingredients", "add"}, names)
}

func TestMenuList_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "menu", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No dishes stored.")
}

func TestMenuAddAndList(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "menu", "add", "Margherita",
		"--category", "Pizza", "--price", "9.5", "-d", "Classic", "-i", "Tomato", "-i", "mozzarella")
	require.NoError(t, err)
	assert.Contains(t, out, "[Pizza] Margherita  9.50")
	assert.Contains(t, out, "tomato")
	assert.Contains(t, out, "mozzarella")

	resetFlags()
	_, err = execute(t, "", "menu", "add", "Tiramisu", "--category", "Desserts")
	require.NoError(t, err)

	resetFlags()
	out, err = execute(t, "", "menu", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Margherita")
	assert.Contains(t, out, "Classic")
	assert.Contains(t, out, "2 dishes")

	out, err = execute(t, "", "menu", "categories")
	require.NoError(t, err)
	assert.Equal(t, "Desserts\nPizza\n", out)

	out, err = execute(t, "", "menu", "ingredients")
	require.NoError(t, err)
	assert.Contains(t, out, "tomato")
	assert.Contains(t, out, "mozzarella")
}

func TestMenuList_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "menu", "add", "Soup")
	require.NoError(t, err)
	resetFlags()

	out, err := execute(t, "", "menu", "list", "--json")
	require.NoError(t, err)

	var dishes []dishJSON
	require.NoError(t, json.Unmarshal([]byte(out), &dishes))
	require.Len(t, dishes, 1)
	assert.Equal(t, "Soup", dishes[0].Name)
	assert.Equal(t, "Uncategorized", dishes[0].Category)
	assert.Equal(t, []string{}, dishes[0].Ingredients)
}

func TestMenuAdd_Validation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "menu", "add", "Soup", "--price", "-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

func TestMenuAdd_RequiresName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "menu", "add")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
