package targets_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
)

func TestParse_TargetsAndListShareTypeContext(t *testing.T) {
	// Act
	cfg := targets.Parse("Ingot\nIron 500\n#comment\nlist Foo\nIron 10\n")

	// Assert
	require.Empty(t, cfg.Errors)
	assert.Equal(t, inventory.Items(500), cfg.Target(inventory.Ingot("Iron")))

	foo, ok := cfg.List("Foo")
	require.True(t, ok)
	assert.Equal(t, inventory.Items(10), foo.Amount(inventory.Ingot("Iron")))
	assert.Equal(t, inventory.Items(500), cfg.Target(inventory.Ingot("Iron")), "list entries must not touch targets")
}

func TestParse_MalformedLineDoesNotAbort(t *testing.T) {
	text := "Ingot\nIron abc\nGold 200\nComponent\nMotor 50\n"

	cfg := targets.Parse(text)

	require.Len(t, cfg.Errors, 1)
	assert.Equal(t, 2, cfg.Errors[0].Line)
	assert.Equal(t, inventory.Items(200), cfg.Target(inventory.Ingot("Gold")))
	assert.Equal(t, inventory.Items(50), cfg.Target(inventory.Component("Motor")))
	assert.Equal(t, inventory.Amount(0), cfg.Target(inventory.Ingot("Iron")))
}

func TestParse_TypeKeywords(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"Ingot", inventory.CategoryIngot},
		{"ingots", inventory.CategoryIngot},
		{"Components", inventory.CategoryComponent},
		{"Ammo", inventory.CategoryAmmunition},
		{"Ammunition", inventory.CategoryAmmunition},
		{"MyObjectBuilder_Ore", "MyObjectBuilder_Ore"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, targets.CategoryFor(tt.token))
		})
	}
}

func TestParse_DuplicateListIsIgnored(t *testing.T) {
	text := "Ingot\nlist Foo\nIron 10\nlist Foo\nIron 99\nproduction\nGold 5\n"

	cfg := targets.Parse(text)

	require.Len(t, cfg.Errors, 1)
	assert.Equal(t, 4, cfg.Errors[0].Line)
	foo, ok := cfg.List("Foo")
	require.True(t, ok)
	assert.Equal(t, inventory.Items(10), foo.Amount(inventory.Ingot("Iron")))
	assert.Equal(t, inventory.Items(5), cfg.Target(inventory.Ingot("Gold")))
	assert.Equal(t, []string{"Foo"}, cfg.ListNames())
}

func TestParse_ProductionReturnsToTargets(t *testing.T) {
	text := "Component\nlist Haul\nSteelPlate 100\nproduction\nSteelPlate 300\n"

	cfg := targets.Parse(text)

	require.Empty(t, cfg.Errors)
	haul, _ := cfg.List("Haul")
	assert.Equal(t, inventory.Items(100), haul.Amount(inventory.Component("SteelPlate")))
	assert.Equal(t, inventory.Items(300), cfg.Target(inventory.Component("SteelPlate")))
}

func TestParse_RepeatedEntriesAccumulate(t *testing.T) {
	cfg := targets.Parse("Ingot\nIron 100\nIron 50\n")

	assert.Equal(t, inventory.Items(150), cfg.Target(inventory.Ingot("Iron")))
}

func TestParse_ErrorsForMissingContextAndBadShape(t *testing.T) {
	text := "Iron 100\nIngot\nIron 1 2\nIron -5\n   \n# done\n"

	cfg := targets.Parse(text)

	require.Len(t, cfg.Errors, 3)
	assert.Equal(t, 1, cfg.Errors[0].Line)
	assert.Equal(t, 3, cfg.Errors[1].Line)
	assert.Equal(t, 4, cfg.Errors[2].Line)
	assert.Empty(t, cfg.Targets)
	assert.Contains(t, cfg.Summary(), "line 1")
}

func TestParse_WindowsLineEndings(t *testing.T) {
	cfg := targets.Parse("Ingot\r\nIron 500\r\n")

	require.Empty(t, cfg.Errors)
	assert.Equal(t, inventory.Items(500), cfg.Target(inventory.Ingot("Iron")))
}

func TestParse_AmountBeyondFixedPointRangeIsRejected(t *testing.T) {
	// Arrange
	text := "Ingot\nIron 10000000000000\nGold 5\n"

	// Act
	cfg := targets.Parse(text)

	// Assert
	require.Len(t, cfg.Errors, 1)
	assert.Equal(t, 2, cfg.Errors[0].Line)
	assert.Contains(t, cfg.Errors[0].Message, "must not exceed")
	assert.Equal(t, inventory.Amount(0), cfg.Target(inventory.Ingot("Iron")))
	assert.Equal(t, inventory.Items(5), cfg.Target(inventory.Ingot("Gold")))
}

func TestParse_AccumulatedAmountBeyondRangeIsRejected(t *testing.T) {
	limit := strconv.FormatInt(inventory.MaxItems, 10)
	text := "Ingot\nIron " + limit + "\nIron 1\nlist Foo\nIron " + limit + "\nIron " + limit + "\n"

	cfg := targets.Parse(text)

	require.Len(t, cfg.Errors, 2)
	assert.Equal(t, 3, cfg.Errors[0].Line)
	assert.Equal(t, 6, cfg.Errors[1].Line)
	assert.Equal(t, inventory.Items(inventory.MaxItems), cfg.Target(inventory.Ingot("Iron")))
	foo, ok := cfg.List("Foo")
	require.True(t, ok)
	assert.Equal(t, inventory.Items(inventory.MaxItems), foo.Amount(inventory.Ingot("Iron")))
}

func TestParse_ListWithoutNameIsRejected(t *testing.T) {
	cfg := targets.Parse("Ingot\nlist\nIron 5\n")

	require.Len(t, cfg.Errors, 1)
	assert.Equal(t, 2, cfg.Errors[0].Line)
	assert.Equal(t, "list needs a name", cfg.Errors[0].Message)
	assert.Empty(t, cfg.ListNames())
	assert.Equal(t, inventory.Items(5), cfg.Target(inventory.Ingot("Iron")))
	assert.Len(t, cfg.Targets, 1)
}
