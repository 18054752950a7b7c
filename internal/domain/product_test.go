package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameProduct() Product {
	return Product{
		ID:          "8c5f76f1-1f21-4f2b-96c5-8b1d83cb1e01",
		Name:        "Starfall Odyssey",
		Description: "Open-world space RPG",
		Price:       59.99,
		ImageURL:    "https://cdn.example.com/starfall.jpg",
		Category:    CategoryGame,
		InStock:     true,
		Rating:      4.5,
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		Game: &GameDetails{
			Genre:       []string{"rpg", "adventure"},
			Platforms:   []string{"pc", "ps5"},
			ReleaseDate: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			Publisher:   "Nebula Interactive",
			Developer:   "Orbit Forge",
		},
	}
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("game"))
	assert.True(t, IsValidCategory("hardware"))
	assert.True(t, IsValidCategory("merchandise"))
	assert.False(t, IsValidCategory("Game"))
	assert.False(t, IsValidCategory("toys"))
	assert.False(t, IsValidCategory(""))
}

func TestProductMarshalFlattensGameFields(t *testing.T) {
	data, err := json.Marshal(gameProduct())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "game", raw["category"])
	assert.Equal(t, []any{"rpg", "adventure"}, raw["genre"])
	assert.Equal(t, []any{"pc", "ps5"}, raw["platforms"])
	assert.Equal(t, "Nebula Interactive", raw["publisher"])
	assert.NotContains(t, raw, "brand")
	assert.NotContains(t, raw, "specs")
	assert.NotContains(t, raw, "size")
}

func TestProductMarshalFlattensHardwareFields(t *testing.T) {
	p := Product{
		ID:       "2f0c7a14-5f1a-4d8f-9a43-08a2bcd9e002",
		Name:     "Vortex Controller",
		Price:    69.0,
		Category: CategoryHardware,
		InStock:  true,
		Hardware: &HardwareDetails{
			Brand:       "Vortex",
			ModelNumber: "VX-200",
			Specs: map[string]SpecValue{
				"wireless": BoolSpec(true),
				"weightG":  NumberSpec(260),
				"finish":   StringSpec("matte"),
			},
			CompatibleWith: []string{"pc", "xbox"},
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "Vortex", raw["brand"])
	assert.Equal(t, "VX-200", raw["modelNumber"])
	specs, ok := raw["specs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, specs["wireless"])
	assert.Equal(t, float64(260), specs["weightG"])
	assert.Equal(t, "matte", specs["finish"])
	assert.NotContains(t, raw, "genre")
}

func TestProductJSONRoundTrip(t *testing.T) {
	want := gameProduct()

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Product
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Category, got.Category)
	require.NotNil(t, got.Game)
	assert.Equal(t, want.Game.Genre, got.Game.Genre)
	assert.Equal(t, want.Game.Platforms, got.Game.Platforms)
	assert.True(t, want.Game.ReleaseDate.Equal(got.Game.ReleaseDate))
	assert.Nil(t, got.Hardware)
	assert.Nil(t, got.Merchandise)
}

func TestProductValidate(t *testing.T) {
	t.Run("valid game", func(t *testing.T) {
		p := gameProduct()
		assert.NoError(t, p.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		p := gameProduct()
		p.Name = ""
		assert.Error(t, p.Validate())
	})

	t.Run("negative price", func(t *testing.T) {
		p := gameProduct()
		p.Price = -1
		assert.Error(t, p.Validate())
	})

	t.Run("unknown category", func(t *testing.T) {
		p := gameProduct()
		p.Category = "toys"
		assert.Error(t, p.Validate())
	})

	t.Run("payload does not match category", func(t *testing.T) {
		p := gameProduct()
		p.Game = nil
		p.Hardware = &HardwareDetails{Brand: "Vortex"}
		assert.Error(t, p.Validate())
	})

	t.Run("two payloads", func(t *testing.T) {
		p := gameProduct()
		p.Hardware = &HardwareDetails{Brand: "Vortex"}
		assert.Error(t, p.Validate())
	})

	t.Run("game without platforms", func(t *testing.T) {
		p := gameProduct()
		p.Game.Platforms = nil
		assert.Error(t, p.Validate())
	})
}

func TestProductDetails(t *testing.T) {
	p := gameProduct()
	details, ok := p.Details().(*GameDetails)
	require.True(t, ok)
	assert.Equal(t, p.Game, details)

	p.Game = nil
	assert.Nil(t, p.Details())
}
