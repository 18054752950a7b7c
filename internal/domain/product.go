package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category discriminates which variant payload a product carries.
type Category string

// Product categories. The set is closed; a product is exactly one of these.
const (
	CategoryGame        Category = "game"
	CategoryHardware    Category = "hardware"
	CategoryMerchandise Category = "merchandise"
)

// ValidCategories returns the closed set of product categories.
func ValidCategories() []Category {
	return []Category{CategoryGame, CategoryHardware, CategoryMerchandise}
}

// IsValidCategory checks whether the given string names a valid category.
func IsValidCategory(s string) bool {
	for _, c := range ValidCategories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Sort keys accepted by the catalog listing. Unrecognized keys fall back
// silently to the default createdAt-descending ordering.
const (
	SortCreatedAt = "createdAt"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortName      = "name"
)

// Product is a catalog record. Category selects which of the three variant
// payloads is populated; exactly one is non-nil at a time. Rating is derived
// from reviews and never set directly by a client.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    Category  `json:"category"`
	InStock     bool      `json:"inStock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Game        *GameDetails        `json:"-"`
	Hardware    *HardwareDetails    `json:"-"`
	Merchandise *MerchandiseDetails `json:"-"`
}

// GameDetails is the variant payload for CategoryGame.
type GameDetails struct {
	Genre       []string  `json:"genre"`
	Platforms   []string  `json:"platforms"`
	ReleaseDate time.Time `json:"releaseDate"`
	Publisher   string    `json:"publisher"`
	Developer   string    `json:"developer"`
}

// HardwareDetails is the variant payload for CategoryHardware.
type HardwareDetails struct {
	Brand          string               `json:"brand"`
	ModelNumber    string               `json:"modelNumber"`
	Specs          map[string]SpecValue `json:"specs"`
	CompatibleWith []string             `json:"compatibleWith"`
}

// MerchandiseDetails is the variant payload for CategoryMerchandise.
// All fields are optional.
type MerchandiseDetails struct {
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
	Material  *string `json:"material,omitempty"`
	RelatedTo *string `json:"relatedTo,omitempty"`
}

// Details returns the populated variant payload for the product's category,
// or nil if the payload is missing.
func (p *Product) Details() any {
	switch p.Category {
	case CategoryGame:
		if p.Game != nil {
			return p.Game
		}
	case CategoryHardware:
		if p.Hardware != nil {
			return p.Hardware
		}
	case CategoryMerchandise:
		if p.Merchandise != nil {
			return p.Merchandise
		}
	}
	return nil
}

// Validate checks the product's structural invariants: required base fields,
// a valid category, and exactly one variant payload matching the category.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product rating must be within [0, 5]")
	}
	if !IsValidCategory(string(p.Category)) {
		return fmt.Errorf("invalid category %q", p.Category)
	}

	populated := 0
	if p.Game != nil {
		populated++
	}
	if p.Hardware != nil {
		populated++
	}
	if p.Merchandise != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("product must carry exactly one variant payload, has %d", populated)
	}

	switch p.Category {
	case CategoryGame:
		if p.Game == nil {
			return fmt.Errorf("category %q requires a game payload", p.Category)
		}
		if len(p.Game.Genre) == 0 {
			return fmt.Errorf("game genre must not be empty")
		}
		if len(p.Game.Platforms) == 0 {
			return fmt.Errorf("game platforms must not be empty")
		}
	case CategoryHardware:
		if p.Hardware == nil {
			return fmt.Errorf("category %q requires a hardware payload", p.Category)
		}
	case CategoryMerchandise:
		if p.Merchandise == nil {
			return fmt.Errorf("category %q requires a merchandise payload", p.Category)
		}
	}

	return nil
}

// productJSON is the flattened wire representation: variant fields sit at the
// top level next to the base fields, keyed by the category discriminator.
type productJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    Category  `json:"category"`
	InStock     bool      `json:"inStock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Game
	Genre       []string   `json:"genre,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Developer   string     `json:"developer,omitempty"`

	// Hardware
	Brand          string               `json:"brand,omitempty"`
	ModelNumber    string               `json:"modelNumber,omitempty"`
	Specs          map[string]SpecValue `json:"specs,omitempty"`
	CompatibleWith []string             `json:"compatibleWith,omitempty"`

	// Merchandise
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
	Material  *string `json:"material,omitempty"`
	RelatedTo *string `json:"relatedTo,omitempty"`
}

// MarshalJSON flattens the variant payload into the top-level object.
func (p Product) MarshalJSON() ([]byte, error) {
	out := productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		InStock:     p.InStock,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	switch p.Category {
	case CategoryGame:
		if p.Game != nil {
			out.Genre = p.Game.Genre
			out.Platforms = p.Game.Platforms
			rd := p.Game.ReleaseDate
			out.ReleaseDate = &rd
			out.Publisher = p.Game.Publisher
			out.Developer = p.Game.Developer
		}
	case CategoryHardware:
		if p.Hardware != nil {
			out.Brand = p.Hardware.Brand
			out.ModelNumber = p.Hardware.ModelNumber
			out.Specs = p.Hardware.Specs
			out.CompatibleWith = p.Hardware.CompatibleWith
		}
	case CategoryMerchandise:
		if p.Merchandise != nil {
			out.Size = p.Merchandise.Size
			out.Color = p.Merchandise.Color
			out.Material = p.Merchandise.Material
			out.RelatedTo = p.Merchandise.RelatedTo
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the variant payload from the flattened wire form.
func (p *Product) UnmarshalJSON(data []byte) error {
	var in productJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*p = Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		InStock:     in.InStock,
		Rating:      in.Rating,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}

	switch in.Category {
	case CategoryGame:
		game := &GameDetails{
			Genre:     in.Genre,
			Platforms: in.Platforms,
			Publisher: in.Publisher,
			Developer: in.Developer,
		}
		if in.ReleaseDate != nil {
			game.ReleaseDate = *in.ReleaseDate
		}
		p.Game = game
	case CategoryHardware:
		p.Hardware = &HardwareDetails{
			Brand:          in.Brand,
			ModelNumber:    in.ModelNumber,
			Specs:          in.Specs,
			CompatibleWith: in.CompatibleWith,
		}
	case CategoryMerchandise:
		p.Merchandise = &MerchandiseDetails{
			Size:      in.Size,
			Color:     in.Color,
			Material:  in.Material,
			RelatedTo: in.RelatedTo,
		}
	}

	return nil
}
