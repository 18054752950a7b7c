// Command seed populates the catalog database with a sample product set for
// local development.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/gamestore/internal/config"
	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/repository/postgres"
	"github.com/utafrali/gamestore/migrations"
	"github.com/utafrali/gamestore/pkg/database"
	"github.com/utafrali/gamestore/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("catalog-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pgCfg := database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
		MaxConns: 5,
		MinConns: 1,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	repo := postgres.NewProductRepository(pool)

	for _, p := range sampleCatalog() {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid sample product %q: %w", p.Name, err)
		}
		if err := repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
		log.Info("product seeded",
			slog.String("id", p.ID),
			slog.String("name", p.Name),
			slog.String("category", string(p.Category)),
		)
	}

	log.Info("seeding complete")
	return nil
}

func strPtr(s string) *string { return &s }

func sampleCatalog() []domain.Product {
	now := time.Now().UTC()

	newProduct := func(name, description string, price float64, category domain.Category) domain.Product {
		return domain.Product{
			ID:          uuid.New().String(),
			Name:        name,
			Description: description,
			Price:       price,
			ImageURL:    "https://cdn.gamestore.example/" + uuid.New().String() + ".jpg",
			Category:    category,
			InStock:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	starfall := newProduct("Starfall Odyssey", "Open-world space RPG with a branching story", 59.99, domain.CategoryGame)
	starfall.Game = &domain.GameDetails{
		Genre:       []string{"rpg", "adventure"},
		Platforms:   []string{"pc", "ps5", "xbox"},
		ReleaseDate: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		Publisher:   "Nebula Interactive",
		Developer:   "Orbit Forge",
	}

	circuitRush := newProduct("Circuit Rush", "Arcade racer with online championships", 39.99, domain.CategoryGame)
	circuitRush.Game = &domain.GameDetails{
		Genre:       []string{"racing", "arcade"},
		Platforms:   []string{"pc", "switch"},
		ReleaseDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		Publisher:   "Apex Games",
		Developer:   "Apex Games",
	}

	dungeonTide := newProduct("Dungeon Tide", "Co-op roguelike dungeon crawler", 24.99, domain.CategoryGame)
	dungeonTide.Game = &domain.GameDetails{
		Genre:       []string{"roguelike", "co-op"},
		Platforms:   []string{"pc"},
		ReleaseDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		Publisher:   "Tidepool Studio",
		Developer:   "Tidepool Studio",
	}

	controller := newProduct("Vortex Pro Controller", "Low-latency wireless controller", 69.00, domain.CategoryHardware)
	controller.Hardware = &domain.HardwareDetails{
		Brand:       "Vortex",
		ModelNumber: "VX-200",
		Specs: map[string]domain.SpecValue{
			"wireless":     domain.BoolSpec(true),
			"weightGrams":  domain.NumberSpec(260),
			"batteryHours": domain.NumberSpec(40),
			"finish":       domain.StringSpec("matte black"),
		},
		CompatibleWith: []string{"pc", "xbox"},
	}

	headset := newProduct("Echo Surround Headset", "7.1 surround headset with detachable mic", 89.50, domain.CategoryHardware)
	headset.Hardware = &domain.HardwareDetails{
		Brand:       "Echo Audio",
		ModelNumber: "EA-71",
		Specs: map[string]domain.SpecValue{
			"wireless":  domain.BoolSpec(false),
			"driverMm":  domain.NumberSpec(50),
			"connector": domain.StringSpec("usb-c"),
		},
		CompatibleWith: []string{"pc", "ps5", "switch"},
	}

	hoodie := newProduct("Starfall Odyssey Hoodie", "Embroidered crew hoodie", 44.00, domain.CategoryMerchandise)
	hoodie.Merchandise = &domain.MerchandiseDetails{
		Size:      strPtr("L"),
		Color:     strPtr("navy"),
		Material:  strPtr("cotton blend"),
		RelatedTo: strPtr("Starfall Odyssey"),
	}

	figurine := newProduct("Dungeon Tide Figurine", "Hand-painted collectible figurine", 29.99, domain.CategoryMerchandise)
	figurine.Merchandise = &domain.MerchandiseDetails{
		Material:  strPtr("resin"),
		RelatedTo: strPtr("Dungeon Tide"),
	}

	return []domain.Product{
		starfall, circuitRush, dungeonTide,
		controller, headset,
		hoodie, figurine,
	}
}
