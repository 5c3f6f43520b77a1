package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
	"github.com/pageza/pantrychef/backend/migrations"
)

const password = "testpassword123"

type seedUser struct {
	email    string
	username string
	language string
	taste    types.TasteProfileRequest
	pantry   []string
	leftover []types.LeftoverRequest
}

var testUsers = []seedUser{
	{
		email:    "john.doe@example.com",
		username: "johndoe",
		language: "en",
		taste: types.TasteProfileRequest{
			Likes:      []string{"garlic", "lemon"},
			Dislikes:   []string{"cilantro"},
			SpiceLevel: 3,
		},
		pantry: []string{"chicken breast", "rice", "garlic", "onion", "cilantro"},
		leftover: []types.LeftoverRequest{
			{IngredientName: "rice", Quantity: "2 cups", State: "cooked"},
		},
	},
	{
		email:    "jane.smith@example.com",
		username: "janesmith",
		language: "zh",
		taste: types.TasteProfileRequest{
			DietaryPreferences: []string{"vegetarian"},
			Allergies:          []string{"peanut"},
			SpiceLevel:         5,
			OilPreference:      "low",
		},
		pantry: []string{"tofu", "bok choy", "ginger", "peanut"},
	},
	{
		email:    "empty.pantry@example.com",
		username: "emptypantry",
		language: "en",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		common.LogFatal("Failed to load configuration", zap.Error(err))
	}
	common.InitLogger(cfg.Log.Level, cfg.Log.Mode)
	defer common.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(ctx, db, migrations.FS()); err != nil {
		common.LogFatal("Failed to migrate database", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())
	profiles := service.NewTasteProfileService(db)
	pantry := service.NewPantryService(db)
	leftovers := service.NewLeftoverService(db)

	for _, u := range testUsers {
		user, err := auth.Register(ctx, types.RegisterRequest{
			Username:          u.username,
			Email:             u.email,
			Password:          password,
			PreferredLanguage: u.language,
		})
		if errors.Is(err, service.ErrUserExists) {
			common.LogInfo("User already exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			common.LogFatal("Failed to create user", zap.String("email", u.email), zap.Error(err))
		}

		if _, err := profiles.Replace(ctx, user.ID, u.taste); err != nil {
			common.LogFatal("Failed to set taste profile", zap.String("email", u.email), zap.Error(err))
		}

		items := make([]types.PantryItemRequest, 0, len(u.pantry))
		for _, name := range u.pantry {
			items = append(items, types.PantryItemRequest{IngredientName: name})
		}
		if _, err := pantry.BulkReplace(ctx, user.ID, items); err != nil {
			common.LogFatal("Failed to seed pantry", zap.String("email", u.email), zap.Error(err))
		}

		for _, l := range u.leftover {
			if _, err := leftovers.Add(ctx, user.ID, l); err != nil {
				common.LogFatal("Failed to seed leftovers", zap.String("email", u.email), zap.Error(err))
			}
		}

		common.LogInfo("Created test user",
			zap.String("email", u.email),
			zap.Int("pantry_items", len(items)),
			zap.Int("leftovers", len(u.leftover)))
	}

	common.LogInfo("Test users seeded", zap.String("password", password))
}
