package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/auth"
	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/db"
	apperrors "dailydiet/internal/errors"
	"dailydiet/internal/handler"
	"dailydiet/internal/logger"
	"dailydiet/internal/repository"
	"dailydiet/internal/service"
)

// SeedMeal is one entry of the meals fixture file.
type SeedMeal struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IsOnDiet    bool             `json:"isOnDiet"`
	Date        handler.MealDate `json:"date"`
}

// defaultMeals is used when no fixture file is given. Its summary is
// 4 meals, 3 on diet, 1 off, best streak 2.
var defaultMeals = []SeedMeal{
	{Name: "Oatmeal", Description: "Oats with banana", IsOnDiet: true, Date: 1710057600000},
	{Name: "Grilled chicken", Description: "Chicken breast and rice", IsOnDiet: true, Date: 1710072000000},
	{Name: "Burger", Description: "Delicious Burger", IsOnDiet: false, Date: 1710093600000},
	{Name: "Salad", Description: "", IsOnDiet: true, Date: 1710144000000},
}

func main() {
	name := flag.String("name", "Demo User", "demo user name")
	email := flag.String("email", "demo@dailydiet.local", "demo user email")
	password := flag.String("password", "12345678", "demo user password")
	file := flag.String("meals", "", "path to a JSON array of meals; built-in set when empty")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Starting seed script...")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.Migrate(gormDB, false, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Database migrations completed")

	meals := defaultMeals
	if *file != "" {
		meals, err = loadMeals(*file)
		if err != nil {
			log.WithError(err).Fatal("Failed to load meals")
		}
		log.Infof("Loaded %d meals from %s", len(meals), *file)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewSessionStore(cacheClient, cfg.SessionTTL), log)
	mealService := service.NewMealService(repository.NewMealRepository(gormDB))

	ctx := context.Background()

	if _, err := authService.SignUp(ctx, *name, *email, *password); err != nil {
		if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
			log.WithError(err).Fatal("Failed to create demo user")
		}
		log.WithField("email", *email).Info("Demo user already exists")
	}

	user, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		log.WithError(err).Fatal("Failed to load demo user")
	}

	seeded, err := seedMeals(ctx, mealService, user.ID, meals, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed meals")
	}

	log.WithFields(logrus.Fields{
		"email":  *email,
		"seeded": seeded,
	}).Info("Seed completed successfully!")
}

// loadMeals reads a JSON array of meals from path.
func loadMeals(path string) ([]SeedMeal, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var meals []SeedMeal
	if err := json.Unmarshal(body, &meals); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return meals, nil
}

// seedMeals records meals for userID unless the user already has some.
func seedMeals(ctx context.Context, svc service.MealService, userID uuid.UUID, meals []SeedMeal, log logrus.FieldLogger) (int, error) {
	existing, err := svc.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error listing meals: %w", err)
	}
	if len(existing) > 0 {
		log.WithField("meals", len(existing)).Info("Demo user already has meals, skipping")
		return 0, nil
	}

	seeded := 0
	for _, m := range meals {
		if m.Name == "" {
			log.WithField("date", int64(m.Date)).Warn("Skipping meal without a name")
			continue
		}
		in := service.MealInput{
			Name:        m.Name,
			Description: m.Description,
			IsOnDiet:    m.IsOnDiet,
			Date:        m.Date.Time(),
		}
		if _, err := svc.Create(ctx, userID, in); err != nil {
			return seeded, fmt.Errorf("error creating meal %q: %w", m.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
