package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

// MealInput carries the replaceable fields of a meal.
type MealInput struct {
	Name        string
	Description string
	IsOnDiet    bool
	Date        time.Time
}

// MealService handles a user's meals. Every operation is scoped to userID.
type MealService interface {
	Create(ctx context.Context, userID uuid.UUID, in MealInput) (*model.Meal, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Meal, error)
	Update(ctx context.Context, userID, id uuid.UUID, in MealInput) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (model.MealSummary, error)
}

type mealService struct {
	repo repository.MealRepository
}

// NewMealService creates a new meal service.
func NewMealService(repo repository.MealRepository) MealService {
	return &mealService{repo: repo}
}

// Create records a meal owned by userID.
func (s *mealService) Create(ctx context.Context, userID uuid.UUID, in MealInput) (*model.Meal, error) {
	meal := &model.Meal{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		IsOnDiet:    in.IsOnDiet,
		Date:        in.Date.UnixMilli(),
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

// List returns the user's meals in creation order.
func (s *mealService) List(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	meals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// Get returns a meal owned by userID.
func (s *mealService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Meal, error) {
	meal, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealNotFound
		}
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return meal, nil
}

// Update replaces name, description, flag and date of a meal owned by userID.
func (s *mealService) Update(ctx context.Context, userID, id uuid.UUID, in MealInput) error {
	meal, err := s.ownedMeal(ctx, userID, id)
	if err != nil {
		return err
	}

	meal.Name = in.Name
	meal.Description = in.Description
	meal.IsOnDiet = in.IsOnDiet
	meal.Date = in.Date.UnixMilli()

	// MySQL reports zero rows when nothing changed, so the count is not checked
	if _, err := s.repo.UpdateForUser(ctx, meal); err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return nil
}

// Delete removes a meal owned by userID.
func (s *mealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedMeal(ctx, userID, id); err != nil {
		return err
	}

	n, err := s.repo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if n == 0 {
		// deleted concurrently
		return apperrors.ErrMealNotFound
	}
	return nil
}

// Summary aggregates the user's meals in creation order.
func (s *mealService) Summary(ctx context.Context, userID uuid.UUID) (model.MealSummary, error) {
	meals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return model.MealSummary{}, fmt.Errorf("list meals: %w", err)
	}
	return model.Summarize(meals), nil
}

// ownedMeal loads meal id and applies the ownership predicate.
// A meal owned by someone else is reported exactly like a missing one.
func (s *mealService) ownedMeal(ctx context.Context, userID, id uuid.UUID) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	if !meal.OwnedBy(userID) {
		return nil, apperrors.ErrMealNotFound
	}
	return meal, nil
}
