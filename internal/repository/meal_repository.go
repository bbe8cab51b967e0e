package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/model"
)

// MealRepository defines meal persistence operations.
// Methods suffixed ForUser filter by owner as well as id.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Meal, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Meal, error)
	UpdateForUser(ctx context.Context, meal *model.Meal) (int64, error)
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create creates a new meal.
func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Omit("User").Create(meal).Error
}

// ListByUser lists a user's meals in creation order.
func (r *mealRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	meals := make([]model.Meal, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("seq ASC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// FindByID finds a meal by ID regardless of owner.
func (r *mealRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// FindByIDForUser finds a meal by ID owned by userID.
func (r *mealRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateForUser replaces name, description, flag and date of meal.ID owned by meal.UserID.
// It returns the number of rows changed.
func (r *mealRepository) UpdateForUser(ctx context.Context, meal *model.Meal) (int64, error) {
	// map form so a false flag is still written
	res := r.db.WithContext(ctx).Model(&model.Meal{}).
		Where("id = ? AND user_id = ?", meal.ID, meal.UserID).
		Updates(map[string]interface{}{
			"name":        meal.Name,
			"description": meal.Description,
			"is_on_diet":  meal.IsOnDiet,
			"date":        meal.Date,
		})
	return res.RowsAffected, res.Error
}

// DeleteForUser deletes meal id owned by userID and returns the number of rows removed.
func (r *mealRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Meal{})
	return res.RowsAffected, res.Error
}
