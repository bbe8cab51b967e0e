package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.User, error)
	UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID *string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateSessionID overwrites the user's session identifier; nil clears it.
func (r *userRepository) UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("session_id", sessionID).Error
}
