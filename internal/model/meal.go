package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is a single meal recorded by its owner.
type Meal struct {
	ID uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	// Seq preserves insertion order; ids are random so they cannot.
	Seq         uint64    `json:"-" gorm:"autoIncrement;uniqueIndex;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IsOnDiet    bool      `json:"is_on_diet" gorm:"not null"`
	Date        int64     `json:"date" gorm:"not null"` // epoch milliseconds
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether userID owns the meal.
func (m *Meal) OwnedBy(userID uuid.UUID) bool {
	return m != nil && m.UserID == userID
}
