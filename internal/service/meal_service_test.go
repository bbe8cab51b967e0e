package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dailydiet/internal/errors"
	"dailydiet/internal/model"
)

func TestMealService_Create(t *testing.T) {
	mockRepo := new(MockMealRepository)
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Meal) bool {
		return m.UserID == userID && m.Name == "Burger" && !m.IsOnDiet && m.Date == date.UnixMilli() && m.ID != uuid.Nil
	})).Return(nil)

	svc := NewMealService(mockRepo)
	meal, err := svc.Create(context.Background(), userID, MealInput{
		Name:        "Burger",
		Description: "Delicious Burger",
		IsOnDiet:    false,
		Date:        date,
	})

	require.NoError(t, err)
	assert.Equal(t, "Delicious Burger", meal.Description)
	mockRepo.AssertExpectations(t)
}

func TestMealService_Get(t *testing.T) {
	userID, mealID := uuid.New(), uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockMealRepository)
		expectedError error
	}{
		{
			name: "owned meal",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByIDForUser", mock.Anything, mealID, userID).Return(&model.Meal{ID: mealID, UserID: userID}, nil)
			},
		},
		{
			name: "missing or owned by someone else",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByIDForUser", mock.Anything, mealID, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMealNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMealRepository)
			tt.setupMock(mockRepo)

			meal, err := NewMealService(mockRepo).Get(context.Background(), userID, mealID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, meal)
			} else {
				require.NoError(t, err)
				assert.Equal(t, mealID, meal.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMealService_Update(t *testing.T) {
	userID, otherUser, mealID := uuid.New(), uuid.New(), uuid.New()
	input := MealInput{Name: "Pizza", Description: "Cheesy", IsOnDiet: true, Date: time.UnixMilli(1700000000000)}

	tests := []struct {
		name          string
		setupMock     func(*MockMealRepository)
		expectUpdate  bool
		expectedError error
	}{
		{
			name: "owner replaces all fields",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, mealID).Return(&model.Meal{ID: mealID, UserID: userID, Name: "Burger"}, nil)
				m.On("UpdateForUser", mock.Anything, mock.MatchedBy(func(meal *model.Meal) bool {
					return meal.ID == mealID && meal.UserID == userID && meal.Name == "Pizza" &&
						meal.Description == "Cheesy" && meal.IsOnDiet && meal.Date == 1700000000000
				})).Return(int64(1), nil)
			},
			expectUpdate: true,
		},
		{
			name: "meal owned by another user is not found",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, mealID).Return(&model.Meal{ID: mealID, UserID: otherUser}, nil)
			},
			expectedError: apperrors.ErrMealNotFound,
		},
		{
			name: "unknown meal",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, mealID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMealNotFound,
		},
		{
			name: "unchanged row is still a success",
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, mealID).Return(&model.Meal{ID: mealID, UserID: userID}, nil)
				m.On("UpdateForUser", mock.Anything, mock.Anything).Return(int64(0), nil)
			},
			expectUpdate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMealRepository)
			tt.setupMock(mockRepo)

			err := NewMealService(mockRepo).Update(context.Background(), userID, mealID, input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			if !tt.expectUpdate {
				mockRepo.AssertNotCalled(t, "UpdateForUser", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMealService_DeleteTwice(t *testing.T) {
	userID, mealID := uuid.New(), uuid.New()
	mockRepo := new(MockMealRepository)

	mockRepo.On("FindByID", mock.Anything, mealID).Return(&model.Meal{ID: mealID, UserID: userID}, nil).Once()
	mockRepo.On("DeleteForUser", mock.Anything, mealID, userID).Return(int64(1), nil).Once()
	mockRepo.On("FindByID", mock.Anything, mealID).Return(nil, gorm.ErrRecordNotFound).Once()

	svc := NewMealService(mockRepo)
	assert.NoError(t, svc.Delete(context.Background(), userID, mealID))
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, mealID), apperrors.ErrMealNotFound)
	mockRepo.AssertExpectations(t)
}

func TestMealService_DeleteForeignMeal(t *testing.T) {
	userID, mealID := uuid.New(), uuid.New()
	mockRepo := new(MockMealRepository)
	mockRepo.On("FindByID", mock.Anything, mealID).Return(&model.Meal{ID: mealID, UserID: uuid.New()}, nil)

	err := NewMealService(mockRepo).Delete(context.Background(), userID, mealID)
	assert.ErrorIs(t, err, apperrors.ErrMealNotFound)
	mockRepo.AssertNotCalled(t, "DeleteForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestMealService_List(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockMealRepository)
	mockRepo.On("ListByUser", mock.Anything, userID).Return([]model.Meal{{Name: "Burger"}, {Name: "Pizza"}}, nil)

	meals, err := NewMealService(mockRepo).List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Burger", meals[0].Name)
	assert.Equal(t, "Pizza", meals[1].Name)
}

func TestMealService_Summary(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockMealRepository)
	mockRepo.On("ListByUser", mock.Anything, userID).Return([]model.Meal{
		{IsOnDiet: true}, {IsOnDiet: true}, {IsOnDiet: false}, {IsOnDiet: true},
	}, nil)

	summary, err := NewMealService(mockRepo).Summary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.MealSummary{
		TotalMeals:          4,
		TotalMealsOnDiet:    3,
		TotalMealsNotOnDiet: 1,
		OnDietMealsStreak:   2,
	}, summary)
}

func TestMealService_SummaryRepositoryError(t *testing.T) {
	mockRepo := new(MockMealRepository)
	mockRepo.On("ListByUser", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewMealService(mockRepo).Summary(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.False(t, apperrors.IsDomain(err))
}
