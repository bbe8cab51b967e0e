package router

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dailydiet/internal/model"
	"dailydiet/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) SignOut(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, sessionID string) (*model.User, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockMealService is a mock implementation of service.MealService.
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) Create(ctx context.Context, userID uuid.UUID, in service.MealInput) (*model.Meal, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) List(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MockMealService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Meal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Update(ctx context.Context, userID, id uuid.UUID, in service.MealInput) error {
	args := m.Called(ctx, userID, id, in)
	return args.Error(0)
}

func (m *MockMealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMealService) Summary(ctx context.Context, userID uuid.UUID) (model.MealSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.MealSummary), args.Error(1)
}
