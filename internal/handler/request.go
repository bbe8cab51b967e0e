package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/model"
)

// MealDate is a consumption time in epoch milliseconds. It decodes from a
// JSON number (milliseconds) or a date/date-time string.
type MealDate int64

const maxMealDateMillis = 8.64e15

var mealDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *MealDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var ms float64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("date: %w", err)
		}
		return d.setMillis(ms)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return d.setMillis(float64(ms))
	}
	for _, layout := range mealDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = MealDate(t.UnixMilli())
			return nil
		}
	}
	return fmt.Errorf("date: cannot parse %q", s)
}

// setMillis accepts whole milliseconds within ±8.64e15, the range a
// JavaScript Date can represent.
func (d *MealDate) setMillis(ms float64) error {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxMealDateMillis {
		return fmt.Errorf("date: %v out of range", ms)
	}
	if ms != math.Trunc(ms) {
		return fmt.Errorf("date: %v is not whole milliseconds", ms)
	}
	*d = MealDate(int64(ms))
	return nil
}

// Time converts the date to time.Time.
func (d MealDate) Time() time.Time {
	return time.UnixMilli(int64(d))
}

// MealRequest is the body of meal create and update.
// Pointers distinguish a missing field from its zero value.
type MealRequest struct {
	Name        *string   `json:"name" validate:"required,min=1" example:"Burger"`
	Description *string   `json:"description" validate:"required" example:"Delicious Burger"`
	IsOnDiet    *bool     `json:"isOnDiet" validate:"required" example:"false"`
	Date        *MealDate `json:"date" validate:"required" swaggertype:"string" example:"2024-03-10T12:30:00Z"`
}

// MealsResponse wraps a meal list.
type MealsResponse struct {
	Meals []model.Meal `json:"meals"`
}

// MealResponse wraps a single meal.
type MealResponse struct {
	Meal *model.Meal `json:"meal"`
}

// SummaryResponse wraps the meal summary.
type SummaryResponse struct {
	Summary model.MealSummary `json:"summary"`
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
		}).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
		})
	}
	return nil
}

// domainError converts a service error into an echo HTTP error.
func domainError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func parseMealID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid meal id",
		})
	}
	return id, nil
}

func currentUser(c echo.Context) (*model.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "Unauthorized"})
	}
	return user, nil
}
