package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/service"
)

// MealHandler handles meal endpoints. All routes sit behind the session guard.
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (r MealRequest) toInput() service.MealInput {
	return service.MealInput{
		Name:        *r.Name,
		Description: *r.Description,
		IsOnDiet:    *r.IsOnDiet,
		Date:        r.Date.Time(),
	}
}

// Create godoc
// @Summary Record a meal
// @Tags meals
// @Accept json
// @Security SessionCookie
// @Param request body MealRequest true "Meal"
// @Success 201
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /meals [post]
func (h *MealHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req MealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.mealService.Create(c.Request().Context(), user.ID, req.toInput()); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// List godoc
// @Summary List the current user's meals in creation order
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Success 200 {object} MealsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /meals [get]
func (h *MealHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	meals, err := h.mealService.List(c.Request().Context(), user.ID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MealsResponse{Meals: meals})
}

// Get godoc
// @Summary Get one of the current user's meals
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Success 200 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [get]
func (h *MealHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseMealID(c)
	if err != nil {
		return err
	}

	meal, err := h.mealService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MealResponse{Meal: meal})
}

// Update godoc
// @Summary Replace one of the current user's meals
// @Tags meals
// @Accept json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Param request body MealRequest true "Meal"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [put]
func (h *MealHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseMealID(c)
	if err != nil {
		return err
	}

	var req MealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.mealService.Update(c.Request().Context(), user.ID, id, req.toInput()); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete one of the current user's meals
// @Tags meals
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseMealID(c)
	if err != nil {
		return err
	}

	if err := h.mealService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary godoc
// @Summary Meal counts and the longest on-diet streak
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /meals/summary [get]
func (h *MealHandler) Summary(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.mealService.Summary(c.Request().Context(), user.ID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
