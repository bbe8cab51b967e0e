package model

// MealSummary aggregates a user's meals.
type MealSummary struct {
	TotalMeals          int `json:"totalMeals"`
	TotalMealsOnDiet    int `json:"totalMealsOnDiet"`
	TotalMealsNotOnDiet int `json:"totalMealsNotOnDiet"`
	// OnDietMealsStreak is the longest run of consecutive on-diet meals in creation order.
	OnDietMealsStreak int `json:"onDietMealsStreak"`
}

// Summarize computes the summary over meals in the order given.
func Summarize(meals []Meal) MealSummary {
	var s MealSummary
	current := 0
	for _, meal := range meals {
		s.TotalMeals++
		if !meal.IsOnDiet {
			s.TotalMealsNotOnDiet++
			current = 0
			continue
		}
		s.TotalMealsOnDiet++
		current++
		if current > s.OnDietMealsStreak {
			s.OnDietMealsStreak = current
		}
	}
	return s
}
