package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"epoch millis", `1710073800000`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"numeric string", `"1710073800000"`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"rfc3339", `"2024-03-10T12:30:00Z"`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"rfc3339 offset", `"2024-03-10T15:30:00+03:00"`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"rfc3339 millis", `"2024-03-10T12:30:00.250Z"`, time.Date(2024, 3, 10, 12, 30, 0, 250e6, time.UTC)},
		{"no zone", `"2024-03-10T12:30:00"`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"space separated", `"2024-03-10 12:30:00"`, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		{"date only", `"2024-03-10"`, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"upper bound", `8640000000000000`, time.UnixMilli(8640000000000000)},
		{"lower bound", `"-8640000000000000"`, time.UnixMilli(-8640000000000000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d MealDate
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want.UnixMilli(), int64(d))
			assert.True(t, d.Time().Equal(tt.want))
		})
	}
}

func TestMealDate_UnmarshalJSON_Invalid(t *testing.T) {
	for _, input := range []string{
		`"yesterday"`, `""`, `true`, `{}`,
		`1e20`, `-1e300`, `8640000000000001`, `-8640000000000001`,
		`"99999999999999999"`, `"-8640000000000001"`,
		`1.5`, `1e400`,
	} {
		var d MealDate
		assert.Error(t, json.Unmarshal([]byte(input), &d), input)
	}
}

func TestMealRequest_MissingFieldsStayNil(t *testing.T) {
	var req MealRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Salad","isOnDiet":false}`), &req))

	require.NotNil(t, req.Name)
	assert.Equal(t, "Salad", *req.Name)
	require.NotNil(t, req.IsOnDiet)
	assert.False(t, *req.IsOnDiet)
	assert.Nil(t, req.Description)
	assert.Nil(t, req.Date)
}

func TestMealRequest_ToInput(t *testing.T) {
	var req MealRequest
	require.NoError(t, json.Unmarshal([]byte(
		`{"name":"Burger","description":"","isOnDiet":true,"date":1710073800000}`), &req))

	in := req.toInput()

	assert.Equal(t, "Burger", in.Name)
	assert.Equal(t, "", in.Description)
	assert.True(t, in.IsOnDiet)
	assert.Equal(t, int64(1710073800000), in.Date.UnixMilli())
}
