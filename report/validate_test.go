package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		year    string
		month   string
		wantErr string
	}{
		{"valid", "7", "2024", "3", ""},
		{"year lower bound", "7", "1900", "1", ""},
		{"year upper bound", "7", "2100", "12", ""},
		{"non-numeric id", "abc", "2024", "3", "Invalid id. Must be a positive number"},
		{"zero id", "0", "2024", "3", "Invalid id. Must be a positive number"},
		{"negative id", "-4", "2024", "3", "Invalid id. Must be a positive number"},
		{"year too early", "7", "1899", "3", "Invalid year. Must be a valid year between 1900 and 2100"},
		{"year too late", "7", "2101", "3", "Invalid year. Must be a valid year between 1900 and 2100"},
		{"non-numeric year", "7", "twenty", "3", "Invalid year. Must be a valid year between 1900 and 2100"},
		{"month zero", "7", "2024", "0", "Invalid month. Must be between 1 and 12"},
		{"month thirteen", "7", "2024", "13", "Invalid month. Must be between 1 and 12"},
		{"non-numeric month", "7", "2024", "march", "Invalid month. Must be between 1 and 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParseParams(tt.id, tt.year, tt.month)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Positive(t, params.UserID)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantErr, vErr.Message)
		})
	}
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParseUserID("forty-two")
	require.Error(t, err)
	assert.Equal(t, "Invalid user ID. Must be a number", err.Error())
}

func TestParseQueryUserID(t *testing.T) {
	id, err := ParseQueryUserID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParseQueryUserID("x")
	require.Error(t, err)
	assert.Equal(t, "Invalid userid. Must be a number", err.Error())
}

func TestParseCreatedAt(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("future date allowed", func(t *testing.T) {
		future := now.Add(48 * time.Hour)
		got, err := ParseCreatedAt(future.Format(time.RFC3339), now)
		require.NoError(t, err)
		assert.True(t, got.Equal(future))
	})

	t.Run("past date rejected", func(t *testing.T) {
		yesterday := now.Add(-24 * time.Hour)
		_, err := ParseCreatedAt(yesterday.Format(time.RFC3339), now)
		require.Error(t, err)
		assert.Equal(t, "Cannot create cost with a date in the past", err.Error())
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := ParseCreatedAt("not-a-date", now)
		require.Error(t, err)
		assert.Equal(t, "Invalid createdAt. Must be a valid date", err.Error())
	})
}

func TestValidateSum(t *testing.T) {
	assert.NoError(t, ValidateSum(0))
	assert.NoError(t, ValidateSum(12.75))

	err := ValidateSum(-1)
	require.Error(t, err)
	assert.Equal(t, "Sum must be a positive number", err.Error())
}
