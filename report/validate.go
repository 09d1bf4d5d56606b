package report

import (
	"strconv"
	"time"
)

// ValidationError carries the human-readable message returned to the
// client on malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// Params is the validated (userId, year, month) triple of a report
// request.
type Params struct {
	UserID int
	Year   int
	Month  int
}

// ParseParams bounds-checks the raw report query values: a positive
// user id, a year in [1900, 2100] and a month in [1, 12].
func ParseParams(id, year, month string) (Params, error) {
	userID, err := strconv.Atoi(id)
	if err != nil || userID <= 0 {
		return Params{}, invalid("Invalid id. Must be a positive number")
	}

	yearNum, err := strconv.Atoi(year)
	if err != nil || yearNum < 1900 || yearNum > 2100 {
		return Params{}, invalid("Invalid year. Must be a valid year between 1900 and 2100")
	}

	monthNum, err := strconv.Atoi(month)
	if err != nil || monthNum < 1 || monthNum > 12 {
		return Params{}, invalid("Invalid month. Must be between 1 and 12")
	}

	return Params{UserID: userID, Year: yearNum, Month: monthNum}, nil
}

// ParseUserID parses a path-style user id.
func ParseUserID(raw string) (int, error) {
	userID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("Invalid user ID. Must be a number")
	}
	return userID, nil
}

// ParseQueryUserID parses the userid query parameter of a cost listing.
func ParseQueryUserID(raw string) (int, error) {
	userID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("Invalid userid. Must be a number")
	}
	return userID, nil
}

// ParseCreatedAt validates an explicit cost creation time. Future
// dates are allowed; anything before now is rejected to keep the
// ledger append-only.
func ParseCreatedAt(raw string, now time.Time) (time.Time, error) {
	createdAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalid("Invalid createdAt. Must be a valid date")
	}
	if createdAt.Before(now) {
		return time.Time{}, invalid("Cannot create cost with a date in the past")
	}
	return createdAt, nil
}

// ValidateSum bounds-checks a cost sum.
func ValidateSum(sum float64) error {
	if sum < 0 {
		return invalid("Sum must be a positive number")
	}
	return nil
}
