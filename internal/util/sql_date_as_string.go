package util

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateAsString is a calendar date stored as a "YYYY-MM-DD" TEXT column,
// the natural sort order of the text is the chronological order.
type DateAsString string

func NewDateAsString(t time.Time) DateAsString {
	return DateAsString(t.Format(dateLayout))
}

func ParseDateAsString(str string) (DateAsString, error) {
	if _, err := time.Parse(dateLayout, str); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", str, err)
	}

	return DateAsString(str), nil
}

func (d DateAsString) Value() (driver.Value, error) {
	return driver.Value(string(d)), nil
}

func (d DateAsString) String() string {
	return string(d)
}

func (d DateAsString) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}

	return t
}

func (d *DateAsString) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*d = DateAsString(src)
	case string:
		*d = DateAsString(src)
	default:
		return fmt.Errorf("expected []byte or string, got %T", src)
	}

	return nil
}
