package rowcodec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Date is a calendar date without a time of day, rendered as
// datetime.date(2023, 10, 5).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf drops the clock part of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// DateTime is a wall clock timestamp, rendered as
// datetime.datetime(2023, 10, 5, 14, 30, 12).
type DateTime struct {
	time.Time
}

func (d DateTime) String() string {
	return d.Time.Format("2006-01-02 15:04:05.999999")
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Decimal keeps the exact textual value of a NUMERIC/DECIMAL column.
type Decimal string

func (d Decimal) String() string {
	return string(d)
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(d), 64); err == nil {
		return []byte(d), nil
	}
	return json.Marshal(string(d))
}

// Tuple is an immutable sequence, as opposed to a list.
type Tuple []any
