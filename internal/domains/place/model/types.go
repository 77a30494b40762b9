package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DailyStats maps a YYYY-MM-DD date to the visitors booked for it.
type DailyStats map[string]int

func (d DailyStats) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}

	payload, err := json.Marshal(map[string]int(d))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal daily stats: %w", err)
	}

	return string(payload), nil
}

func (d *DailyStats) Scan(src any) error {
	stats := DailyStats{}

	if err := scanJSON(src, &stats); err != nil {
		return fmt.Errorf("failed to scan daily stats: %w", err)
	}

	*d = stats

	return nil
}

// StringList is an ordered list stored as a JSON array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	payload, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}

	return string(payload), nil
}

// Without returns a copy of the list with every occurrence of value removed.
func (l StringList) Without(value string) StringList {
	out := make(StringList, 0, len(l))

	for _, item := range l {
		if item != value {
			out = append(out, item)
		}
	}

	return out
}

func (l *StringList) Scan(src any) error {
	list := StringList{}

	if err := scanJSON(src, &list); err != nil {
		return fmt.Errorf("failed to scan string list: %w", err)
	}

	*l = list

	return nil
}

func scanJSON(src, dst any) error {
	var payload []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T", src)
	}

	if len(payload) == 0 {
		return nil
	}

	return json.Unmarshal(payload, dst) //nolint:wrapcheck
}
