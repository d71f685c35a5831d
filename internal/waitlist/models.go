package waitlist

import (
	"encoding/json"
	"strconv"
)

// WeekCounter counts accepted signups for a single ISO week.
type WeekCounter struct {
	Count int `json:"count"`
}

// State is the durable waitlist aggregate. Its JSON form is the persisted
// schema: {"total": int, "weeks": {key: {"count": int}}, "cap": int}.
type State struct {
	Total int                    `json:"total"`
	Weeks map[string]WeekCounter `json:"weeks"`
	Cap   int                    `json:"cap"`
}

func defaultState(defaultCap int) *State {
	return &State{
		Total: 0,
		Weeks: map[string]WeekCounter{},
		Cap:   defaultCap,
	}
}

// decodeState fills a fully-defaulted state from a loosely-typed payload,
// field by field. Older deployments persisted only {"total": N}; missing or
// invalid fields keep their defaults and unknown fields are ignored. A cap
// of zero or a non-numeric cap is replaced with defaultCap.
func decodeState(raw []byte, defaultCap int) *State {
	state := defaultState(defaultCap)

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return state
	}

	if total, ok := coerceInt(data["total"]); ok {
		state.Total = total
	}

	if weeks, ok := data["weeks"].(map[string]interface{}); ok {
		for key, entry := range weeks {
			counter := WeekCounter{}
			if fields, ok := entry.(map[string]interface{}); ok {
				if count, ok := coerceInt(fields["count"]); ok {
					counter.Count = count
				}
			}
			state.Weeks[key] = counter
		}
	}

	if rawCap, present := data["cap"]; present {
		if capValue, ok := coerceInt(rawCap); ok && capValue != 0 {
			state.Cap = capValue
		}
	}

	return state
}

// coerceInt converts the loosely-typed values a JSON payload may carry for
// an integer field.
func coerceInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
