package time

import (
	"encoding/json"
	"errors"
	"time"
)

// Clock provides the current processing instant.
// It is injected wherever wall-clock time feeds a computation,
// so that tests can fix the instant deterministically.
type Clock func() time.Time

// Wall is the production clock.
func Wall() time.Time {
	return time.Now()
}

// Fixed returns a clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Duration is a time.Duration with json marshalling support.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}
