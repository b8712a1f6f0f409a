package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MovementDirection represents the direction of a stock movement
type MovementDirection int

const (
	MovementIn  MovementDirection = 0
	MovementOut MovementDirection = 1
)

func (d MovementDirection) String() string {
	return [...]string{"in", "out"}[d]
}

func (d MovementDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *MovementDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = MovementDirection(i)
		return nil
	}
	switch str {
	case "in":
		*d = MovementIn
	case "out":
		*d = MovementOut
	}
	return nil
}

func (d MovementDirection) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *MovementDirection) Scan(value interface{}) error {
	if value == nil {
		*d = MovementIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = MovementDirection(v)
	case int:
		*d = MovementDirection(v)
	}
	return nil
}
