package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BatchStatus represents the lifecycle status of a stock batch
type BatchStatus int

const (
	BatchStatusActive  BatchStatus = 0
	BatchStatusOut     BatchStatus = 1
	BatchStatusExpired BatchStatus = 2
)

func (s BatchStatus) String() string {
	return [...]string{"active", "out", "expired"}[s]
}

func (s BatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BatchStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BatchStatus(i)
		return nil
	}
	switch str {
	case "active":
		*s = BatchStatusActive
	case "out":
		*s = BatchStatusOut
	case "expired":
		*s = BatchStatusExpired
	}
	return nil
}

func (s BatchStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BatchStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BatchStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BatchStatus(v)
	case int:
		*s = BatchStatus(v)
	}
	return nil
}
