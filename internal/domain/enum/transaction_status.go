package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionStatus represents the settlement status of a committed transaction
type TransactionStatus int

const (
	TransactionStatusPending TransactionStatus = 0
	TransactionStatusPaid    TransactionStatus = 1
)

func (s TransactionStatus) String() string {
	return [...]string{"pending", "paid"}[s]
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = TransactionStatusPending
	case "paid":
		*s = TransactionStatusPaid
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
