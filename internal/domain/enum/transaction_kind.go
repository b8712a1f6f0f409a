package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionKind distinguishes a sales invoice from a goods receipt (GRN)
type TransactionKind int

const (
	TransactionKindSale     TransactionKind = 0
	TransactionKindPurchase TransactionKind = 1
)

func (k TransactionKind) String() string {
	return [...]string{"sale", "purchase"}[k]
}

func (k TransactionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TransactionKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = TransactionKind(i)
		return nil
	}
	switch str {
	case "sale":
		*k = TransactionKindSale
	case "purchase":
		*k = TransactionKindPurchase
	}
	return nil
}

func (k TransactionKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *TransactionKind) Scan(value interface{}) error {
	if value == nil {
		*k = TransactionKindSale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = TransactionKind(v)
	case int:
		*k = TransactionKind(v)
	}
	return nil
}
