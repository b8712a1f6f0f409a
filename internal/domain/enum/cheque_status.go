package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ChequeStatus represents the lifecycle status of a deferred-payment cheque.
// Both "paid" and "bounced" are terminal.
type ChequeStatus int

const (
	ChequeStatusPending ChequeStatus = 0
	ChequeStatusPaid    ChequeStatus = 1
	ChequeStatusBounced ChequeStatus = 2
)

func (s ChequeStatus) String() string {
	return [...]string{"pending", "paid", "bounced"}[s]
}

// Terminal reports whether no further transition is allowed from this status.
func (s ChequeStatus) Terminal() bool {
	return s == ChequeStatusPaid || s == ChequeStatusBounced
}

func (s ChequeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ChequeStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ChequeStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = ChequeStatusPending
	case "paid":
		*s = ChequeStatusPaid
	case "bounced":
		*s = ChequeStatusBounced
	}
	return nil
}

func (s ChequeStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ChequeStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ChequeStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ChequeStatus(v)
	case int:
		*s = ChequeStatus(v)
	}
	return nil
}
