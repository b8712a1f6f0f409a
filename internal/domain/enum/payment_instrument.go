package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentInstrument represents how an amount was tendered
type PaymentInstrument int

const (
	InstrumentCash   PaymentInstrument = 0
	InstrumentCard   PaymentInstrument = 1
	InstrumentBank   PaymentInstrument = 2
	InstrumentCheque PaymentInstrument = 3
)

func (i PaymentInstrument) String() string {
	return [...]string{"cash", "card", "bank", "cheque"}[i]
}

func (i PaymentInstrument) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *PaymentInstrument) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*i = PaymentInstrument(n)
		return nil
	}
	switch str {
	case "cash":
		*i = InstrumentCash
	case "card":
		*i = InstrumentCard
	case "bank":
		*i = InstrumentBank
	case "cheque":
		*i = InstrumentCheque
	}
	return nil
}

func (i PaymentInstrument) Value() (driver.Value, error) {
	return int64(i), nil
}

func (i *PaymentInstrument) Scan(value interface{}) error {
	if value == nil {
		*i = InstrumentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*i = PaymentInstrument(v)
	case int:
		*i = PaymentInstrument(v)
	}
	return nil
}
