package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a money value. Clients and older documents may carry it as a
// number or as a numeric string; both decode to the same value. It is always
// written back as a number.
type Amount float64

// UnmarshalJSON accepts 500, 500.5, "500" and "". null leaves the value unchanged.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parseAmount(s)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	*a = Amount(f)
	return nil
}

// UnmarshalBSONValue decodes numeric BSON types and numeric strings
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Double:
		*a = Amount(raw.Double())
	case bsontype.Int32:
		*a = Amount(raw.Int32())
	case bsontype.Int64:
		*a = Amount(raw.Int64())
	case bsontype.Decimal128:
		v, err := parseAmount(raw.Decimal128().String())
		if err != nil {
			return err
		}
		*a = v
	case bsontype.String:
		v, err := parseAmount(raw.StringValue())
		if err != nil {
			return err
		}
		*a = v
	case bsontype.Null, bsontype.Undefined:
		*a = 0
	default:
		return fmt.Errorf("cannot decode BSON %s into amount", t)
	}
	return nil
}

func parseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Amount(f), nil
}
