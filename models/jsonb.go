package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB is an open key/value map stored as a jsonb column. Callers must
// tolerate unknown keys; the set of known keys is documented on the owning
// model.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONB scan")
	}
}
