package types

import (
	"encoding/json"
	"fmt"
)

// UpdateUserRequest represents a user record update. The payload is kept
// as raw field presence plus decoded values: the authorization rules care
// about which fields were sent, not only their values.
type UpdateUserRequest struct {
	Name               *string `json:"name,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	IsProfileCompleted *bool   `json:"isProfileCompleted,omitempty"`
	Status             *bool   `json:"status,omitempty"`
	IsRestricted       *bool   `json:"isRestricted,omitempty"`

	fields []string
}

// UnmarshalJSON decodes the update and records which fields were present.
func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateUserRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateUserRequest(a)
	for key := range raw {
		switch key {
		case "name", "phone", "isProfileCompleted", "status", "isRestricted":
			r.fields = append(r.fields, key)
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return nil
}

// Fields returns the JSON field names present in the payload.
func (r *UpdateUserRequest) Fields() []string { return r.fields }
