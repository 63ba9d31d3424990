package rdbc

import "github.com/google/uuid"

// NewUUIDValue wraps a uuid.UUID as Ext("Uuid", String) using RFC 4122
// canonical string form.
func NewUUIDValue(id uuid.UUID) Value {
	return NewExt("Uuid", NewString(id.String()))
}

// UUIDFromValue parses an Ext("Uuid", String) value back into a uuid.UUID.
func UUIDFromValue(v Value) (uuid.UUID, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Uuid" {
		return uuid.UUID{}, Errorf("value is not an Ext(\"Uuid\", ...)")
	}
	s, ok := inner.String()
	if !ok {
		return uuid.UUID{}, Errorf("Uuid inner value is not a String")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, WrapError(err, "parsing uuid")
	}
	return id, nil
}
