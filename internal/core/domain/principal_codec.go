package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var recordValidator = validator.New()

// idValue accepts identifiers serialised either as JSON strings or numbers.
type idValue string

func (v *idValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = idValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*v = idValue(n.String())
	return nil
}

// principalRecord is the persisted shape of a Principal.
type principalRecord struct {
	ID          idValue `json:"id"           validate:"required"`
	Role        *string `json:"role"         validate:"required"`
	IsSuperuser *bool   `json:"is_superuser"`
	TeacherID   idValue `json:"teacher_id"`
	StudentID   idValue `json:"student_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
}

// DecodePrincipal parses a persisted principal record. Any shape problem
// yields ErrInvalidPrincipal; callers treat that as "absent".
func DecodePrincipal(raw []byte) (*Principal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidPrincipal
	}

	var rec principalRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrincipal, err)
	}
	if err := recordValidator.Struct(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrincipal, err)
	}

	p := &Principal{
		ID:        string(rec.ID),
		Role:      ParseRole(*rec.Role),
		TeacherID: string(rec.TeacherID),
		StudentID: string(rec.StudentID),
		Name:      rec.Name,
		Email:     rec.Email,
	}
	if rec.IsSuperuser != nil {
		p.IsSuperuser = *rec.IsSuperuser
	}
	return p, nil
}

// EncodePrincipal serialises p into its persisted form.
func EncodePrincipal(p *Principal) ([]byte, error) {
	if p == nil || p.ID == "" {
		return nil, ErrInvalidPrincipal
	}
	if p.Role == "" {
		p = p.Clone()
		p.Role = RoleUnknown
	}
	return json.Marshal(p)
}

// MergePrincipal shallow-merges patch over base. Keys in patch replace the
// matching top-level fields; the result must still decode as a Principal.
func MergePrincipal(base *Principal, patch map[string]json.RawMessage) (*Principal, error) {
	if base == nil {
		return nil, ErrAuthAbsent
	}
	raw, err := EncodePrincipal(base)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("merge principal: %w", err)
	}
	for k, v := range patch {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("merge principal: %w", err)
	}
	return DecodePrincipal(merged)
}
