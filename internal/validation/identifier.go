package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IdentifierKind tells which of the two user keys an Identifier carries.
type IdentifierKind int

const (
	KindID IdentifierKind = iota + 1
	KindUUID
)

func (k IdentifierKind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindUUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// Identifier addresses a user either by numeric id or by uuid.
// Only the field matching Kind is meaningful.
type Identifier struct {
	Kind IdentifierKind
	ID   int64
	UUID string
}

// ByID returns an id-keyed identifier.
func ByID(id int64) Identifier {
	return Identifier{Kind: KindID, ID: id}
}

// ByUUID returns a uuid-keyed identifier.
func ByUUID(uuid string) Identifier {
	return Identifier{Kind: KindUUID, UUID: uuid}
}

func (i Identifier) String() string {
	if i.Kind == KindID {
		return strconv.FormatInt(i.ID, 10)
	}
	return i.UUID
}

var validate = validator.New()

// ParseIdentifier accepts a positive integer or a canonical UUID.
func ParseIdentifier(raw string) (Identifier, error) {
	var is issues
	if isDigits(raw) {
		id, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil:
			is.add("id", "Number is too large")
		case id <= 0:
			is.add("id", "Number must be greater than 0")
		default:
			return ByID(id), nil
		}
		return Identifier{}, is.err()
	}
	// uuids are stored lowercase
	if lowered := strings.ToLower(raw); validate.Var(lowered, "required,uuid") == nil {
		return ByUUID(lowered), nil
	}
	is.add("id", "Expected a positive integer or a UUID")
	return Identifier{}, is.err()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
