package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"usersvc/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CreateInput is a validated create request.
type CreateInput struct {
	Name  string
	Email string
}

// UpdateInput is a validated update request with at least one field set.
type UpdateInput struct {
	Name  *string
	Email *string
}

// Changes converts the input to repository changes.
func (u UpdateInput) Changes() models.UserChanges {
	return models.UserChanges{Name: u.Name, Email: u.Email}
}

// ListQuery is a validated pagination query.
type ListQuery struct {
	Page     int
	PageSize int
}

// ParseCreateInput requires a non-empty name and a valid email. Unknown keys are ignored.
func ParseCreateInput(body map[string]interface{}) (CreateInput, error) {
	var is issues
	name, _ := stringField(body, "name", true, &is, checkName)
	email, _ := stringField(body, "email", true, &is, checkEmail)
	if err := is.err(); err != nil {
		return CreateInput{}, err
	}
	return CreateInput{Name: name, Email: email}, nil
}

// ParseUpdateInput accepts name and/or email, but at least one of them.
func ParseUpdateInput(body map[string]interface{}) (UpdateInput, error) {
	var is issues
	var in UpdateInput
	if name, ok := stringField(body, "name", false, &is, checkName); ok {
		in.Name = &name
	}
	if email, ok := stringField(body, "email", false, &is, checkEmail); ok {
		in.Email = &email
	}
	_, hasName := body["name"]
	_, hasEmail := body["email"]
	if !hasName && !hasEmail {
		is.add("", "At least one field is required")
	}
	if err := is.err(); err != nil {
		return UpdateInput{}, err
	}
	return in, nil
}

// ParseListQuery reads page and pageSize from a query string map, applying defaults.
func ParseListQuery(query map[string]string) (ListQuery, error) {
	var is issues
	q := ListQuery{
		Page:     intParam(query, "page", DefaultPage, 0, &is),
		PageSize: intParam(query, "pageSize", DefaultPageSize, MaxPageSize, &is),
	}
	if err := is.err(); err != nil {
		return ListQuery{}, err
	}
	return q, nil
}

func checkName(path, v string, is *issues) bool {
	if v == "" {
		is.add(path, "String must contain at least 1 character(s)")
		return false
	}
	return true
}

func checkEmail(path, v string, is *issues) bool {
	if validate.Var(v, "required,email") != nil {
		is.add(path, "Invalid email address")
		return false
	}
	return true
}

// stringField reads body[key] as a string and runs check on it. ok is false
// when the key is absent or the value was rejected.
func stringField(body map[string]interface{}, key string, required bool, is *issues, check func(string, string, *issues) bool) (string, bool) {
	raw, present := body[key]
	if !present {
		if required {
			is.add(key, "Required")
		}
		return "", false
	}
	s, isString := raw.(string)
	if !isString {
		is.add(key, fmt.Sprintf("Expected string, received %s", typeName(raw)))
		return "", false
	}
	if !check(key, s, is) {
		return "", false
	}
	return s, true
}

// intParam parses a positive integer query parameter. A limit of 0 means unbounded.
func intParam(query map[string]string, key string, def, limit int, is *issues) int {
	raw, present := query[key]
	if !present {
		return def
	}
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || raw == "" || math.IsNaN(f) {
		is.add(key, "Expected number, received nan")
		return 0
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		is.add(key, "Expected integer, received float")
		return 0
	}
	if f <= 0 {
		is.add(key, "Number must be greater than 0")
		return 0
	}
	if limit > 0 && f > float64(limit) {
		is.add(key, fmt.Sprintf("Number must be less than or equal to %d", limit))
		return 0
	}
	if f > math.MaxInt32 {
		is.add(key, "Number is too large")
		return 0
	}
	return int(f)
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
