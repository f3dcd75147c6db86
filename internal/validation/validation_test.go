package validation_test

import (
	"errors"
	"testing"

	"usersvc/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuesOf(t *testing.T, err error) []validation.Issue {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %T", err)
	return verr.Issues
}

func TestParseIdentifier(t *testing.T) {
	id, err := validation.ParseIdentifier("42")
	require.NoError(t, err)
	assert.Equal(t, validation.KindID, id.Kind)
	assert.Equal(t, int64(42), id.ID)

	id, err = validation.ParseIdentifier("3F2504E0-4F89-41D3-9A0C-0305E82C3301")
	require.NoError(t, err)
	assert.Equal(t, validation.KindUUID, id.Kind)
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", id.UUID)
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", id.String())

	for _, raw := range []string{"0", "not-a-valid-id", "", "-1", "1.5", "99999999999999999999", "3f2504e04f8941d39a0c0305e82c3301"} {
		_, err := validation.ParseIdentifier(raw)
		assert.Error(t, err, raw)
		issues := issuesOf(t, err)
		assert.Len(t, issues, 1, raw)
		assert.Equal(t, "id", issues[0].Path, raw)
	}
}

func TestParseCreateInput(t *testing.T) {
	in, err := validation.ParseCreateInput(map[string]interface{}{
		"name":  "Grace Hopper",
		"email": "grace@example.com",
		"role":  "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, validation.CreateInput{Name: "Grace Hopper", Email: "grace@example.com"}, in)

	_, err = validation.ParseCreateInput(map[string]interface{}{})
	issues := issuesOf(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "name", issues[0].Path)
	assert.Equal(t, "email", issues[1].Path)
	assert.Equal(t, "name: Required; email: Required", err.Error())

	_, err = validation.ParseCreateInput(map[string]interface{}{"name": 7, "email": "nope"})
	assert.Equal(t, "name: Expected string, received number; email: Invalid email address", err.Error())

	_, err = validation.ParseCreateInput(map[string]interface{}{"name": "", "email": "a@b.co"})
	issues = issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}

func TestParseUpdateInput(t *testing.T) {
	_, err := validation.ParseUpdateInput(map[string]interface{}{})
	require.Error(t, err)
	assert.Equal(t, "value: At least one field is required", err.Error())

	_, err = validation.ParseUpdateInput(map[string]interface{}{"unknown": true})
	assert.Equal(t, "value: At least one field is required", err.Error())

	in, err := validation.ParseUpdateInput(map[string]interface{}{"name": "X"})
	require.NoError(t, err)
	require.NotNil(t, in.Name)
	assert.Equal(t, "X", *in.Name)
	assert.Nil(t, in.Email)
	assert.False(t, in.Changes().Empty())

	_, err = validation.ParseUpdateInput(map[string]interface{}{"email": nil})
	assert.Equal(t, "email: Expected string, received null", err.Error())
}

func TestParseListQuery(t *testing.T) {
	q, err := validation.ParseListQuery(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, validation.ListQuery{Page: 1, PageSize: 10}, q)

	q, err = validation.ParseListQuery(map[string]string{"page": "3", "pageSize": "100"})
	require.NoError(t, err)
	assert.Equal(t, validation.ListQuery{Page: 3, PageSize: 100}, q)

	tests := []struct {
		query   map[string]string
		message string
	}{
		{map[string]string{"page": "0"}, "page: Number must be greater than 0"},
		{map[string]string{"page": "abc"}, "page: Expected number, received nan"},
		{map[string]string{"page": ""}, "page: Expected number, received nan"},
		{map[string]string{"pageSize": "2.5"}, "pageSize: Expected integer, received float"},
		{map[string]string{"pageSize": "101"}, "pageSize: Number must be less than or equal to 100"},
		{map[string]string{"page": "-1", "pageSize": "0"}, "page: Number must be greater than 0; pageSize: Number must be greater than 0"},
	}
	for _, tt := range tests {
		_, err := validation.ParseListQuery(tt.query)
		require.Error(t, err)
		assert.Equal(t, tt.message, err.Error())
	}
}

func TestErrorMessage(t *testing.T) {
	err := &validation.Error{}
	assert.Equal(t, "Invalid request", err.Error())

	err = &validation.Error{Issues: []validation.Issue{{Path: "a", Message: "x"}, {Path: "", Message: "y"}}}
	assert.Equal(t, "a: x; value: y", err.Error())
}
