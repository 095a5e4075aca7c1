package shared_test

import (
	"context"
	"errors"
	"reflect"
	"roomdesk/shared"
	"roomdesk/shared/constant"
	"roomdesk/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room", shared.BuildCacheKey("room"))
	assert.Equal(t, "room:gets:10:suite:all", shared.BuildCacheKeyWithQuery("room:gets", "10", "suite", "all"))
}

func TestBuildCacheKeyWithQuery_SeparatorInValues(t *testing.T) {
	first := shared.BuildCacheKeyWithQuery("room:gets", "10", "30:suite", "")
	second := shared.BuildCacheKeyWithQuery("room:gets", "10:30", "suite", "")

	assert.NotEqual(t, first, second)
	assert.Equal(t, "room:gets:10:30%3Asuite:", first)
	assert.Equal(t, "room:gets:10%3A30:suite:", second)
}

type clearRecorder struct {
	prefixes []string
	err      error
}

func (c *clearRecorder) Clear(_ context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)

	return c.err
}

func TestInvalidateCaches(t *testing.T) {
	recorder := &clearRecorder{}
	shared.InvalidateCaches(context.Background(), recorder, "room:gets")

	assert.Equal(t, []string{"room:gets:*"}, recorder.prefixes)

	failing := &clearRecorder{err: errors.New("redis down")}
	assert.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), failing, "room:gets")
	})
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name        string   `db:"name"`
		Empty       string   `db:"empty"`
		NoDBTag     string   //nolint:unused
		Ignored     string   `db:"-"`
		Price       *float64 `db:"price"`
		Description *string  `db:"description"`
	}

	zero := 0.0
	blank := ""

	tests := []struct {
		name     string
		data     update
		expected map[string]any
	}{
		{
			name: "populated fields",
			data: update{Name: "101", NoDBTag: "ignored", Ignored: "ignored"},
			expected: map[string]any{
				"name": "101",
			},
		},
		{
			name:     "all zero values",
			data:     update{},
			expected: map[string]any{},
		},
		{
			name: "pointers to zero values are kept and dereferenced",
			data: update{Price: &zero, Description: &blank},
			expected: map[string]any{
				"price":       0.0,
				"description": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data)

			if _, ok := result[constant.FieldUpdatedAt].(time.Time); !ok {
				t.Error("expected updated_at to be a time.Time")
			}

			delete(result, constant.FieldUpdatedAt)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "rooms")

	expected := dto.FilterGroup{
		Filters: []dto.Clause{
			dto.Filter{
				Field:    "id",
				Value:    "123",
				Operator: dto.FilterOperatorEq,
				Table:    "rooms",
			},
		},
	}

	assert.Equal(t, expected, result)
}

func TestFilterUnlessAll(t *testing.T) {
	tests := []struct {
		name  string
		value string
		isNil bool
	}{
		{name: "empty disables", value: "", isNil: true},
		{name: "all disables", value: "all", isNil: true},
		{name: "ALL disables", value: "ALL", isNil: true},
		{name: "concrete value filters", value: "suite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := shared.FilterUnlessAll("type", tt.value, "rooms")

			if tt.isNil {
				assert.Nil(t, filter)

				return
			}

			if assert.NotNil(t, filter) {
				assert.Equal(t, tt.value, filter.Value)
				assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
			}
		})
	}
}
