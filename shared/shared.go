package shared

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"roomdesk/shared/constant"
	"roomdesk/shared/dto"
	"roomdesk/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// Cache is the subset of the cache API needed for invalidation.
type Cache interface {
	Clear(ctx context.Context, prefix string) error
}

// BuildCacheKey joins a prefix with its parts using the cache key separator.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a deterministic key from any number of query values.
// Each value is escaped so a separator inside a value cannot shift it into the next part.
func BuildCacheKeyWithQuery(prefix string, values ...any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, url.QueryEscape(fmt.Sprintf("%v", value)))
	}

	return BuildCacheKey(prefix, parts...)
}

// InvalidateCaches clears every key stored under prefix.
func InvalidateCaches(ctx context.Context, cache Cache, prefix string) {
	if err := cache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// TransformFields converts the non-zero fields of a struct into a map keyed by db tag.
// Pointer fields are dereferenced, so a pointer to a zero value is still written.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Ptr {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Clause{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterUnlessAll returns an equality filter, or nil when value is empty or the "all" sentinel.
func FilterUnlessAll(field, value, table string) *dto.Filter {
	if value == constant.Empty || strings.EqualFold(value, constant.FilterAll) {
		return nil
	}

	return &dto.Filter{
		Field:    field,
		Value:    value,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	}
}
