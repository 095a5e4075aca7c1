package dto_test

import (
	"roomdesk/shared/constant"
	"roomdesk/shared/dto"
	"roomdesk/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, updatedAt.Format(constant.DateFormat), metadata.UpdatedAt)
}

func TestDefaultQueryParams(t *testing.T) {
	params := dto.DefaultQueryParams()

	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "equal",
			filter:       dto.Filter{Field: "type", Value: "suite", Operator: dto.FilterOperatorEq, Table: "rooms"},
			expectedSQL:  "rooms.type = :type",
			expectedArgs: map[string]any{"type": "suite"},
		},
		{
			name:         "like escapes wildcards",
			filter:       dto.Filter{Field: "room_number", Value: "10%_", Operator: dto.FilterOperatorLike},
			expectedSQL:  `LOWER(room_number) LIKE LOWER(:room_number) ESCAPE '\' `,
			expectedArgs: map[string]any{"room_number": `%10\%\_%`},
		},
		{
			name:         "custom arg name",
			filter:       dto.Filter{ArgName: "rn", Field: "room_number", Value: "101", Operator: dto.FilterOperatorNotEq},
			expectedSQL:  "room_number != :rn",
			expectedArgs: map[string]any{"rn": "101"},
		},
		{
			name:         "is null",
			filter:       dto.Filter{Field: "description", Operator: dto.FilterIsNull},
			expectedSQL:  "description IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedSQL, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	search := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []dto.Clause{
			dto.Filter{Field: "room_number", Value: "10", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "description", Value: "10", Operator: dto.FilterOperatorLike},
		},
	}

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []dto.Clause{
			search,
			dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
		},
	}

	query, args := group.GetWhereClause()

	assert.Equal(t,
		`((LOWER(room_number) LIKE LOWER(:room_number) ESCAPE '\'  OR LOWER(description) LIKE LOWER(:description) ESCAPE '\' ) AND status = :status)`,
		query,
	)
	assert.Equal(t, map[string]any{
		"room_number": "%10%",
		"description": "%10%",
		"status":      "available",
	}, args)

	empty := dto.FilterGroup{}
	query, args = empty.GetWhereClause()

	assert.Empty(t, query)
	assert.Empty(t, args)
}
