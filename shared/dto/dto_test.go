package dto_test

import (
	"heritage/shared/constant"
	"heritage/shared/dto"
	"heritage/shared/model"
	"heritage/shared/timezone"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin-1",
		ModifiedBy: "admin-2",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Equal(t, "admin-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			rawQuery: "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			rawQuery:       "page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/places?"+tt.rawQuery, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := dto.QueryParams{SortBy: "name"}
	allowed.RestrictSort("name", "city")
	assert.Equal(t, dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc}, allowed)

	injected := dto.QueryParams{SortBy: "name; DROP TABLE places", SortDir: dto.SortDirAsc}
	injected.RestrictSort("name", "city")
	assert.Equal(t, constant.DefaultValueSortBy, injected.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, injected.SortDir)

	unsorted := dto.QueryParams{}
	unsorted.RestrictSort("name")
	assert.Empty(t, unsorted.SortBy)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "p1", Operator: dto.FilterOperatorEq, Table: "places"},
			dto.Filter{Field: "version", ArgName: "expected_version", Value: int64(3), Operator: dto.FilterOperatorEq, Table: "places"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(places.id = :id AND places.version = :expected_version)", where)
	assert.Equal(t, map[string]any{"id": "p1", "expected_version": int64(3)}, args)
}

func TestFilter_In(t *testing.T) {
	filter := dto.Filter{Field: "place_id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "place_id IN (:place_id_0, :place_id_1) ", where)
	assert.Equal(t, map[string]any{"place_id_0": "a", "place_id_1": "b"}, args)
}

func TestFilter_InEmpty(t *testing.T) {
	filter := dto.Filter{Field: "place_id", Value: []string{}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "1 = 0", where)
	assert.Empty(t, args)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "category", Value: "fort", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "ignored", Value: "x", Operator: "unknown"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "city", Value: "Jaipur", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "country", Value: "Ind", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(category = :category AND (city = :city OR LOWER(country) LIKE LOWER(:country) ))", where)
	assert.Equal(t, map[string]any{"category": "fort", "city": "Jaipur", "country": "%Ind%"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	where, args := (&dto.FilterGroup{}).GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
