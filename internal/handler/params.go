package handler

import (
	"strconv"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/util"
	"github.com/labstack/echo/v4"
)

// parseIDParam reads a positive int32 path parameter
func parseIDParam(c echo.Context, name string) (int32, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parseOptionalID reads a positive int32 query parameter; empty means nil
func parseOptionalID(c echo.Context, name string) (*int32, []ValidationError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return nil, []ValidationError{{Field: name, Message: "must be a positive integer"}}
	}
	v := int32(id)
	return &v, nil
}

// parseListParams reads search, isActive, page, pageSize, sortBy and sortOrder.
// Out-of-range paging is clamped later by domain.ListParams.Normalize.
func parseListParams(c echo.Context) (domain.ListParams, []ValidationError) {
	var errs []ValidationError
	params := domain.ListParams{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: domain.SortOrder(c.QueryParam("sortOrder")),
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			errs = append(errs, ValidationError{Field: "page", Message: "must be a valid integer"})
		}
		params.Page = int32(page)
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			errs = append(errs, ValidationError{Field: "pageSize", Message: "must be a valid integer"})
		}
		params.PageSize = int32(size)
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: "isActive", Message: "must be true or false"})
		} else {
			params.IsActive = &active
		}
	}
	return params, errs
}

// parseOptionalQueryDate reads a YYYY-MM-DD query parameter; empty means nil
func parseOptionalQueryDate(c echo.Context, name string) (*time.Time, *ValidationError) {
	t, err := util.ParseOptionalDate(c.QueryParam(name))
	if err != nil {
		return nil, &ValidationError{Field: name, Message: "must be a date (YYYY-MM-DD)"}
	}
	return t, nil
}

// parseQueryRangeEnd reads the end of a date range. A bare date covers that whole day.
func parseQueryRangeEnd(c echo.Context, name string) (*time.Time, *ValidationError) {
	t, err := util.ParseRangeEnd(c.QueryParam(name))
	if err != nil {
		return nil, &ValidationError{Field: name, Message: "must be a date (YYYY-MM-DD)"}
	}
	return t, nil
}

// parseDateRange reads the startDate and endDate query parameters
func parseDateRange(c echo.Context) (start, end *time.Time, errs []ValidationError) {
	start, startErr := parseOptionalQueryDate(c, "startDate")
	if startErr != nil {
		errs = append(errs, *startErr)
	}
	end, endErr := parseQueryRangeEnd(c, "endDate")
	if endErr != nil {
		errs = append(errs, *endErr)
	}
	return start, end, errs
}

// parseBodyDate parses a required date field of a request body
func parseBodyDate(field, value string, errs *[]ValidationError) time.Time {
	if value == "" {
		*errs = append(*errs, ValidationError{Field: field, Message: "is required"})
		return time.Time{}
	}
	t, err := util.ParseDate(value)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: field, Message: "must be a date (YYYY-MM-DD)"})
	}
	return t
}

// parseOptionalBodyDate parses a date field of a partial update; nil leaves it untouched
func parseOptionalBodyDate(field string, value *string, errs *[]ValidationError) *time.Time {
	if value == nil {
		return nil
	}
	t := parseBodyDate(field, *value, errs)
	return &t
}
