package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// workFilterFromParams converts aggregator query parameters into a filter.
// Unparseable dates and months are dropped rather than rejected.
func workFilterFromParams(params dto.WorkRecordFilterParams, loc *time.Location) (domain.WorkFilter, *domain.YearMonth) {
	filter := domain.WorkFilter{
		ProjectID:   optionalString(params.ProjectID),
		PrincipalID: optionalString(params.PrincipalID),
		ProjectName: optionalString(params.Project),
		From:        parseFilterDate(params.StartDate, loc),
		To:          parseFilterDate(params.EndDate, loc),
		Query:       strings.TrimSpace(params.Query),
	}
	var revenue *domain.YearMonth
	if params.RevenueMonth != "" {
		if ym, err := domain.ParseYearMonth(params.RevenueMonth); err == nil {
			revenue = &ym
		}
	}
	return filter, revenue
}

// invoiceFilterFromRequest builds the record filter of an invoice run. Open slots never qualify.
func invoiceFilterFromRequest(req dto.GenerateInvoiceRequest, loc *time.Location) domain.WorkFilter {
	filter := domain.WorkFilter{
		ProjectName:      optionalString(req.Project),
		From:             parseFilterDate(req.StartDate, loc),
		To:               parseFilterDate(req.EndDate, loc),
		Query:            strings.TrimSpace(req.Query),
		ExcludeOpenSlots: true,
	}
	if req.ProjectID != nil {
		filter.ProjectID = optionalString(*req.ProjectID)
	}
	if req.PrincipalID != nil {
		filter.PrincipalID = optionalString(*req.PrincipalID)
	}
	return filter
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// pageSize parses the requested page size. Missing or malformed values fall
// back to the default; oversized ones are clamped.
func pageSize(value string) int {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	switch {
	case err != nil || size < 1:
		return defaultPageSize
	case size > maxPageSize:
		return maxPageSize
	}
	return size
}

func parseFilterDate(value string, loc *time.Location) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil
	}
	return &t
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
