package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ginvoice/backend/internal/domain/shared"
)

// parseFilter builds a list filter from the standard query parameters:
// page, page_size, order_by, order_dir and search
func parseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy := c.Query("order_by"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir := c.Query("order_dir"); orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = c.Query("search")

	return filter
}

// withQueryFilter copies a query parameter into the filter map when present
func withQueryFilter(c *gin.Context, filter *shared.Filter, param, column string) {
	if value := c.Query(param); value != "" {
		filter.Filters[column] = value
	}
}
