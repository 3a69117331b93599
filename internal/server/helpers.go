package server

import (
	"strconv"
	"strings"

	"foms/internal/models"
	"foms/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePage reads pagination parameters from the query string.
func parsePage(c *fiber.Ctx) (repository.PageRequest, error) {
	page := repository.PageRequest{
		Cursor:   c.Query("cursor"),
		NumItems: defaultPageSize,
	}

	if raw := c.Query("num_items"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, models.NewValidationError("num_items must be a positive integer")
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		page.NumItems = n
	}

	return page, nil
}

// parseListFilter reads listing filters from the query string.
func parseListFilter(c *fiber.Ctx) (repository.ListFilter, error) {
	var filter repository.ListFilter

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.StatusID = &status
	}

	filter.Search = strings.TrimSpace(c.Query("search"))

	if raw := c.Query("date_from"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, models.NewValidationError("date_from must be epoch milliseconds")
		}
		filter.DateFrom = &ms
	}

	if raw := c.Query("date_to"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, models.NewValidationError("date_to must be epoch milliseconds")
		}
		filter.DateTo = &ms
	}

	return filter, nil
}

// identityFrom resolves the authenticated identity for a handler,
// empty when the request is anonymous.
func identityFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals("identity").(string); ok {
		return id
	}
	return ""
}
