package server

import (
	"strings"

	"foms/internal/models"
	"foms/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRequestBody is the JSON payload for filing a request.
type CreateRequestBody struct {
	RequestedDatetime int64   `json:"requested_datetime"`
	RequestorName     string  `json:"requestor_name"`
	RequestorOrg      string  `json:"requestor_org"`
	RequestorPhone    string  `json:"requestor_phone"`
	Facility          string  `json:"facility"`
	Description       string  `json:"description"`
	Contact           string  `json:"contact"`
	PocPhone          string  `json:"poc_phone"`
	DFLCode           *string `json:"dfl_code"`
	Restoration       *string `json:"restoration"`
	Scheduled         *string `json:"scheduled"`
}

func (b *CreateRequestBody) validate() error {
	required := map[string]string{
		"requestor_name":  b.RequestorName,
		"requestor_org":   b.RequestorOrg,
		"requestor_phone": b.RequestorPhone,
		"facility":        b.Facility,
		"description":     b.Description,
		"contact":         b.Contact,
		"poc_phone":       b.PocPhone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return models.NewValidationError(field + " is required")
		}
	}
	if b.RequestedDatetime <= 0 {
		return models.NewValidationError("requested_datetime must be epoch milliseconds")
	}
	return nil
}

// UpdateStatusBody is the JSON payload for an approve/deny/cancel transition.
type UpdateStatusBody struct {
	StatusID          string  `json:"status_id"`
	DeniedDescription *string `json:"denied_description"`
}

// ListRequests godoc
// @Summary List facility-access requests
// @Description Returns one page of requests, newest first. Filters combine; search takes precedence over status and date range.
// @Tags requests
// @Produce json
// @Param status query string false "Status code (R, A, D, C)"
// @Param search query string false "Search term matched against the request's text fields"
// @Param date_from query int false "Requested-date lower bound, epoch milliseconds"
// @Param date_to query int false "Requested-date upper bound, epoch milliseconds"
// @Param cursor query string false "Continuation cursor from a previous page"
// @Param num_items query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.RequestPage
// @Failure 400 {object} map[string]interface{}
// @Router /api/requests [get]
func (s *Server) ListRequests(c *fiber.Ctx) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	page, err := parsePage(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	result, err := s.requestService.List(c.UserContext(), filter, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}

// GetRequest godoc
// @Summary Get a single request by reference number
// @Tags requests
// @Produce json
// @Param id path string true "Request reference number"
// @Success 200 {object} models.Request
// @Failure 404 {object} map[string]interface{}
// @Router /api/requests/{id} [get]
func (s *Server) GetRequest(c *fiber.Ctx) error {
	req, err := s.requestService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if req == nil {
		return models.RespondWithAppError(c,
			models.NewNotFoundError("request", c.Params("id")))
	}
	return c.JSON(req)
}

// CreateRequest godoc
// @Summary File a new facility-access request
// @Description Creates the request in status Requested and returns its reference number.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body CreateRequestBody true "Request details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Router /api/requests [post]
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := body.validate(); err != nil {
		return models.RespondWithAppError(c, err)
	}

	id, err := s.requestService.Create(c.UserContext(), service.CreateRequestInput{
		RequestedDatetime: body.RequestedDatetime,
		RequestorName:     strings.TrimSpace(body.RequestorName),
		RequestorOrg:      strings.TrimSpace(body.RequestorOrg),
		RequestorPhone:    strings.TrimSpace(body.RequestorPhone),
		Facility:          strings.TrimSpace(body.Facility),
		Description:       strings.TrimSpace(body.Description),
		Contact:           strings.TrimSpace(body.Contact),
		PocPhone:          strings.TrimSpace(body.PocPhone),
		DFLCode:           body.DFLCode,
		Restoration:       body.Restoration,
		Scheduled:         body.Scheduled,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateRequestStatus godoc
// @Summary Approve, deny, or cancel a request
// @Description Applies the status transition. Denials require a denied_description.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference number"
// @Param transition body UpdateStatusBody true "Target status and optional denial reason"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/requests/{id}/status [patch]
func (s *Server) UpdateRequestStatus(c *fiber.Ctx) error {
	var body UpdateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	err := s.requestService.UpdateStatus(
		c.UserContext(), identityFrom(c), c.Params("id"), body.StatusID, body.DeniedDescription)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "status_id": body.StatusID})
}

// SeedMockRequests godoc
// @Summary Generate mock requests for demos
// @Description Inserts a fixed batch of synthetic requests per catalog status. Disabled unless the demo_data feature flag is on.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/requests/seed-mock [post]
func (s *Server) SeedMockRequests(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if !s.featureFlags.Enabled("demo_data", identity) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Mock data generation is disabled",
		})
	}

	inserted, err := s.requestService.SeedMock(c.UserContext(), identity)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"inserted": inserted})
}
