package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pdfdecrypt/internal/service"
)

// ListAudit returns recent decrypt outcomes.
//
// @Summary      List decrypt audit entries
// @Tags         audit
// @Produce      json
// @Param        limit    query  int     false  "Page size (default 10, max 100)"
// @Param        offset   query  int     false  "Rows to skip"
// @Param        outcome  query  string  false  "Filter by outcome, e.g. wrong_password"
// @Success      200  {object}  service.AuditListResult
// @Failure      400  {object}  decrypt.ErrorBody
// @Failure      401  {object}  decrypt.ErrorBody
// @Failure      500  {object}  decrypt.ErrorBody
// @Security     ApiKeyAuth
// @Router       /api/audit [get]
func ListAudit(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid limit.")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid offset.")
		}

		res, err := svc.List(c.UserContext(), limit, offset, c.Query("outcome"))
		if errors.Is(err, service.ErrUnknownOutcome) {
			return writeError(c, fiber.StatusBadRequest, "Invalid outcome.")
		}
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
