package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// SkillHandler handles skill endpoints.
type SkillHandler struct {
	skills service.SkillService
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(skills service.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// GetOne godoc
// @Summary Get a skill
// @Tags skills
// @Produce json
// @Param id path int true "Skill ID"
// @Success 200 {object} model.Skill
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /skills/{id} [get]
func (h *SkillHandler) GetOne(c echo.Context) error {
	skill, err := h.skills.GetOne(c.Request().Context(), uintParam(c, "id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, skill)
}

// GetByUser godoc
// @Summary List the skills of the calling user
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID, must be the caller"
// @Success 200 {array} model.Skill
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /skills/user/{userId} [get]
func (h *SkillHandler) GetByUser(c echo.Context) error {
	skills, err := h.skills.GetByUser(c.Request().Context(), validation.SkillByUserInput{UserID: c.Param("userId")})
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, skills)
}

// Create godoc
// @Summary Create a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.SkillCreateInput true "Skill"
// @Success 201 {object} model.Skill
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /skills [post]
func (h *SkillHandler) Create(c echo.Context) error {
	var input validation.SkillCreateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	skill, err := h.skills.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, skill)
}

// Delete godoc
// @Summary Delete a skill
// @Tags skills
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /skills/{id} [delete]
func (h *SkillHandler) Delete(c echo.Context) error {
	if err := h.skills.Delete(c.Request().Context(), uintParam(c, "id")); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
