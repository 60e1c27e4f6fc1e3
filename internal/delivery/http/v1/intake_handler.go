package v1

import (
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	intakeUC domain.IntakeUsecase
}

// NewIntakeHandler registers the form submission routes (public, no auth required)
func NewIntakeHandler(public *gin.RouterGroup, intakeUC domain.IntakeUsecase) {
	handler := &IntakeHandler{
		intakeUC: intakeUC,
	}

	submit := public.Group("/submit")
	submit.POST("/"+usecase.VariantContact, handler.SubmitContact)
	submit.POST("/"+usecase.VariantPrototypeRequest, handler.SubmitPrototypeRequest)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form message to the agency inbox. Requires name, email and message.
// @Tags         submit
// @Accept       json
// @Produce      json
// @Param        payload  body      domain.SubmissionPayload  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /submit/contact [post]
func (h *IntakeHandler) SubmitContact(c *gin.Context) {
	h.submit(c, usecase.VariantContact)
}

// SubmitPrototypeRequest godoc
// @Summary      Request a Free Prototype
// @Description  Relays a free prototype request to the agency inbox. Requires name and email.
// @Tags         submit
// @Accept       json
// @Produce      json
// @Param        payload  body      domain.SubmissionPayload  true  "Prototype Request Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /submit/prototype-request [post]
func (h *IntakeHandler) SubmitPrototypeRequest(c *gin.Context) {
	h.submit(c, usecase.VariantPrototypeRequest)
}

func (h *IntakeHandler) submit(c *gin.Context, variant string) {
	var req domain.SubmissionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		// Unreadable bodies are reported like any other unexpected failure
		c.Error(apperror.Internal(err))
		return
	}

	result, err := h.intakeUC.Submit(c.Request.Context(), variant, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, result.Message, result.ID)
}
