package public

import (
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系/反馈提交请求
type ContactRequest struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// SubmitContact 提交联系或反馈留言
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	message, err := h.ContactService.Submit(service.ContactSubmitInput{
		Kind:    req.Kind,
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		if handlershared.RespondValidation(c, "error.contact_invalid", err) {
			return
		}
		respondError(c, response.CodeInternal, "error.contact_submit_failed", err)
		return
	}
	if h.DashboardService != nil {
		h.DashboardService.InvalidateOverview(c.Request.Context())
	}
	response.Success(c, gin.H{"id": message.ID, "status": message.Status})
}
