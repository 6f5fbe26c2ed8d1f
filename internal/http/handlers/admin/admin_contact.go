package admin

import (
	"errors"
	"strings"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactUpdateRequest 留言处理请求
type ContactUpdateRequest struct {
	Status    string  `json:"status"`
	AdminNote *string `json:"admin_note"`
}

// ContactStatusRequest 留言状态请求
type ContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminContacts 留言列表
func (h *Handler) GetAdminContacts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	messages, total, err := h.ContactService.List(service.ContactListQuery{
		Page:     page,
		PageSize: pageSize,
		Kind:     c.Query("kind"),
		Status:   c.Query("status"),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.contact_fetch_failed", err)
		return
	}
	pageResponse(c, messages, page, pageSize, total)
}

// GetAdminContact 留言详情，打开即标记已读
func (h *Handler) GetAdminContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	message, err := h.ContactService.Get(id, true)
	if err != nil {
		respondContactError(c, err, "error.contact_fetch_failed")
		return
	}
	response.Success(c, message)
}

// UpdateContact 修改状态或备注
func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	message, err := h.ContactService.Update(id, service.ContactUpdateInput{
		Status:    req.Status,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		respondContactError(c, err, "error.contact_update_failed")
		return
	}
	response.Success(c, message)
}

// UpdateContactStatus 仅修改处理状态
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	message, err := h.ContactService.Update(id, service.ContactUpdateInput{Status: req.Status})
	if err != nil {
		respondContactError(c, err, "error.contact_update_failed")
		return
	}
	response.Success(c, message)
}

// DeleteContact 删除留言
func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ContactService.Delete(id); err != nil {
		respondContactError(c, err, "error.contact_delete_failed")
		return
	}
	h.audit(c, "contact_delete", "contact", idString(id), nil)
	response.Success(c, gin.H{"deleted": true})
}

func respondContactError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.contact_not_found", nil)
	case errors.Is(err, service.ErrContactStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.contact_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
