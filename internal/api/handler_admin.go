package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alumniportal/internal/service"
)

type AdminHandler struct {
	approvals     *service.ApprovalService
	notifications *service.NotificationService
}

func NewAdminHandler(approvals *service.ApprovalService, notifications *service.NotificationService) *AdminHandler {
	return &AdminHandler{approvals: approvals, notifications: notifications}
}

func employerIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid employer id"})
		return 0, false
	}
	return id, true
}

// ListEmployers handles GET /admin/employers?search=&page=&limit=
func (h *AdminHandler) ListEmployers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	employers, totalPages, err := h.approvals.List(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"employers": employers, "total_pages": totalPages})
}

// GetEmployer handles GET /admin/employers/:id, live and staged values.
func (h *AdminHandler) GetEmployer(c *gin.Context) {
	id, ok := employerIDParam(c)
	if !ok {
		return
	}

	emp, err := h.approvals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, emp)
}

// Approve handles POST /admin/employers/:id/approve/:scope
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := employerIDParam(c)
	if !ok {
		return
	}

	emp, err := h.approvals.Approve(c.Request.Context(), id, c.Param("scope"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, emp)
}

// Reject handles POST /admin/employers/:id/reject/:scope
func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := employerIDParam(c)
	if !ok {
		return
	}

	if err := h.approvals.Reject(c.Request.Context(), id, c.Param("scope")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "rejected"})
}

// UpdateStatus handles PUT /admin/employers/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := employerIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := h.approvals.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": req.Status})
}

// DeleteEmployer handles DELETE /admin/employers/:id
func (h *AdminHandler) DeleteEmployer(c *gin.Context) {
	id, ok := employerIDParam(c)
	if !ok {
		return
	}

	if err := h.approvals.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "deleted"})
}

// PendingCount handles GET /admin/employers/pending-count for the badge.
func (h *AdminHandler) PendingCount(c *gin.Context) {
	count, err := h.notifications.PendingEmployerCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"count": count})
}
