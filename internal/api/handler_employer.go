package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"alumniportal/internal/model"
	"alumniportal/internal/service"
)

// FileSaver stages uploaded files and returns their stable path.
type FileSaver interface {
	Save(namespace, filename string, src io.Reader) (string, error)
}

type EmployerHandler struct {
	employers    *service.EmployerService
	applications *service.ApplicationService
	uploads      FileSaver
}

func NewEmployerHandler(employers *service.EmployerService, applications *service.ApplicationService, uploads FileSaver) *EmployerHandler {
	return &EmployerHandler{
		employers:    employers,
		applications: applications,
		uploads:      uploads,
	}
}

// Me handles GET /employer/me
func (h *EmployerHandler) Me(c *gin.Context) {
	claims := CurrentClaims(c)
	emp, err := h.employers.PendingAndLive(c.Request.Context(), claims.EmployerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, emp)
}

// ProposeChange handles PUT /employer/me. Moderated fields are staged for
// review; the live record is untouched until an admin approves.
func (h *EmployerHandler) ProposeChange(c *gin.Context) {
	claims := CurrentClaims(c)

	var change model.ChangeRequest
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	// logo changes go through the upload endpoint
	change.CompanyLogo = nil

	emp, err := h.employers.ProposeChange(c.Request.Context(), claims.EmployerID, change)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, emp)
}

// UploadLogo handles POST /employer/me/logo. The file is staged on disk
// and proposed as a pending logo change.
func (h *EmployerHandler) UploadLogo(c *gin.Context) {
	claims := CurrentClaims(c)

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "a logo file is required"})
		return
	}
	defer file.Close()

	path, err := h.uploads.Save("companyLogos", header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	emp, err := h.employers.ProposeChange(c.Request.Context(), claims.EmployerID, model.ChangeRequest{CompanyLogo: &path})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, emp)
}

// Confirm handles POST /employer/me/confirm
func (h *EmployerHandler) Confirm(c *gin.Context) {
	claims := CurrentClaims(c)
	if err := h.employers.Confirm(c.Request.Context(), claims.EmployerID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "confirmed"})
}

// Applicants handles GET /employer/applicants, serving the archive.
func (h *EmployerHandler) Applicants(c *gin.Context) {
	claims := CurrentClaims(c)
	apps, err := h.applications.ListForEmployer(c.Request.Context(), claims.EmployerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apps)
}
