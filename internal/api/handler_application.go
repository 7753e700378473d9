package api

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"alumniportal/internal/service"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
	uploads      FileSaver
}

func NewApplicationHandler(applications *service.ApplicationService, uploads FileSaver) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, uploads: uploads}
}

// Submit handles POST /careers/:id/apply as multipart form data with a
// PDF resume. The application and its archive snapshot commit together.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	careerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid career id"})
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "a resume file is required"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "resume must be a PDF"})
		return
	}

	resumePath, err := h.uploads.Save("resumes", header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	claims := CurrentClaims(c)
	archived, err := h.applications.Submit(c.Request.Context(), service.SubmitRequest{
		FirstName:  c.PostForm("first_name"),
		LastName:   c.PostForm("last_name"),
		PhoneNo:    c.PostForm("phone_no"),
		Email:      c.PostForm("email"),
		UserName:   claims.Subject,
		CareerID:   careerID,
		ResumePath: resumePath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, archived)
}

// MySubmissions handles GET /applications/mine from the archive.
func (h *ApplicationHandler) MySubmissions(c *gin.Context) {
	claims := CurrentClaims(c)
	apps, err := h.applications.ListForApplicant(c.Request.Context(), claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apps)
}

// ListCareers handles GET /careers, the public job board.
func (h *ApplicationHandler) ListCareers(c *gin.Context) {
	careers, err := h.applications.ListPublicCareers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, careers)
}

// MyCareers handles GET /employer/careers.
func (h *ApplicationHandler) MyCareers(c *gin.Context) {
	claims := CurrentClaims(c)
	careers, err := h.applications.ListCareers(c.Request.Context(), claims.EmployerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, careers)
}

// CreateCareer handles POST /employer/careers.
func (h *ApplicationHandler) CreateCareer(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	claims := CurrentClaims(c)
	career, err := h.applications.CreateCareer(c.Request.Context(), claims.EmployerID, req.Title, req.Description, req.Link)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, career)
}

// DeleteCareer handles DELETE /employer/careers/:id. Archived submissions
// for the career are retained.
func (h *ApplicationHandler) DeleteCareer(c *gin.Context) {
	careerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid career id"})
		return
	}

	claims := CurrentClaims(c)
	if err := h.applications.DeleteCareer(c.Request.Context(), claims.EmployerID, careerID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "deleted"})
}

// CareerApplications handles GET /employer/careers/:id/applications, live
// rows for an owned career.
func (h *ApplicationHandler) CareerApplications(c *gin.Context) {
	careerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid career id"})
		return
	}

	claims := CurrentClaims(c)
	apps, err := h.applications.ListForCareer(c.Request.Context(), claims.EmployerID, careerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apps)
}
