package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumniportal/internal/service"
)

type AuthHandler struct {
	auth      *service.AuthService
	employers *service.EmployerService
	otp       *service.OTPService
}

func NewAuthHandler(auth *service.AuthService, employers *service.EmployerService, otp *service.OTPService) *AuthHandler {
	return &AuthHandler{auth: auth, employers: employers, otp: otp}
}

// RegisterAlumni handles POST /auth/alumni/register
func (h *AuthHandler) RegisterAlumni(c *gin.Context) {
	var req service.AlumniRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	u, err := h.auth.RegisterAlumni(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, u)
}

// RegisterEmployer handles POST /auth/employer/register
func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	e, err := h.employers.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, e)
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// LoginAlumni handles POST /auth/alumni/login
func (h *AuthHandler) LoginAlumni(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	result, err := h.auth.LoginAlumni(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// LoginEmployer handles POST /auth/employer/login
func (h *AuthHandler) LoginEmployer(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	result, err := h.auth.LoginEmployer(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// LoginAdmin handles POST /auth/admin/login
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	result, err := h.auth.LoginAdmin(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// RequestOTP handles POST /auth/forgot-password
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		UserName string `json:"user_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := h.otp.Request(c.Request.Context(), req.UserName); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "code sent"})
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		UserName string `json:"user_name"`
		Code     string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := h.otp.Verify(c.Request.Context(), req.UserName, req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "code valid"})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		UserName    string `json:"user_name"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := h.otp.Reset(c.Request.Context(), req.UserName, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "password updated"})
}
