package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lohith8088/UrbanFix-Backend/config"
	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/dto"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
	userUC domain.UserUseCase
}

// NewAuthHandler wires the auth routes. The OTP-issuing endpoints sit
// behind the rate limiter when one is configured.
func NewAuthHandler(
	r *gin.Engine,
	authUC domain.AuthUseCase,
	userUC domain.UserUseCase,
	jwtManager *utils.JWTManager,
	otpLimiter gin.HandlerFunc,
) {
	handler := &AuthHandler{authUC: authUC, userUC: userUC}

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
	})

	public := r.Group("/api/auth")
	{
		public.POST("/login", handler.Login)
		public.POST("/verify-email-otp", handler.VerifyOTP)
		public.POST("/reset-password", handler.ResetPassword)
	}

	throttled := r.Group("/api/auth")
	if otpLimiter != nil {
		throttled.Use(otpLimiter)
	}
	{
		throttled.POST("/register", handler.Register)
		throttled.POST("/resend-register-otp", handler.ResendOTP)
		throttled.POST("/forgot-password", handler.ForgotPassword)
	}

	protected := r.Group("/api/auth")
	protected.Use(config.AuthMiddleware(jwtManager))
	{
		protected.PUT("/profile", handler.UpdateProfile)
	}

	me := r.Group("/api/user")
	me.Use(config.AuthMiddleware(jwtManager))
	{
		me.GET("/me", handler.Me)
		me.GET("/:id", handler.GetUserByID)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		fail(c, err, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to email"})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	result, err := h.authUC.VerifyRegisterOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		fail(c, err, "Failed to verify OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.MakeUserResponse(result.User),
		"token":   result.Token,
	})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ResendRegisterOTP(c.Request.Context(), req.Email); err != nil {
		fail(c, err, "Could not resend OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP resent"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.MakeUserResponse(result.User),
		"token":   result.Token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err, "Failed to send reset OTP")
		return
	}

	// Identical response whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If this email exists, an OTP has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	result, err := h.authUC.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		fail(c, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful",
		"user":    dto.MakeUserResponse(result.User),
		"token":   result.Token,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userUUID := c.GetString("userUUID")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userUUID, req.Name, req.Phone)
	if err != nil {
		fail(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"user":    dto.MakeUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userUUID := c.GetString("userUUID")

	user, err := h.userUC.GetUserByUUID(c.Request.Context(), userUUID)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.MakeUserResponse(user))
}

func (h *AuthHandler) GetUserByID(c *gin.Context) {
	user, err := h.userUC.GetUserByUUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.MakeUserResponse(user))
}
