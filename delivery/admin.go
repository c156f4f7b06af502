package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lohith8088/UrbanFix-Backend/config"
	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/dto"
	"github.com/lohith8088/UrbanFix-Backend/middleware"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

type AdminHandler struct {
	adminUC domain.AdminUseCase
	userUC  domain.UserUseCase
}

func NewAdminHandler(r *gin.Engine, adminUC domain.AdminUseCase, userUC domain.UserUseCase, jwtManager *utils.JWTManager) {
	handler := &AdminHandler{adminUC: adminUC, userUC: userUC}

	admin := r.Group("/api/admin")
	admin.Use(config.AuthMiddleware(jwtManager), middleware.AdminOnly())
	{
		admin.GET("/reports", handler.GetReports)
		admin.PUT("/report/:id/approve", handler.ApproveReport)
		admin.PUT("/report/:id/reject", handler.RejectReport)
		admin.POST("/mappings", handler.CreateMapping)
		admin.GET("/mappings", handler.GetMappings)
		admin.DELETE("/mappings/:id", handler.DeleteMapping)
		admin.GET("/users", handler.GetUsers)
		admin.POST("/users", handler.ProvisionUser)
	}
}

// GetReports supports ?status=&category=&startDate=YYYY-MM-DD&endDate=YYYY-MM-DD.
func (h *AdminHandler) GetReports(c *gin.Context) {
	filter := domain.ReportFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	if start, end := c.Query("startDate"), c.Query("endDate"); start != "" && end != "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid startDate"})
			return
		}
		endDate, err := time.Parse("2006-01-02", end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid endDate"})
			return
		}
		filter.StartDate = &startDate
		filter.EndDate = &endDate
	}

	reports, err := h.adminUC.GetReports(c.Request.Context(), filter)
	if err != nil {
		fail(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *AdminHandler) ApproveReport(c *gin.Context) {
	report, err := h.adminUC.ApproveReport(c.Request.Context(), c.Param("id"), c.GetString("userUUID"))
	if err != nil {
		fail(c, err, "Failed to approve report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) RejectReport(c *gin.Context) {
	report, err := h.adminUC.RejectReport(c.Request.Context(), c.Param("id"), c.GetString("userUUID"))
	if err != nil {
		fail(c, err, "Failed to reject report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) CreateMapping(c *gin.Context) {
	var req dto.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	mapping, err := h.adminUC.CreateMapping(c.Request.Context(), req.Category, req.AuthorityEmail)
	if err != nil {
		fail(c, err, "Failed to create mapping")
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

func (h *AdminHandler) GetMappings(c *gin.Context) {
	mappings, err := h.adminUC.GetMappings(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list mappings")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

func (h *AdminHandler) DeleteMapping(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid mapping id"})
		return
	}

	if err := h.adminUC.DeleteMapping(c.Request.Context(), uint(id)); err != nil {
		fail(c, err, "Failed to delete mapping")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mapping deleted"})
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminUC.GetUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		fail(c, err, "Failed to list users")
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.MakeUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *AdminHandler) ProvisionUser(c *gin.Context) {
	var req dto.ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	user, err := h.userUC.ProvisionUser(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		fail(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.MakeUserResponse(user))
}
