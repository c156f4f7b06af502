package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lohith8088/UrbanFix-Backend/config"
	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/dto"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

type ReportHandler struct {
	reportUC domain.ReportUseCase
}

func NewReportHandler(r *gin.Engine, reportUC domain.ReportUseCase, jwtManager *utils.JWTManager) {
	handler := &ReportHandler{reportUC: reportUC}

	// Public map view
	r.GET("/api/report/all", handler.GetAllReports)

	reports := r.Group("/api/report")
	reports.Use(config.AuthMiddleware(jwtManager))
	{
		reports.POST("", handler.CreateReport)
		reports.GET("/user/:id", handler.GetUserReports)
		reports.GET("/:id", handler.GetReportByID)
		reports.PUT("/:id", handler.UpdateReport)
		reports.PUT("/:id/status", handler.UpdateStatus)
		reports.DELETE("/:id", handler.DeleteReport)
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	input := dto.MakeCreateReportInput(&req, c.GetString("userUUID"))
	report, err := h.reportUC.CreateReport(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to create report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetAllReports(c *gin.Context) {
	reports, err := h.reportUC.GetAllReports(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetUserReports(c *gin.Context) {
	reports, err := h.reportUC.GetReportsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetReportByID(c *gin.Context) {
	report, err := h.reportUC.GetReportByUUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	report, err := h.reportUC.UpdateReport(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userUUID"),
		dto.MakeUpdateReportInput(&req),
	)
	if err != nil {
		fail(c, err, "Failed to update report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	report, err := h.reportUC.UpdateStatus(
		c.Request.Context(),
		c.Param("id"),
		req.Status,
		c.GetString("userUUID"),
	)
	if err != nil {
		fail(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	err := h.reportUC.DeleteReport(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userUUID"),
		c.GetString("role"),
	)
	if err != nil {
		fail(c, err, "Failed to delete report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted"})
}
