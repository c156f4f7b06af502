package delivery

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lohith8088/UrbanFix-Backend/config"
	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

const maxUploadFiles = 10

type UploadHandler struct {
	media domain.MediaStore
}

func NewUploadHandler(r *gin.Engine, media domain.MediaStore, jwtManager *utils.JWTManager) {
	handler := &UploadHandler{media: media}

	upload := r.Group("/api/upload")
	upload.Use(config.AuthMiddleware(jwtManager))
	{
		upload.POST("", handler.UploadFiles)
	}
}

// UploadFiles stores up to 10 multipart files under "files" and returns
// their URLs. Object names are random so uploads never collide.
func (h *UploadHandler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No files uploaded"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("at most %d files per upload", maxUploadFiles),
		})
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			fail(c, err, "Failed to read upload")
			return
		}

		objectName := fmt.Sprintf("reports/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		url, err := h.media.Upload(
			c.Request.Context(),
			objectName,
			file.Header.Get("Content-Type"),
			src,
			file.Size,
		)
		src.Close()
		if err != nil {
			fail(c, err, "Failed to store upload")
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"fileURLs": urls})
}
