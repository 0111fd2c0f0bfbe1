package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpilot/internal/auth"
	"jobpilot/internal/services"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
}

func NewResumeHandler(r *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{Resumes: r}
}

// Upload is the POST /upload-resume endpoint. Accepts one multipart file,
// PDF or plain text only; the stored file overwrites any prior upload of
// the same kind.
func (h *ResumeHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing multipart field 'file'"})
		return
	}
	defer file.Close()

	var kind string
	switch header.Header.Get("Content-Type") {
	case "application/pdf":
		kind = "pdf"
	case "text/plain":
		kind = "txt"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF or plain-text resumes are accepted"})
		return
	}

	user := auth.CurrentUser(c)
	path, err := h.Resumes.Save(user.ID, kind, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resume uploaded", "path": path})
}
