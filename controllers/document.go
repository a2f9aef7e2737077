package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"faculty-activity-api/config"
	"faculty-activity-api/models"
	"faculty-activity-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDocumentSize = 10 << 20 // 10 MB

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// UploadSupportingDocument handles POST /documents/:type/:id. Only the
// submitter may attach a document, and only while the submission is still
// pending. Stored names are random so originals cannot collide or be
// guessed.
func UploadSupportingDocument(c *gin.Context) {
	recordType, recordID, ok := recordParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := services.FetchRecord(config.DB, recordType, recordID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if record.SubmitterID() != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only attach documents to your own submissions"})
		return
	}
	if record.Envelope().Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Decided submissions cannot be modified"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if file.Size > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	targetDir := filepath.Join(uploadPath(), recordType)
	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	storedName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	storedPath := filepath.Join(recordType, storedName)
	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, storedName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	if err := config.DB.Model(record).Updates(map[string]interface{}{
		"supporting_document": storedPath,
		"update_at":           time.Now(),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Document uploaded",
		"supporting_document": storedPath,
	})
}

// DownloadSupportingDocument handles GET /documents/:type/:id with the
// same visibility rules as the submission itself.
func DownloadSupportingDocument(c *gin.Context) {
	recordType, recordID, ok := recordParams(c)
	if !ok {
		return
	}
	record, _, ok := fetchViewableRecord(c, recordType, recordID)
	if !ok {
		return
	}

	var stored string
	switch rec := record.(type) {
	case *models.ResearchActivity:
		if rec.SupportingDocument != nil {
			stored = *rec.SupportingDocument
		}
	case *models.Course:
		if rec.SupportingDocument != nil {
			stored = *rec.SupportingDocument
		}
	case *models.Authorship:
		if rec.SupportingDocument != nil {
			stored = *rec.SupportingDocument
		}
	case *models.ExtensionActivity:
		if rec.SupportingDocument != nil {
			stored = *rec.SupportingDocument
		}
	}
	if stored == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No supporting document attached"})
		return
	}

	fullPath := filepath.Join(uploadPath(), filepath.Clean(stored))
	if _, err := os.Stat(fullPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document file is missing"})
		return
	}

	c.FileAttachment(fullPath, filepath.Base(stored))
}
