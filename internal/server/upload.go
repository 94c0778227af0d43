package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coursecal/internal/extract"
	"coursecal/internal/models"
)

const (
	// maxUploadSize bounds accepted documents before extraction.
	maxUploadSize = 10 << 20 // 10MB

	// extractionTimeout bounds the whole upload path including the model
	// call.
	extractionTimeout = 5 * time.Minute
)

// UploadUsage documents the upload endpoint for GET requests.
func (s *Server) UploadUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "Upload endpoint - use POST to upload files",
		"usage":            "POST /api/upload with multipart form data containing a \"file\" field",
		"supportedFormats": []string{"TXT"},
		"maxSize":          "10MB",
	})
}

// Upload accepts one plain-text syllabus, extracts its events and merges
// them into the store. Newly extracted events are selected by default.
//
// The response reports whether the document was truncated to the model
// input budget; truncation is not hidden as full success.
func (s *Server) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if !isPlainText(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only TXT files are supported. Please upload a .txt file."})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	text, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), extractionTimeout)
	defer cancel()

	s.logger.Info("processing upload", "filename", fileHeader.Filename, "size", fileHeader.Size)
	result, err := s.extractor.Extract(ctx, string(text))
	if err != nil {
		s.uploadError(c, err)
		return
	}

	extract.AssignIDs(result.Events)

	course := result.Course
	if course == "" {
		course = fileHeader.Filename
	}
	for i := range result.Events {
		if result.Events[i].Course == "" {
			result.Events[i].Course = course
		}
	}

	s.store.AddBundle(models.CourseBundle{
		Course:   course,
		Events:   result.Events,
		Filename: fileHeader.Filename,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"course":    course,
		"events":    result.Events,
		"filename":  fileHeader.Filename,
		"truncated": result.Truncated,
	})
}

func (s *Server) uploadError(c *gin.Context, err error) {
	var parseErr *extract.ParseError
	switch {
	case errors.Is(err, extract.ErrNoText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text could be extracted from the file. Please ensure the file contains readable text."})
	case errors.As(err, &parseErr):
		s.logger.Error("model returned invalid JSON", "responsePrefix", parseErr.RawPrefix)
		c.JSON(http.StatusInternalServerError, gin.H{"error": parseErr.Error()})
	default:
		s.logger.Error("extraction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// isPlainText accepts only text/plain content or a .txt extension. The check
// runs before anything reaches the extraction engine.
func isPlainText(filename, contentType string) bool {
	if strings.HasPrefix(contentType, "text/plain") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}
