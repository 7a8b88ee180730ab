package controllers

import (
	"net/http"

	"kindred_server/services"
)

// S3Controller hands out presigned URLs for profile photo storage
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller creates a new instance of S3Controller
func NewS3Controller(s3Service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: s3Service}
}

// GetUploadURL returns a presigned PUT URL for a profile photo
func (c *S3Controller) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "fileName and fileType are required"})
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(fileName, fileType)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetReadURL returns a presigned GET URL for a stored photo key
func (c *S3Controller) GetReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "key is required"})
		return
	}

	url, err := c.S3Service.GenerateReadURL(key)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
