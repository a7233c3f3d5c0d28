package handlers

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/RMahshie/rfdesk/internal/storage"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadHandler hands out presigned upload URLs and manages stored files
type UploadHandler struct {
	s3Service storage.S3Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(s3Service storage.S3Service) *UploadHandler {
	return &UploadHandler{s3Service: s3Service}
}

// objectKey builds "<folder>/<random>-<sanitized name>"
func objectKey(folder, fileName string) string {
	name := unsafeFileChars.ReplaceAllString(path.Base(fileName), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s/%s-%s", folder, uuid.New().String()[:8], name)
}

// CreateUpload returns a presigned PUT URL for a new file
func (h *UploadHandler) CreateUpload(ctx context.Context, req *models.CreateUploadRequest) (*models.UploadTicketResponse, error) {
	folder := req.Body.Folder
	if folder == "" {
		folder = "uploads"
	}
	key := objectKey(folder, req.Body.FileName)

	url, err := h.s3Service.GenerateUploadURL(ctx, key, req.Body.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return nil, huma.Error400BadRequest("File type not supported", err)
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to generate upload URL")
		return nil, huma.Error500InternalServerError("Failed to prepare upload")
	}
	log.Info().Str("key", key).Str("contentType", req.Body.ContentType).Msg("Upload URL generated")

	resp := &models.UploadTicketResponse{}
	resp.Body.Success = true
	resp.Body.Data = &models.UploadTicket{
		Key:       key,
		UploadURL: url,
		ExpiresAt: time.Now().UTC().Add(storage.UploadURLExpiry),
	}
	return resp, nil
}

// ListUploads lists stored files with download links
func (h *UploadHandler) ListUploads(ctx context.Context, req *models.ListUploadsRequest) (*models.UploadListResponse, error) {
	files, err := h.s3Service.ListFiles(ctx, req.Prefix)
	if err != nil {
		log.Error().Err(err).Str("prefix", req.Prefix).Msg("Failed to list files")
		return nil, huma.Error500InternalServerError("Failed to list files")
	}

	for i := range files {
		url, err := h.s3Service.GenerateDownloadURL(ctx, files[i].Key)
		if err != nil {
			log.Warn().Err(err).Str("key", files[i].Key).Msg("Failed to sign download URL")
			continue
		}
		files[i].URL = url
	}

	resp := &models.UploadListResponse{}
	resp.Body.Success = true
	resp.Body.Data = files
	return resp, nil
}

// DeleteUpload removes a stored file
func (h *UploadHandler) DeleteUpload(ctx context.Context, req *models.DeleteUploadRequest) (*models.DeleteResponse, error) {
	if strings.Contains(req.Key, "..") || strings.HasPrefix(req.Key, "/") {
		return nil, huma.Error400BadRequest("Invalid file key")
	}

	if err := h.s3Service.DeleteFile(ctx, req.Key); err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("Failed to delete file")
		return nil, huma.Error500InternalServerError("Failed to delete file")
	}
	log.Info().Str("key", req.Key).Msg("File deleted")

	return models.NewDeleteResponse(req.Key), nil
}
