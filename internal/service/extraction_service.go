package service

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"veridoc/internal/config"
	"veridoc/internal/cost"
	"veridoc/internal/domain"
	"veridoc/internal/pipeline"
	"veridoc/internal/port"
)

// ExtractionInput is the DTO for document extraction requests. Filename is
// optional; raw-body uploads leave it empty.
type ExtractionInput struct {
	Image    []byte
	Filename string
	Options  pipeline.Options
}

// ExtractionService defines the document extraction contract.
type ExtractionService interface {
	Extract(ctx context.Context, input ExtractionInput) (*domain.PipelineResult, error)
	Models() []domain.ModelInfo
	Defaults() (classification, extraction string)
}

type extractionService struct {
	pipe       *pipeline.Pipeline
	accountant *cost.Accountant
	storage    port.ObjectStorage // nil disables archival
	upload     config.UploadConfig
	archive    config.ArchiveConfig
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	pipe *pipeline.Pipeline,
	accountant *cost.Accountant,
	storage port.ObjectStorage,
	upload config.UploadConfig,
	archive config.ArchiveConfig,
) ExtractionService {
	return &extractionService{
		pipe:       pipe,
		accountant: accountant,
		storage:    storage,
		upload:     upload,
		archive:    archive,
	}
}

func (s *extractionService) Extract(ctx context.Context, input ExtractionInput) (*domain.PipelineResult, error) {
	if len(input.Image) == 0 {
		return nil, domain.ErrEmptyFile
	}

	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.Image)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Validate file extension when a filename was supplied
	if input.Filename != "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return nil, domain.ErrUnsupportedFileType
		}
	}

	// Magic-byte content type detection; the sniffed type wins over
	// whatever the client claimed.
	head := input.Image
	if len(head) > 512 {
		head = head[:512]
	}
	detectedType := http.DetectContentType(head)
	imageType, ok := domain.AllowedContentTypes[detectedType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	input.Options.MIMEType = detectedType

	s.archiveImage(ctx, input.Image, imageType, detectedType)

	result, err := s.pipe.Process(ctx, input.Image, input.Options)
	if err != nil {
		log.Printf("extractionService.Extract: pipeline failed: %v", err)
		return nil, err
	}

	log.Printf("extractionService.Extract: %s document processed (status %s, cost $%.6f)",
		result.DocumentType, result.Status, result.Cost.TotalCost)
	return result, nil
}

// archiveImage copies the uploaded image to the configured S3 bucket.
// Archival is best effort; a failure never blocks extraction.
func (s *extractionService) archiveImage(ctx context.Context, image []byte, imageType domain.ImageType, contentType string) {
	if s.storage == nil || !s.archive.Enabled() {
		return
	}

	key := uuid.New().String() + "." + string(imageType)
	if s.archive.Prefix != "" {
		key = strings.TrimSuffix(s.archive.Prefix, "/") + "/" + key
	}

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archive.Bucket,
		Key:         key,
		Body:        bytes.NewReader(image),
		ContentType: contentType,
		Size:        int64(len(image)),
	})
	if err != nil {
		log.Printf("extractionService.archiveImage: upload failed for %s: %v", key, err)
		return
	}
	log.Printf("extractionService.archiveImage: archived %s (%d bytes)", key, len(image))
}

func (s *extractionService) Models() []domain.ModelInfo {
	return s.accountant.Models()
}

func (s *extractionService) Defaults() (classification, extraction string) {
	return s.pipe.Defaults()
}
