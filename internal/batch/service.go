package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"waybill-tracker/internal/order"
	"waybill-tracker/internal/scanning"
)

// IDGenerator generates unique IDs for batches
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// UploadFile is one uploaded waybill image before processing.
type UploadFile struct {
	Name        string
	Data        []byte
	ContentType string
}

// Service handles batch operations
type Service struct {
	db          DB
	scanner     scanning.Scanner
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, scanner scanning.Scanner, storage Storage) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	specialChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length; phone cameras produce long, messy names
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = specialChars.ReplaceAllString(base, "")
	base = multiSpace.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	const maxLen = 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "waybill"
	}

	return base + ext
}

// ProcessBatch saves the uploaded images, extracts an order from each image
// through the scanner, and persists the resulting batch. Saved files are
// cleaned up when extraction or persistence fails.
func (s *Service) ProcessBatch(platform string, files []UploadFile) (*Batch, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one image is required")
	}
	if platform == "" {
		platform = "Shopee"
	}

	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedPaths := make([]string, 0, len(files))
	contentTypes := make([]string, 0, len(files))
	images := make([]scanning.ImageInput, 0, len(files))

	cleanup := func() {
		for _, path := range savedPaths {
			if err := s.storage.Delete(path); err != nil {
				slog.Warn("Failed to delete file", "filename", path, "error", err)
			}
		}
	}

	for i, f := range files {
		cleanFilename := sanitizeFilename(f.Name)
		savedPath, err := s.storage.Save(fmt.Sprintf("%s_%d_%s", id, i, cleanFilename), f.Data)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("saving file: %w", err)
		}
		savedPaths = append(savedPaths, savedPath)
		contentTypes = append(contentTypes, f.ContentType)
		images = append(images, scanning.ImageInput{Data: f.Data, MimeType: f.ContentType})
	}

	orders, err := s.scanner.ExtractOrders(images, platform)
	if err != nil {
		slog.Error("Failed to extract orders",
			"platform", platform,
			"image_count", len(images),
			"error", err,
		)
		cleanup()
		return nil, fmt.Errorf("extracting orders: %w", err)
	}
	if orders == nil {
		orders = []order.OrderData{}
	}

	batch := &Batch{
		ID:           id,
		Platform:     platform,
		Orders:       orders,
		FileNames:    savedPaths,
		ContentTypes: contentTypes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.SaveBatch(batch); err != nil {
		cleanup()
		return nil, fmt.Errorf("saving batch to database: %w", err)
	}

	return batch, nil
}

// GetBatch retrieves a batch by ID
func (s *Service) GetBatch(id string) (*Batch, error) {
	batch, err := s.db.GetBatch(id)
	if err != nil {
		return nil, fmt.Errorf("getting batch: %w", err)
	}
	return batch, nil
}

// ListBatches returns all batches, newest first
func (s *Service) ListBatches() ([]*Batch, error) {
	batches, err := s.db.ListBatches()
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].CreatedAt.After(batches[j].CreatedAt)
	})
	return batches, nil
}

// DeleteBatch removes a batch and its stored image files
func (s *Service) DeleteBatch(id string) error {
	batch, err := s.db.GetBatch(id)
	if err != nil {
		return fmt.Errorf("getting batch for deletion: %w", err)
	}

	for _, path := range batch.FileNames {
		if err := s.storage.Delete(path); err != nil {
			// Log error but continue with database deletion
			slog.Warn("Failed to delete file", "filename", path, "error", err)
		}
	}

	if err := s.db.DeleteBatch(id); err != nil {
		return fmt.Errorf("deleting batch from database: %w", err)
	}
	return nil
}

// GetBatchFile retrieves one of the original image files for a batch
func (s *Service) GetBatchFile(id string, index int) ([]byte, string, error) {
	batch, err := s.db.GetBatch(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting batch: %w", err)
	}
	if index < 0 || index >= len(batch.FileNames) {
		return nil, "", fmt.Errorf("file index out of range: %d", index)
	}

	data, err := s.storage.Get(batch.FileNames[index])
	if err != nil {
		return nil, "", fmt.Errorf("getting batch file: %w", err)
	}

	contentType := "application/octet-stream"
	if index < len(batch.ContentTypes) && batch.ContentTypes[index] != "" {
		contentType = batch.ContentTypes[index]
	}
	return data, contentType, nil
}
