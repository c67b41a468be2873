package attachment

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/infrastructure/storage"
	"github.com/fastygo/alle/repository"
)

// Upload is one file received for a task.
type Upload struct {
	TaskID      int32
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Attachment is a stored record plus a presigned download URL.
type Attachment struct {
	domain.TaskAttachment
	DownloadURL string
}

// Service keeps attachment records and their blobs in step. The two stores
// are not transactional: blobs are written before and removed before their
// records, so a record never outlives a blob it could still reach.
type Service struct {
	attachments repository.AttachmentRepository
	tasks       repository.TaskRepository
	store       storage.Store
	expiry      time.Duration
	logger      *zap.Logger
}

func New(attachments repository.AttachmentRepository, tasks repository.TaskRepository, store storage.Store, expiry time.Duration, logger *zap.Logger) *Service {
	if expiry <= 0 {
		expiry = storage.PresignExpiry
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		attachments: attachments,
		tasks:       tasks,
		store:       store,
		expiry:      expiry,
		logger:      logger,
	}
}

// Upload stores the blob, then the record. If the record cannot be written
// the blob is removed again.
func (s *Service) Upload(ctx context.Context, in Upload) (*domain.TaskAttachment, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "file name is required")
	}
	if _, err := s.tasks.FindByID(ctx, in.TaskID); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(in.TaskID, in.FileName)
	contentType := in.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}
	if err := s.store.Put(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, err
	}

	record, err := s.attachments.Create(ctx, domain.TaskAttachment{
		TaskID:      in.TaskID,
		FileName:    in.FileName,
		FileSize:    in.Size,
		MimeType:    contentType,
		StoragePath: key,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to remove blob after record failure",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("attachment uploaded",
		zap.Int32("task_id", in.TaskID),
		zap.Int32("attachment_id", record.ID),
		zap.Int64("size", in.Size))
	return record, nil
}

// Register records metadata for a blob that is already in storage.
func (s *Service) Register(ctx context.Context, a domain.TaskAttachment) (*domain.TaskAttachment, error) {
	return s.attachments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int32) (*Attachment, error) {
	record, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.withURL(ctx, *record)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ListByTask(ctx context.Context, taskID int32) ([]Attachment, error) {
	records, err := s.attachments.FindByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]Attachment, 0, len(records))
	for _, r := range records {
		a, err := s.withURL(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Delete removes the blob and then the record. A blob failure leaves the
// record in place.
func (s *Service) Delete(ctx context.Context, id int32) (bool, error) {
	record, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.store.Delete(ctx, record.StoragePath); err != nil {
		return false, err
	}
	n, err := s.attachments.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAllForTask removes every blob of the task, then its records. It
// stops at the first blob that cannot be removed.
func (s *Service) DeleteAllForTask(ctx context.Context, taskID int32) (int64, error) {
	records, err := s.attachments.FindByTask(ctx, taskID)
	if err != nil {
		return 0, err
	}
	for _, r := range records {
		if err := s.store.Delete(ctx, r.StoragePath); err != nil {
			return 0, err
		}
	}
	if len(records) == 0 {
		return 0, nil
	}
	return s.attachments.DeleteByTask(ctx, taskID)
}

func (s *Service) withURL(ctx context.Context, record domain.TaskAttachment) (Attachment, error) {
	u, err := s.store.PresignGet(ctx, record.StoragePath, s.expiry)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{TaskAttachment: record, DownloadURL: u}, nil
}
