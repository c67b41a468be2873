package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type attachmentRepository struct {
	base
}

// NewAttachmentRepository returns a gorm-backed AttachmentRepository.
func NewAttachmentRepository(db *gorm.DB, opts ...Option) repository.AttachmentRepository {
	return &attachmentRepository{base: newBase(db, opts)}
}

func (r *attachmentRepository) Create(ctx context.Context, a domain.TaskAttachment) (*domain.TaskAttachment, error) {
	if a.StoragePath == "" || a.FileName == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "file name and storage path are required")
	}
	if a.UploadedAt.IsZero() {
		a.UploadedAt = r.now()
	}
	m := attachmentModel{
		TaskID:      a.TaskID,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		MimeType:    a.MimeType,
		StoragePath: a.StoragePath,
		UploadedAt:  a.UploadedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *attachmentRepository) FindByID(ctx context.Context, id int32) (*domain.TaskAttachment, error) {
	var m attachmentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAttachmentNotFound)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *attachmentRepository) FindByTask(ctx context.Context, taskID int32) ([]domain.TaskAttachment, error) {
	var rows []attachmentModel
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	out := make([]domain.TaskAttachment, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&attachmentModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

func (r *attachmentRepository) DeleteByTask(ctx context.Context, taskID int32) (int64, error) {
	res := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&attachmentModel{})
	return res.RowsAffected, dbError(res.Error)
}
