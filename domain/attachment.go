package domain

import "time"

// TaskAttachment is the metadata record of a blob kept in object storage.
// StoragePath is the object key, not a filesystem path.
type TaskAttachment struct {
	ID          int32
	TaskID      int32
	FileName    string
	FileSize    int64
	MimeType    string
	StoragePath string
	UploadedAt  time.Time
}
