package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrUnexpectedListShape = errors.New("unexpected list shape")

// FileRecord is a document attached to the account, optionally tied to a reminder.
type FileRecord struct {
	ID         int64     `json:"id"`
	ReminderID *int64    `json:"reminderId,omitempty"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	URL        string    `json:"url,omitempty"`
	PublicID   string    `json:"publicId,omitempty"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (fr *FileRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("file: %w", err)
	}

	var out FileRecord
	if out.ID, _, err = f.id("fileId", "id"); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	rid, ok, err := f.id("reminderId")
	if err != nil {
		return fmt.Errorf("file: %w", err)
	}
	if ok {
		out.ReminderID = &rid
	}
	if out.FileName, err = f.str("fileName", "name"); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	if out.MimeType, err = f.str("mimeType"); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	if out.URL, err = f.str("url", "secureUrl"); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	if out.PublicID, err = f.str("publicId"); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	size, _, err := f.id("sizeBytes")
	if err != nil {
		return fmt.Errorf("file: %w", err)
	}
	out.SizeBytes = size
	if out.CreatedAt, err = f.time("createdAt", "uploadedAt"); err != nil {
		return fmt.Errorf("file: %w", err)
	}

	*fr = out
	return nil
}

// FileUpload is the body of the file create call. Either URL (the document
// already lives in the media store) or Base64Data carries the content.
type FileUpload struct {
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	URL        string `json:"url,omitempty"`
	PublicID   string `json:"publicId,omitempty"`
	SizeBytes  int64  `json:"sizeBytes"`
	Base64Data string `json:"base64Data,omitempty"`
	ReminderID *int64 `json:"reminderId,omitempty"`
}

// DecodeFileList accepts either a bare array or an {"items": [...]} wrapper.
// An empty body yields an empty list.
func DecodeFileList(data json.RawMessage) ([]FileRecord, error) {
	if len(data) == 0 || isNull(data) {
		return []FileRecord{}, nil
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []FileRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode file list: %w", err)
		}
		return list, nil
	}

	var wrapped struct {
		Items []FileRecord `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedListShape, err)
	}
	if wrapped.Items == nil {
		return []FileRecord{}, nil
	}
	return wrapped.Items, nil
}
