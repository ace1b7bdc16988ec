package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medreminder/internal/client/endpoints"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

type FileService interface {
	// List returns the account's files, only those of one reminder when
	// reminderID is non-nil.
	List(ctx context.Context, reminderID *int64) ([]models.FileRecord, error)
	Upload(ctx context.Context, in models.FileUpload) (*models.FileRecord, error)
	Get(ctx context.Context, id int64) (*models.FileRecord, error)
	Delete(ctx context.Context, id int64) error
}

type fileService struct {
	exec Executor
}

func NewFileService(exec Executor) FileService {
	return &fileService{exec: exec}
}

func (s *fileService) List(ctx context.Context, reminderID *int64) ([]models.FileRecord, error) {
	data, err := s.exec.Do(ctx, authed(http.MethodGet, endpoints.FileList(reminderID), nil))
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	list, err := models.DecodeFileList(data)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return list, nil
}

func (s *fileService) Upload(ctx context.Context, in models.FileUpload) (*models.FileRecord, error) {
	f, err := doOne[models.FileRecord](ctx, s.exec, authed(http.MethodPost, endpoints.Files, in))
	if err != nil {
		return nil, fmt.Errorf("upload file %s: %w", in.FileName, err)
	}
	return f, nil
}

func (s *fileService) Get(ctx context.Context, id int64) (*models.FileRecord, error) {
	f, err := doOne[models.FileRecord](ctx, s.exec, authed(http.MethodGet, endpoints.File(id), nil))
	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, err)
	}
	return f, nil
}

func (s *fileService) Delete(ctx context.Context, id int64) error {
	if _, err := s.exec.Do(ctx, authed(http.MethodDelete, endpoints.File(id), nil)); err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	return nil
}
