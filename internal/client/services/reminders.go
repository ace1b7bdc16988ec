package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
	"github.com/dmitrijs2005/medreminder/internal/client/endpoints"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

type ReminderService interface {
	List(ctx context.Context) ([]models.Reminder, error)
	Get(ctx context.Context, id int64) (*models.Reminder, error)
	Create(ctx context.Context, in models.ReminderInput) (*models.Reminder, error)
	Update(ctx context.Context, id int64, in models.ReminderInput) (*models.Reminder, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) (*models.Reminder, error)
}

type reminderService struct {
	exec Executor
}

func NewReminderService(exec Executor) ReminderService {
	return &reminderService{exec: exec}
}

func (s *reminderService) List(ctx context.Context) ([]models.Reminder, error) {
	list := []models.Reminder{}
	if err := s.exec.DoJSON(ctx, authed(http.MethodGet, endpoints.Reminders, nil), &list); err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return list, nil
}

func (s *reminderService) Get(ctx context.Context, id int64) (*models.Reminder, error) {
	r, err := doOne[models.Reminder](ctx, s.exec, authed(http.MethodGet, endpoints.Reminder(id), nil))
	if err != nil {
		return nil, fmt.Errorf("get reminder %d: %w", id, err)
	}
	return r, nil
}

func (s *reminderService) Create(ctx context.Context, in models.ReminderInput) (*models.Reminder, error) {
	r, err := doOne[models.Reminder](ctx, s.exec, authed(http.MethodPost, endpoints.Reminders, in))
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return r, nil
}

func (s *reminderService) Update(ctx context.Context, id int64, in models.ReminderInput) (*models.Reminder, error) {
	r, err := doOne[models.Reminder](ctx, s.exec, authed(http.MethodPut, endpoints.Reminder(id), in))
	if err != nil {
		return nil, fmt.Errorf("update reminder %d: %w", id, err)
	}
	return r, nil
}

func (s *reminderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.exec.Do(ctx, authed(http.MethodDelete, endpoints.Reminder(id), nil)); err != nil {
		return fmt.Errorf("delete reminder %d: %w", id, err)
	}
	return nil
}

func (s *reminderService) Complete(ctx context.Context, id int64) (*models.Reminder, error) {
	r, err := doOne[models.Reminder](ctx, s.exec, authed(http.MethodPatch, endpoints.CompleteReminder(id), nil))
	if err != nil {
		return nil, fmt.Errorf("complete reminder %d: %w", id, err)
	}
	return r, nil
}

func authed(method, path string, body any) client.Request {
	return client.Request{Method: method, Path: path, Body: body, RequiresAuth: true}
}

// doOne decodes a single object. It returns nil when the server answered
// with an empty body.
func doOne[T any](ctx context.Context, exec Executor, req client.Request) (*T, error) {
	data, err := exec.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &v, nil
}
