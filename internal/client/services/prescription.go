package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/mediastore"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
	"github.com/dmitrijs2005/medreminder/internal/filex"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

const prescriptionReminderTitle = "Prescription Upload"

// UserIDSource yields the signed-in user's id, "" when unknown.
type UserIDSource interface {
	UserID(ctx context.Context) (string, error)
}

type PrescriptionUpload struct {
	File       *models.FileRecord
	ReminderID *int64
	Media      *mediastore.Media
}

// PrescriptionService uploads a prescription document and files it under a
// fresh reminder.
type PrescriptionService interface {
	Upload(ctx context.Context, path string) (*PrescriptionUpload, error)
}

type prescriptionService struct {
	reminders ReminderService
	files     FileService
	users     UserIDSource
	media     mediastore.Uploader
	logger    logging.Logger
	now       func() time.Time
}

// NewPrescriptionService wires the upload workflow. media may be nil, in
// which case the document travels inline as base64 only.
func NewPrescriptionService(reminders ReminderService, files FileService, users UserIDSource,
	media mediastore.Uploader, logger logging.Logger) PrescriptionService {
	return &prescriptionService{
		reminders: reminders,
		files:     files,
		users:     users,
		media:     media,
		logger:    logger,
		now:       time.Now,
	}
}

// Upload runs: read the document, push it to the media store, create a
// reminder for it, then record the file. A failed reminder does not stop
// the upload; the file is then recorded without a reminder id.
func (s *prescriptionService) Upload(ctx context.Context, path string) (*PrescriptionUpload, error) {
	doc, err := filex.ReadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("prescription upload: %w", err)
	}

	out := &PrescriptionUpload{}
	if s.media != nil {
		if out.Media, err = s.media.Upload(ctx, doc); err != nil {
			return nil, fmt.Errorf("prescription upload: %w", err)
		}
	}

	out.ReminderID = s.createReminder(ctx, doc.Name)

	upload := models.FileUpload{
		FileName:   doc.Name,
		MimeType:   doc.MimeType,
		SizeBytes:  int64(len(doc.Data)),
		Base64Data: base64.StdEncoding.EncodeToString(doc.Data),
		ReminderID: out.ReminderID,
	}
	if out.Media != nil {
		upload.URL = out.Media.URL
		upload.PublicID = out.Media.PublicID
	}

	if out.File, err = s.files.Upload(ctx, upload); err != nil {
		return nil, fmt.Errorf("prescription upload: %w", err)
	}
	return out, nil
}

func (s *prescriptionService) createReminder(ctx context.Context, fileName string) *int64 {
	in := models.ReminderInput{
		Title:        prescriptionReminderTitle,
		Description:  "Document: " + fileName,
		ReminderTime: models.NewTimestamp(s.now()),
		UserID:       s.userID(ctx),
	}

	r, err := s.reminders.Create(ctx, in)
	if err != nil {
		s.logger.Warn(ctx, "prescription reminder not created, continuing without it", "error", err)
		return nil
	}
	if r == nil || r.ID == 0 {
		s.logger.Warn(ctx, "prescription reminder created without an id")
		return nil
	}
	return &r.ID
}

func (s *prescriptionService) userID(ctx context.Context) *int64 {
	raw, err := s.users.UserID(ctx)
	if err != nil {
		s.logger.Warn(ctx, "user id unavailable", "error", err)
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}
