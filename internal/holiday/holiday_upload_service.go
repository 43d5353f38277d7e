package holiday

import (
	"context"
	"encoding/json"
	"strings"

	"go-hrms/internal/audit"
	"go-hrms/internal/calendar"
	holidayerrors "go-hrms/internal/holiday/errors"
	"go-hrms/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadService runs OCR extraction on calendar images. It records every
// attempt and never writes holidays.
//
//go:generate mockgen -source=holiday_upload_service.go -destination=mock/holiday_upload_service_mock.go -package=mock
type UploadService interface {
	Extract(ctx context.Context, mimeType string, image []byte) (ExtractResponse, error)
}

type uploadService struct {
	repo      Repository
	recorder  audit.Recorder
	extractor Extractor
	storage   Storage
	maxBytes  int64
	logger    *zap.Logger
}

// NewUploadService accepts a nil extractor, in which case Extract reports the
// feature as unavailable.
func NewUploadService(repo Repository, recorder audit.Recorder, extractor Extractor, storage Storage, maxBytes int64, logger ...*zap.Logger) UploadService {
	l := zap.L().Named("holiday.upload")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.upload")
	}
	return &uploadService{
		repo:      repo,
		recorder:  recorder,
		extractor: extractor,
		storage:   storage,
		maxBytes:  maxBytes,
		logger:    l,
	}
}

func (s *uploadService) Extract(ctx context.Context, mimeType string, image []byte) (ExtractResponse, error) {
	s.logger.Debug("extract holidays", zap.String("mime_type", mimeType), zap.Int("bytes", len(image)))

	if s.extractor == nil {
		return ExtractResponse{}, holidayerrors.ErrExtractorUnavailable
	}
	ext, ok := imageExtensions[mimeType]
	if !ok {
		s.logger.Warn("unsupported upload type", zap.String("mime_type", mimeType))
		return ExtractResponse{}, holidayerrors.ErrUnsupportedImage
	}
	if s.maxBytes > 0 && int64(len(image)) > s.maxBytes {
		s.logger.Warn("upload too large", zap.Int("bytes", len(image)))
		return ExtractResponse{}, holidayerrors.ErrImageTooLarge
	}

	normalized, normalizedType, err := normalizeImage(image, mimeType)
	if err != nil {
		s.logger.Warn("undecodable upload", zap.String("mime_type", mimeType), zap.Error(err))
		return ExtractResponse{}, holidayerrors.ErrUnreadableImage
	}

	path, err := s.storage.Save(ctx, ext, image)
	if err != nil {
		s.logger.Error("store upload failed", zap.Error(err))
		return ExtractResponse{}, err
	}

	upload := &HolidayUpload{
		UploadedBy:       actorID(ctx),
		ImagePath:        path,
		ExtractionStatus: ExtractionPending,
	}
	if err := s.repo.CreateUpload(ctx, upload); err != nil {
		s.logger.Error("create upload record failed", zap.Error(err))
		return ExtractResponse{}, err
	}
	if err := s.recorder.RecordCreate(ctx, *upload); err != nil {
		return ExtractResponse{}, err
	}

	candidates, err := s.extractor.Extract(ctx, normalized, normalizedType)
	if err != nil {
		s.logger.Error("holiday extraction failed", zap.String("upload_id", upload.ID.String()), zap.Error(err))
		s.finish(ctx, upload, ExtractionFailed, nil, err.Error())
		return ExtractResponse{}, apperror.Wrap(err, holidayerrors.ErrExtractionFailed.Code, holidayerrors.ErrExtractionFailed.Message, holidayerrors.ErrExtractionFailed.HTTPStatus).
			WithDetails(map[string]string{"upload_id": upload.ID.String()})
	}

	resp := ExtractResponse{
		UploadID:  upload.ID.String(),
		Status:    ExtractionSuccess,
		ImagePath: path,
		Holidays:  []CreateHolidayRequest{},
		Errors:    []SkippedHoliday{},
	}
	for i, c := range candidates {
		if err := validateExtracted(c); err != nil {
			resp.Errors = append(resp.Errors, SkippedHoliday{Index: i, Data: c, Error: errorMessage(err)})
			continue
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Region = strings.TrimSpace(c.Region)
		resp.Holidays = append(resp.Holidays, c)
	}
	resp.TotalCount = len(resp.Holidays)

	s.finish(ctx, upload, ExtractionSuccess, resp.Holidays, "")

	s.logger.Info("holidays extracted",
		zap.String("upload_id", resp.UploadID),
		zap.Int("valid", resp.TotalCount),
		zap.Int("invalid", len(resp.Errors)),
	)
	return resp, nil
}

// finish stores the outcome on the upload record. A failure here is logged
// and does not change what the caller sees.
func (s *uploadService) finish(ctx context.Context, upload *HolidayUpload, status string, data []CreateHolidayRequest, message string) {
	before := *upload
	upload.ExtractionStatus = status
	upload.ErrorMessage = message
	if data != nil {
		if payload, err := json.Marshal(data); err == nil {
			upload.ExtractedData = datatypes.JSON(payload)
		}
	}

	if err := s.repo.UpdateUpload(ctx, upload); err != nil {
		s.logger.Error("update upload record failed", zap.String("upload_id", upload.ID.String()), zap.Error(err))
		return
	}
	if err := s.recorder.RecordUpdate(ctx, before, *upload); err != nil {
		s.logger.Error("audit upload record failed", zap.String("upload_id", upload.ID.String()), zap.Error(err))
	}
}

// validateExtracted checks shape only. Past dates are allowed since a scanned
// calendar may cover the whole year.
func validateExtracted(c CreateHolidayRequest) error {
	if len([]rune(strings.TrimSpace(c.Name))) < minNameLength {
		return holidayerrors.ErrNameTooShort
	}
	if _, err := calendar.ParseDate(strings.TrimSpace(c.Date)); err != nil {
		return holidayerrors.ErrInvalidDate
	}
	if len(c.Region) > 100 {
		return apperror.InvalidField("region")
	}
	return nil
}
