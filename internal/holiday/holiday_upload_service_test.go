package holiday_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"testing"

	"go-hrms/internal/audit"
	"go-hrms/internal/holiday"
	holidayerrors "go-hrms/internal/holiday/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type fakeExtractor struct {
	candidates []holiday.CreateHolidayRequest
	err        error
	gotImage   []byte
	gotType    string
}

func (f *fakeExtractor) Extract(ctx context.Context, image []byte, mimeType string) ([]holiday.CreateHolidayRequest, error) {
	f.gotImage = image
	f.gotType = mimeType
	return f.candidates, f.err
}

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 200, G: 200, B: 200, A: 255}}, image.Point{}, draw.Src)
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type fakeStorage struct {
	saved int
}

func (f *fakeStorage) Save(ctx context.Context, ext string, data []byte) (string, error) {
	f.saved++
	return "2026/10/upload" + ext, nil
}

func TestUploadService_Extract(t *testing.T) {
	ctx := adminCtx()
	pngData := encodePNG(t, 40, 30)

	t.Run("success keeps valid candidates and reports the rest", func(t *testing.T) {
		repo := newFakeHolidayRepository()
		rec := &fakeRecorder{}
		ext := &fakeExtractor{candidates: []holiday.CreateHolidayRequest{
			{Date: "2026-01-26", Name: "Republic Day", IsRecurring: true},
			{Date: "26-01-2026", Name: "Bad Date"},
			{Date: "2026-08-15", Name: " Independence Day ", Region: " Mumbai "},
		}}
		svc := holiday.NewUploadService(repo, rec, ext, &fakeStorage{}, 1<<20)

		resp, err := svc.Extract(ctx, "image/png", pngData)

		assert.NoError(t, err)
		assert.Equal(t, holiday.ExtractionSuccess, resp.Status)
		assert.Equal(t, "2026/10/upload.png", resp.ImagePath)
		assert.Equal(t, 2, resp.TotalCount)
		assert.Equal(t, "Independence Day", resp.Holidays[1].Name)
		assert.Equal(t, "Mumbai", resp.Holidays[1].Region)
		assert.Len(t, resp.Errors, 1)
		assert.Equal(t, 1, resp.Errors[0].Index)

		upload := repo.uploads[0]
		assert.Equal(t, holiday.ExtractionSuccess, upload.ExtractionStatus)
		var stored []holiday.CreateHolidayRequest
		assert.NoError(t, json.Unmarshal(upload.ExtractedData, &stored))
		assert.Len(t, stored, 2)
		assert.Empty(t, repo.rows, "extraction must never write holidays")
		assert.Equal(t, 1, rec.count(audit.ActionCreate))
	})

	t.Run("negative extractor failure marks upload failed", func(t *testing.T) {
		repo := newFakeHolidayRepository()
		rec := &fakeRecorder{}
		svc := holiday.NewUploadService(repo, rec, &fakeExtractor{err: errors.New("quota exceeded")}, &fakeStorage{}, 0)

		_, err := svc.Extract(ctx, "image/jpeg", encodeJPEG(t, 20, 20))

		assert.ErrorIs(t, err, holidayerrors.ErrExtractionFailed)
		assert.Equal(t, holiday.ExtractionFailed, repo.uploads[0].ExtractionStatus)
		assert.Equal(t, "quota exceeded", repo.uploads[0].ErrorMessage)
		assert.Empty(t, repo.rows)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 502, httpErr.Status)
	})

	t.Run("negative unsupported type stores nothing", func(t *testing.T) {
		repo := newFakeHolidayRepository()
		storage := &fakeStorage{}
		svc := holiday.NewUploadService(repo, &fakeRecorder{}, &fakeExtractor{}, storage, 0)

		_, err := svc.Extract(ctx, "application/pdf", []byte("%PDF"))

		assert.ErrorIs(t, err, holidayerrors.ErrUnsupportedImage)
		assert.Equal(t, 0, storage.saved)
		assert.Empty(t, repo.uploads)
	})

	t.Run("large image is shrunk to jpeg for the extractor", func(t *testing.T) {
		ext := &fakeExtractor{}
		svc := holiday.NewUploadService(newFakeHolidayRepository(), &fakeRecorder{}, ext, &fakeStorage{}, 0)

		_, err := svc.Extract(ctx, "image/png", encodePNG(t, 3000, 1500))

		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", ext.gotType)
		cfg, format, err := image.DecodeConfig(bytes.NewReader(ext.gotImage))
		assert.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 2048, cfg.Width)
		assert.Equal(t, 1024, cfg.Height)
	})

	t.Run("negative undecodable image stores nothing", func(t *testing.T) {
		repo := newFakeHolidayRepository()
		storage := &fakeStorage{}
		svc := holiday.NewUploadService(repo, &fakeRecorder{}, &fakeExtractor{}, storage, 0)

		_, err := svc.Extract(ctx, "image/png", []byte("\x89PNG\r\n\x1a\n"))

		assert.ErrorIs(t, err, holidayerrors.ErrUnreadableImage)
		assert.Equal(t, 0, storage.saved)
		assert.Empty(t, repo.uploads)
	})

	t.Run("negative too large", func(t *testing.T) {
		svc := holiday.NewUploadService(newFakeHolidayRepository(), &fakeRecorder{}, &fakeExtractor{}, &fakeStorage{}, 4)

		_, err := svc.Extract(ctx, "image/png", pngData)
		assert.ErrorIs(t, err, holidayerrors.ErrImageTooLarge)
	})

	t.Run("negative extractor not configured", func(t *testing.T) {
		svc := holiday.NewUploadService(newFakeHolidayRepository(), &fakeRecorder{}, nil, &fakeStorage{}, 0)

		_, err := svc.Extract(ctx, "image/png", pngData)
		assert.ErrorIs(t, err, holidayerrors.ErrExtractorUnavailable)
	})
}

func TestParseCandidates(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		out, err := holiday.ParseCandidates("```json\n[{\"date\":\"2026-01-26\",\"name\":\"Republic Day\",\"is_recurring\":true,\"region\":\"\"}]\n```")

		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.True(t, out[0].IsRecurring)
	})

	t.Run("plain json", func(t *testing.T) {
		out, err := holiday.ParseCandidates(`[]`)
		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("negative prose", func(t *testing.T) {
		_, err := holiday.ParseCandidates("I could not read the image.")
		assert.Error(t, err)
	})

	t.Run("negative empty", func(t *testing.T) {
		_, err := holiday.ParseCandidates("  ")
		assert.Error(t, err)
	})
}
