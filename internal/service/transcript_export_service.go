package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/export"
	"github.com/campusware/university-api/pkg/storage"
)

// Transcript export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type transcriptProvider interface {
	Transcript(ctx context.Context, studentID string, gradeLevel string) (*models.Transcript, error)
}

type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, summary []string) ([]byte, error)
}

// ExportConfig tunes transcript export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata. The URL embeds a
// signed token; the stored path is never exposed.
type ExportResult struct {
	RelativePath string    `json:"-"`
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	Format       string    `json:"format"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// TranscriptExportService renders transcripts to downloadable files.
type TranscriptExportService struct {
	transcripts transcriptProvider
	storage     exportFileStorage
	csv         csvRenderer
	pdf         pdfRenderer
	signer      *storage.SignedURLSigner
	logger      *zap.Logger
	cfg         ExportConfig
}

// NewTranscriptExportService constructs a TranscriptExportService.
func NewTranscriptExportService(transcripts transcriptProvider, fileStorage exportFileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *TranscriptExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &TranscriptExportService{
		transcripts: transcripts,
		storage:     fileStorage,
		csv:         csv,
		pdf:         pdf,
		signer:      signer,
		logger:      logger,
		cfg:         cfg,
	}
}

// Generate computes the transcript, renders it in the requested format and
// stores the file, returning a signed download token.
func (s *TranscriptExportService) Generate(ctx context.Context, studentID, gradeLevel, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatPDF
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	transcript, err := s.transcripts.Transcript(ctx, studentID, gradeLevel)
	if err != nil {
		return nil, err
	}

	dataset, summary := transcriptDataset(transcript)
	title := fmt.Sprintf("Transcript - %s", transcript.GradeLevel)

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title, summary)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("transcripts/%s-%s.%s", studentID, exportID, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store transcript export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("transcript export generated",
		zap.String("student_id", studentID),
		zap.String("format", format),
		zap.String("export_id", exportID))

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/transcripts/export/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// Open validates the download token and returns a handle to the stored file.
func (s *TranscriptExportService) Open(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download link")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, relPath, nil
}

// Cleanup removes rendered exports older than the configured TTL.
func (s *TranscriptExportService) Cleanup() {
	deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(deleted)))
	}
}

func transcriptDataset(t *models.Transcript) (export.Dataset, []string) {
	headers := []string{"Course", "Grade", "Credits", "Credits Earned", "Standing"}
	rows := make([]map[string]string, 0, len(t.Entries))
	for _, entry := range t.Entries {
		grade := "-"
		standing := "-"
		if entry.Grade != nil {
			grade = strconv.FormatFloat(*entry.Grade, 'f', 2, 64)
			standing = entry.Standing
		}
		rows = append(rows, map[string]string{
			"Course":         entry.CourseName,
			"Grade":          grade,
			"Credits":        strconv.Itoa(entry.Credits),
			"Credits Earned": strconv.Itoa(entry.CreditsEarned),
			"Standing":       standing,
		})
	}
	summary := []string{
		fmt.Sprintf("Total credits earned: %d", t.TotalCreditsEarned),
		fmt.Sprintf("GPA: %.2f", t.GPA),
	}
	return export.Dataset{Headers: headers, Rows: rows}, summary
}
