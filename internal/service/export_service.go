package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidRange    = errors.New("export range start must not be after its end")
	ErrRangeTooLarge   = errors.New("export range exceeds the maximum of 366 days")
	ErrInvalidFormat   = errors.New("export format must be csv or json")
	ErrNothingToExport = errors.New("no workout records in the requested range")
)

// maxExportRangeDays bounds an export to a touch over a year so a
// leap-year export still fits in one request.
const maxExportRangeDays = 366

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportResult describes a finished export upload.
type ExportResult struct {
	ObjectKey   string
	DownloadURL string
	Records     int
}

// --- Service Interface ---
type ExportService interface {
	Export(ctx context.Context, userID primitive.ObjectID, from, to time.Time, format ExportFormat) (*ExportResult, error)
}

// --- Service Implementation ---

type exportService struct {
	workoutService WorkoutService
	fileStorage    storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(workoutService WorkoutService, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		workoutService: workoutService,
		fileStorage:    fileStorage,
	}
}

// Export serializes the user's workout history between from and to,
// uploads it to object storage, and returns a presigned download URL.
func (s *exportService) Export(ctx context.Context, userID primitive.ObjectID, from, to time.Time, format ExportFormat) (*ExportResult, error) {
	from, to = DayUTC(from), DayUTC(to)
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if int(to.Sub(from).Hours()/24)+1 > maxExportRangeDays {
		return nil, ErrRangeTooLarge
	}

	var contentType string
	switch format {
	case FormatCSV:
		contentType = "text/csv"
	case FormatJSON:
		contentType = "application/json"
	default:
		return nil, ErrInvalidFormat
	}

	records, err := s.workoutService.GetRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var body []byte
	switch format {
	case FormatCSV:
		body, err = buildCSV(records)
	case FormatJSON:
		body, err = buildJSON(records)
	}
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exports/%s/workouts-%s-%s-%s.%s",
		userID.Hex(),
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
		uuid.New().String(),
		format,
	)

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export download: %w", err)
	}

	return &ExportResult{
		ObjectKey:   objectKey,
		DownloadURL: url,
		Records:     len(records),
	}, nil
}

// buildCSV flattens records to one row per set, in exercise order.
func buildCSV(records []domain.WorkoutRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "rest_day", "exercise", "set", "weight", "reps", "logged", "type", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, record := range records {
		date := record.Date.Format("2006-01-02")
		if record.IsRestDay || len(record.ExerciseOrder) == 0 {
			row := []string{date, strconv.FormatBool(record.IsRestDay), "", "", "", "", "", "", record.Notes}
			if err := w.Write(row); err != nil {
				return nil, err
			}
			continue
		}
		for _, exercise := range record.ExerciseOrder {
			for i, set := range record.Exercises[exercise] {
				row := []string{
					date,
					"false",
					exercise,
					strconv.Itoa(i + 1),
					strconv.FormatFloat(set.Weight, 'f', -1, 64),
					strconv.Itoa(set.Reps),
					strconv.FormatBool(set.Logged),
					string(set.Type),
					record.Notes,
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportedDay is the JSON export shape for one calendar day.
type exportedDay struct {
	Date      string             `json:"date"`
	RestDay   bool               `json:"restDay"`
	Exercises []exportedExercise `json:"exercises"`
	Notes     string             `json:"notes,omitempty"`
}

type exportedExercise struct {
	Name string            `json:"name"`
	Sets []domain.SetEntry `json:"sets"`
}

func buildJSON(records []domain.WorkoutRecord) ([]byte, error) {
	days := make([]exportedDay, 0, len(records))
	for _, record := range records {
		day := exportedDay{
			Date:      record.Date.Format("2006-01-02"),
			RestDay:   record.IsRestDay,
			Exercises: make([]exportedExercise, 0, len(record.ExerciseOrder)),
			Notes:     record.Notes,
		}
		for _, exercise := range record.ExerciseOrder {
			day.Exercises = append(day.Exercises, exportedExercise{
				Name: exercise,
				Sets: record.Exercises[exercise],
			})
		}
		days = append(days, day)
	}
	return json.MarshalIndent(days, "", "  ")
}
