package taskimport

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/taskkit"
	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

// Format identifies a supported import encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned when a format or filename extension is not
// one of the supported encodings.
var ErrUnknownFormat = errors.New("taskimport: unknown format")

// DetectFormat maps a filename extension to an import format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// TagRecord is the wire shape of a tag in an import file.
type TagRecord struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// TaskRecord is the wire shape of one task in an import file. CreatedAt lets
// historical imports carry the original creation time; without it the task is
// created now.
type TaskRecord struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Status      string      `json:"status" yaml:"status"`
	Priority    string      `json:"priority" yaml:"priority"`
	DueDate     *time.Time  `json:"due_date" yaml:"due_date"`
	CreatedAt   *time.Time  `json:"created_at" yaml:"created_at"`
	Tags        []TagRecord `json:"tags" yaml:"tags"`
}

// Importer validates import files record by record. Every record gets its own
// validation scope, so one bad record never hides the problems in another and
// never aborts the file.
type Importer struct {
	log          *slog.Logger
	allowPastDue bool
}

// Option is a functional option for configuring an Importer.
type Option func(*Importer)

// WithLogger sets the logger for per-record and summary log output.
func WithLogger(log *slog.Logger) Option {
	return func(i *Importer) {
		if log != nil {
			i.log = log
		}
	}
}

// WithAllowPastDue admits records whose due date has already passed. By
// default such records are rejected, since an import of planned work that
// contains overdue items usually signals stale data.
func WithAllowPastDue() Option {
	return func(i *Importer) {
		i.allowPastDue = true
	}
}

// New creates an Importer.
func New(opts ...Option) *Importer {
	i := &Importer{log: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import decodes data in the given format and validates every record. A
// decode failure fails the whole file with a serialization error and no
// report. Otherwise the returned report accounts for every record: validated
// tasks under Imported, rejected records under Failed with their complete
// failure sets.
func (im *Importer) Import(data []byte, format Format) (*Report, error) {
	var records []TaskRecord
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, taskerr.NewSerialization("Failed to decode import JSON", "import_json", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, taskerr.NewSerialization("Failed to decode import YAML", "import_yaml", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	report := &Report{Total: len(records)}
	for idx, rec := range records {
		task, failures := im.buildTask(rec)
		if failures != nil {
			im.log.Debug("import record rejected",
				slog.Int("record", idx),
				slog.String("title", rec.Title),
				slog.Int("error_count", len(failures)))
			report.Failed = append(report.Failed, RecordError{Index: idx, Errors: failures})
			continue
		}
		im.log.Debug("import record accepted",
			slog.Int("record", idx),
			slog.String("title", task.Title))
		report.Imported = append(report.Imported, task)
	}

	im.log.Info("import finished",
		slog.Int("total", report.Total),
		slog.Int("imported", len(report.Imported)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

// ImportFile decodes data using the format implied by the filename extension.
func (im *Importer) ImportFile(filename string, data []byte) (*Report, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	return im.Import(data, format)
}

// buildTask runs one record through a single validation scope: enum parsing,
// tag building, the past-due admission rule, and the task constructor all
// accumulate into one collection.
func (im *Importer) buildTask(rec TaskRecord) (*taskkit.Task, taskerr.Collection) {
	var task *taskkit.Task
	err := validator.Batch(func(vc *validator.Context) error {
		opts := make([]taskkit.TaskOption, 0, 4)
		if rec.Description != "" {
			opts = append(opts, taskkit.WithDescription(rec.Description))
		}
		if rec.Status != "" {
			if s, ok := validator.Value(vc, func() (taskkit.Status, error) { return taskkit.ParseStatus(rec.Status) }); ok {
				opts = append(opts, taskkit.WithStatus(s))
			}
		}
		if rec.Priority != "" {
			if p, ok := validator.Value(vc, func() (taskkit.Priority, error) { return taskkit.ParsePriority(rec.Priority) }); ok {
				opts = append(opts, taskkit.WithPriority(p))
			}
		}

		tags := make([]taskkit.Tag, 0, len(rec.Tags))
		for _, tr := range rec.Tags {
			if tag, ok := validator.Value(vc, func() (taskkit.Tag, error) { return taskkit.NewTag(tr.Name, tr.Color) }); ok {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			opts = append(opts, taskkit.WithTags(tags...))
		}

		if rec.DueDate != nil {
			if !im.allowPastDue && rec.DueDate.Before(time.Now()) {
				vc.AddError(taskerr.NewDate("due_date", "Due date has already passed").
					WithCode("DUE_DATE_IN_PAST").
					WithValue(*rec.DueDate).
					WithDetail("due_date", rec.DueDate.Format(time.RFC3339)).
					WithDetail("suggestion", "Use a future due date, or import with past due dates allowed"))
			}
			opts = append(opts, taskkit.WithDueDate(*rec.DueDate))
		}
		if rec.CreatedAt != nil {
			opts = append(opts, taskkit.WithCreatedAt(*rec.CreatedAt))
		}

		task, _ = validator.Value(vc, func() (*taskkit.Task, error) { return taskkit.NewTask(rec.Title, opts...) })
		return nil
	})
	if err != nil {
		failures, _ := taskerr.AsCollection(err)
		return nil, failures
	}
	return task, nil
}
