package taskhttp

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskkit"
	"github.com/dmitrymomot/taskkit/modules/taskimport"
	"github.com/dmitrymomot/taskkit/pkg/logger"
	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

func createTask(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		task, err := taskkit.ParseTaskJSON(body)
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		attrs := []any{slog.String("title", task.Title)}
		if task.ID != uuid.Nil {
			attrs = append(attrs, logger.TaskID(task.ID))
		}
		log.InfoContext(r.Context(), "task created", attrs...)
		respondCreated(w, r, log, task)
	}
}

func importTasks(log *slog.Logger, imp *taskimport.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, ok := importFormat(r.Header.Get("Content-Type"))
		if !ok {
			writeJSON(w, http.StatusUnsupportedMediaType, JSONResponse{Error: &ErrorDetail{
				Code:    "unsupported_media_type",
				Message: "expected application/json or application/yaml",
			}})
			return
		}
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		report, err := imp.Import(body, format)
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, JSONResponse{Data: report})
	}
}

func createList(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		list, err := taskkit.ParseTaskListJSON(body)
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		attrs := []any{slog.String("name", list.Name), slog.Int("task_count", len(list.Tasks))}
		if list.ID != uuid.Nil {
			attrs = append(attrs, logger.ListID(list.ID))
		}
		log.InfoContext(r.Context(), "task list created", attrs...)
		respondCreated(w, r, log, list)
	}
}

func createUser(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		user, err := taskkit.ParseUserJSON(body)
		if err != nil {
			respondError(w, r, log, err)
			return
		}
		attrs := []any{slog.String("username", user.Username)}
		if user.ID != uuid.Nil {
			attrs = append(attrs, logger.UserID(user.ID))
		}
		log.InfoContext(r.Context(), "user created", attrs...)
		respondCreated(w, r, log, user)
	}
}

func readBody(w http.ResponseWriter, r *http.Request, log *slog.Logger) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, r, log, taskerr.NewSerialization("Failed to read request body", "read_body", err))
		return nil, false
	}
	return body, true
}

// importFormat resolves the import document format from the Content-Type
// header. An absent header defaults to JSON.
func importFormat(contentType string) (taskimport.Format, bool) {
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = contentType[:idx]
	}
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "", "application/json":
		return taskimport.FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml":
		return taskimport.FormatYAML, true
	default:
		return "", false
	}
}
