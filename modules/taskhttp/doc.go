// Package taskhttp exposes the task model over a small JSON API.
//
// The package is a thin chi router in front of the model constructors: every
// route decodes a document, runs it through the accumulating validation the
// model already performs, and renders either the created resource or the
// full set of validation failures. Nothing here re-validates; the HTTP layer
// only translates.
//
// # Routes
//
// Routes are mounted under Config.BasePath (default /api/v1):
//
//	POST {base}/tasks         create a single task
//	POST {base}/tasks/import  bulk import tasks (JSON or YAML body)
//	POST {base}/lists         create a task list with nested tasks
//	POST {base}/users         create a user with nested task lists
//
// A liveness probe is always served at /healthz.
//
// # Usage
//
//	cfg, err := taskhttp.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = taskhttp.Serve(context.Background(), cfg, taskhttp.RouterOptions{
//		Logger: logger.New(logger.WithLevel(slog.LevelInfo)),
//	})
//
// # Error Handling
//
// Failures render in the JSONResponse envelope. A validation failure set
// maps to 422 with messages grouped by field:
//
//	{"error": {
//	    "code": "validation_error",
//	    "message": "validation failed with 2 errors: ...",
//	    "details": {
//	        "title":    ["title cannot be empty or whitespace only"],
//	        "due_date": ["Due date cannot be more than 1 year in the past"]
//	    }
//	}}
//
// Field-less failures appear under the "general" key. Malformed request
// bodies map to 400 bad_request, unknown import content types to 415, and
// anything unrecognized to 500 internal_error.
package taskhttp
