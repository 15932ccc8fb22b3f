// Package taskkit implements a task management data model with batch
// validation: tasks, tags, task lists and users whose constructors check
// every field rule in one pass and report all violations together instead
// of stopping at the first one.
//
// # Architecture
//
// The root package holds the entities and their operations:
//   - Task     – unit of work with a status lifecycle, priority, tags and
//     due/completion timestamps
//   - TaskList – named, owned collection of tasks with unique assigned IDs
//   - User     – account owning task lists with unique names
//   - Tag      – immutable label with a normalized hex color
//
// Validation mechanics live in pkg/validator (the batching scope and the
// shared field checkers) and pkg/taskerr (the failure taxonomy). Constructors
// run their checks inside validator.Batch, so a failed construction returns
// a taskerr.Collection carrying one record per violated rule, each with a
// stable machine code such as TASK_TITLE_EMPTY or DUE_DATE_FAR_PAST.
//
// # Usage
//
//	task, err := taskkit.NewTask("Ship the release",
//	    taskkit.WithPriority(taskkit.PriorityHigh),
//	    taskkit.WithDueDate(time.Now().Add(72*time.Hour)),
//	)
//	if err != nil {
//	    var failures taskerr.Collection
//	    if errors.As(err, &failures) {
//	        fmt.Println(failures.Format(true))
//	    }
//	    return err
//	}
//	if err := task.MarkComplete(); err != nil {
//	    // single taskerr.Error: ALREADY_COMPLETED or ARCHIVED_TASK_COMPLETION
//	}
//
// # Status Lifecycle
//
// Statuses move along a fixed transition table: todo and in_progress flip
// between each other and complete to done; only done tasks archive; archived
// tasks restore back to todo. Completion timestamps follow the status: done
// sets one, moving back to an active status clears it, and archived tasks
// must always carry one.
//
// # Serialization
//
// Marshaling uses github.com/goccy/go-json with RFC 3339 timestamps and
// omitted unassigned IDs. ParseTaskJSON, ParseTaskListJSON and ParseUserJSON
// decode and validate in one step: malformed bytes fail with a serialization
// record, structurally sound documents run through the constructors and
// return the same accumulated collections, including failures from nested
// tasks and lists. Deactivated users refuse to serialize until reactivated.
package taskkit
