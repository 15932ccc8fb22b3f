// Package taskimport validates bulk task files in JSON or YAML form.
//
// Each record in the file runs through its own validation scope, so the
// report lists every problem in every record instead of stopping at the
// first. A record that fails never aborts the file; only a document that
// cannot be decoded at all does.
//
// # Usage
//
//	importer := taskimport.New(
//	    taskimport.WithLogger(log),
//	    taskimport.WithAllowPastDue(),
//	)
//
//	report, err := importer.ImportFile("backlog.yaml", data)
//	if err != nil {
//	    return err // the file itself could not be decoded
//	}
//	if !report.OK() {
//	    fmt.Println(report.Format(true))
//	}
//
// The report accounts for every record: validated tasks under Imported,
// rejected records under Failed together with their complete failure sets.
package taskimport
