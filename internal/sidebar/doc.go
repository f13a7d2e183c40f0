// Package sidebar turns declarative sidebar entries into validated navigation trees.
//
// Building happens in two passes. Build performs the structural pass for one
// named sidebar and fails on the first malformed entry; no partial tree is ever
// returned. Resolve then checks every referenced content id against a catalog
// and reports all missing ids together.
package sidebar
