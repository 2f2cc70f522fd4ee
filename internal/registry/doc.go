// Package registry holds the ordered collection of registered tasks for a
// single plz run.
//
// Registration happens once, during startup: builtin tasks first, then the
// tasks declared in the user's plzfile. Insertion order is preserved for
// listing. A name collision silently overwrites the earlier definition while
// keeping its listing position; dependency references captured before the
// overwrite keep pointing at the original task. After loading, Validate
// checks the dependency graph for cycles so a self-referential declaration
// fails with a reported error instead of unbounded recursion.
package registry
