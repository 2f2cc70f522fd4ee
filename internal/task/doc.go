// Package task defines the Task entity: a named unit of work with typed
// parameters, bound dependencies, task-scoped environment variables, and a
// body callable.
//
// Invoking a task applies its environment entries to the process environment,
// runs every declared dependency in order with its bound arguments, validates
// and coerces the caller-supplied arguments against the task's parameter
// descriptors, and only then calls the body. Dependencies are re-executed on
// every reference; there is no memoization.
package task
