package registry

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/oribarilan/plz/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func TestLookup(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint"})

	got, err := r.Lookup("lint")
	require.NoError(t, err)
	assert.Equal(t, "lint", got.Name)
}

func TestLookup_NotFound(t *testing.T) {
	r := New()

	_, err := r.Lookup("ghost")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Name)
}

func TestTasks_PreservesInsertionOrder(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint"})
	r.Register(&task.Task{Name: "test"})
	r.Register(&task.Task{Name: "build"})

	want := []string{"lint", "test", "build"}
	if diff := cmp.Diff(want, names(r.Tasks())); diff != "" {
		t.Errorf("task order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_OverwriteKeepsPosition(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint", Desc: "first"})
	r.Register(&task.Task{Name: "test"})
	r.Register(&task.Task{Name: "lint", Desc: "second"})

	require.Equal(t, 2, r.Len())
	got, err := r.Lookup("lint")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Desc, "last registration wins")
	assert.Equal(t, []string{"lint", "test"}, names(r.Tasks()))
}

func TestDefault_None(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint"})

	got, err := r.Default()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDefault_Single(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint"})
	r.Register(&task.Task{Name: "build", Default: true})

	got, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, "build", got.Name)
}

func TestDefault_Multiple(t *testing.T) {
	r := New()
	r.Register(&task.Task{Name: "lint", Default: true})
	r.Register(&task.Task{Name: "build", Default: true})

	_, err := r.Default()
	var multi *MultipleDefaultsError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, []string{"lint", "build"}, multi.Names)
}

func TestOnlyBuiltins(t *testing.T) {
	r := New()
	r.AddBuiltin("list", "List all available tasks", func(ctx context.Context, inv *task.Invocation) (any, error) {
		return nil, nil
	})
	assert.True(t, r.OnlyBuiltins())

	r.Register(&task.Task{Name: "lint"})
	assert.False(t, r.OnlyBuiltins())
}

func TestAddBuiltin_NeverDefault(t *testing.T) {
	r := New()
	r.AddBuiltin("env", "Print environment variables", nil)

	got, err := r.Lookup("env")
	require.NoError(t, err)
	assert.True(t, got.Builtin)
	assert.False(t, got.Default)
}
