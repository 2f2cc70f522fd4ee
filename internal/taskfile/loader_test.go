package taskfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/oribarilan/plz/internal/registry"
	"github.com/oribarilan/plz/internal/task"
	"github.com/oribarilan/plz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// loadFixture writes content as a plzfile in a temp dir and loads it into a
// fresh registry backed by the given spy runner.
func loadFixture(t *testing.T, content string, spy *testutil.SpyRunner) (*registry.Registry, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plzfile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reg := registry.New()
	err := NewLoader(spy).Load(context.Background(), path, reg)
	return reg, err
}

func TestLoad_RegistersTasksInFileOrder(t *testing.T) {
	reg, err := loadFixture(t, `
		task "lint" {
		  run = ["golangci-lint run"]
		}

		task "test" {
		  description = "Run the tests"
		  run         = ["go test ./..."]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	tasks := reg.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "lint", tasks[0].Name)
	assert.Equal(t, "test", tasks[1].Name)
	assert.Equal(t, "Run the tests", tasks[1].Desc)
}

func TestLoad_ParamsAndDefaults(t *testing.T) {
	reg, err := loadFixture(t, `
		task "nap" {
		  param "minutes" {
		    type    = "number"
		    default = 10
		  }
		  param "place" {
		    type = "string"
		  }
		  run = ["sleep ${minutes}"]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	nap, err := reg.Lookup("nap")
	require.NoError(t, err)
	require.Len(t, nap.Params, 2)

	minutes := nap.Params[0]
	assert.False(t, minutes.Required())
	assert.Equal(t, cty.Number, minutes.Type)
	require.NotNil(t, minutes.Default)
	assert.True(t, minutes.Default.RawEquals(cty.NumberIntVal(10)))

	place := nap.Params[1]
	assert.True(t, place.Required())
	assert.Equal(t, cty.String, place.Type)
}

func TestLoad_OptionalBeforeRequiredParam(t *testing.T) {
	// The loader accepts this parameter shape; invoking with only the first
	// argument must surface an arity error for the unfilled required param.
	reg, err := loadFixture(t, `
		task "nap" {
		  param "minutes" {
		    type    = "number"
		    default = 10
		  }
		  param "place" {
		    type = "string"
		  }
		  run = ["sleep ${minutes}"]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	nap, err := reg.Lookup("nap")
	require.NoError(t, err)

	var out bytes.Buffer
	invokeErr := nap.Invoke(context.Background(), &out, []cty.Value{cty.StringVal("5")})

	var arityErr *task.ArityError
	require.ErrorAs(t, invokeErr, &arityErr)
	assert.Equal(t, []string{"place"}, arityErr.Missing)
}

func TestLoad_UntypedParamDefaultsToString(t *testing.T) {
	reg, err := loadFixture(t, `
		task "echo" {
		  param "msg" {}
		  run = ["echo ${msg}"]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	echo, err := reg.Lookup("echo")
	require.NoError(t, err)
	assert.Equal(t, cty.String, echo.Params[0].Type)
}

func TestLoad_UnknownParamType(t *testing.T) {
	_, err := loadFixture(t, `
		task "bad" {
		  param "x" { type = "decimal" }
		}
	`, &testutil.SpyRunner{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "decimal"`)
}

func TestLoad_RequiresWithBoundArgs(t *testing.T) {
	reg, err := loadFixture(t, `
		task "a" {
		  param "num" {
		    type    = "number"
		    default = 1
		  }
		  run = ["echo a ${num}"]
		}

		task "b" {
		  requires {
		    task = "a"
		    args = [2]
		  }
		  run = ["echo b"]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	b, err := reg.Lookup("b")
	require.NoError(t, err)
	require.Len(t, b.Requires, 1)
	assert.Equal(t, "a", b.Requires[0].Task.Name)
	require.Len(t, b.Requires[0].Args, 1)
	assert.True(t, b.Requires[0].Args[0].RawEquals(cty.NumberIntVal(2)))
}

func TestLoad_ForwardReferenceRejected(t *testing.T) {
	_, err := loadFixture(t, `
		task "b" {
		  requires { task = "a" }
		  run = ["echo b"]
		}

		task "a" {
		  run = ["echo a"]
		}
	`, &testutil.SpyRunner{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared before use")
}

func TestLoad_DuplicateNameOverwrites(t *testing.T) {
	reg, err := loadFixture(t, `
		task "lint" {
		  description = "first"
		}

		task "lint" {
		  description = "second"
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	lint, err := reg.Lookup("lint")
	require.NoError(t, err)
	assert.Equal(t, "second", lint.Desc)
	assert.Equal(t, 1, reg.Len())
}

func TestLoad_EnvAndDefaultFlag(t *testing.T) {
	reg, err := loadFixture(t, `
		task "serve" {
		  default = true
		  env = {
		    PORT = "8080"
		  }
		  run = ["mkdocs serve"]
		}
	`, &testutil.SpyRunner{})
	require.NoError(t, err)

	serve, err := reg.Lookup("serve")
	require.NoError(t, err)
	assert.True(t, serve.Default)
	assert.Equal(t, map[string]string{"PORT": "8080"}, serve.Env)
}

func TestBody_InterpolatesParamsIntoCommands(t *testing.T) {
	spy := &testutil.SpyRunner{}
	reg, err := loadFixture(t, `
		task "echo" {
		  param "msg" { type = "string" }
		  param "times" {
		    type    = "number"
		    default = 1
		  }
		  run = ["echo ${msg} x${times}"]
		}
	`, spy)
	require.NoError(t, err)

	echo, err := reg.Lookup("echo")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, echo.Invoke(context.Background(), &out, []cty.Value{cty.StringVal("hello")}))

	want := []string{"echo hello x1"}
	if diff := cmp.Diff(want, spy.Commands()); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestBody_DependencyChainCommandOrder(t *testing.T) {
	// The a/b/c shape: c requires a(3) and b(4); b requires a(2).
	spy := &testutil.SpyRunner{}
	reg, err := loadFixture(t, `
		task "a" {
		  param "num" {
		    type    = "number"
		    default = 1
		  }
		  run = ["echo a ${num}"]
		}

		task "b" {
		  param "num" {
		    type    = "number"
		    default = 2
		  }
		  requires {
		    task = "a"
		    args = [2]
		  }
		  run = ["echo b ${num}"]
		}

		task "c" {
		  param "num" { type = "number" }
		  requires {
		    task = "a"
		    args = [3]
		  }
		  requires {
		    task = "b"
		    args = [4]
		  }
		  run = ["echo c ${num}"]
		}
	`, spy)
	require.NoError(t, err)

	c, err := reg.Lookup("c")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, c.Invoke(context.Background(), &out, []cty.Value{cty.StringVal("5")}))

	want := []string{"echo a 3", "echo a 2", "echo b 4", "echo c 5"}
	if diff := cmp.Diff(want, spy.Commands()); diff != "" {
		t.Errorf("command order mismatch (-want +got):\n%s", diff)
	}
}

func TestBody_FailFastStopsOnNonZeroExit(t *testing.T) {
	spy := &testutil.SpyRunner{ExitCode: 1}
	reg, err := loadFixture(t, `
		task "flaky" {
		  run = ["false", "echo never"]
		}
	`, spy)
	require.NoError(t, err)

	flaky, err := reg.Lookup("flaky")
	require.NoError(t, err)

	var out bytes.Buffer
	invokeErr := flaky.Invoke(context.Background(), &out, nil)
	require.Error(t, invokeErr)
	assert.Contains(t, invokeErr.Error(), "exited with code 1")
	assert.Equal(t, []string{"false"}, spy.Commands())
}

func TestBody_FailFastDisabledRunsAllCommands(t *testing.T) {
	spy := &testutil.SpyRunner{ExitCode: 1}
	reg, err := loadFixture(t, `
		task "tolerant" {
		  fail_fast = false
		  run       = ["false", "echo still runs"]
		}
	`, spy)
	require.NoError(t, err)

	tolerant, err := reg.Lookup("tolerant")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, tolerant.Invoke(context.Background(), &out, nil))
	assert.Equal(t, []string{"false", "echo still runs"}, spy.Commands())
}

func TestBody_TaskWithoutRunIsNoOp(t *testing.T) {
	spy := &testutil.SpyRunner{}
	reg, err := loadFixture(t, `
		task "group" {
		}
	`, spy)
	require.NoError(t, err)

	group, err := reg.Lookup("group")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, group.Invoke(context.Background(), &out, nil))
	assert.Empty(t, spy.Commands())
}

func TestLoad_InvalidHCL(t *testing.T) {
	_, err := loadFixture(t, `task "broken" {`, &testutil.SpyRunner{})
	require.Error(t, err)
}
