package app

// Command is the resolved form of one CLI invocation: the optional task
// name, its positional arguments, the utility flags, and the inline
// environment overrides in the order they appeared.
type Command struct {
	Task string
	Args []string

	Help       bool
	List       bool
	ListEnv    bool
	ListEnvAll bool

	Env [][2]string
}

// HasTask reports whether the command names a task.
func (c *Command) HasTask() bool {
	return c.Task != ""
}
