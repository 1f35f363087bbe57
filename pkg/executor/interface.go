package executor

import "context"

// Executor runs external commands. The context governs the command's
// lifetime: cancellation or deadline kills the process.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
