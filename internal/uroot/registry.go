// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrCommandNotFound is returned by Run and Exec for a name nothing was registered under.
var ErrCommandNotFound = errors.New("command not found")

// DefaultRegistry holds the file commands a packaging run needs: cp, mkdir,
// rm and tar. Each registers itself from its file's init.
var DefaultRegistry = NewRegistry()

// Registry maps command names to the commands that packaging steps invoke.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty Registry. Tests use it to swap a single
// packaging command for one that fails.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds cmd under cmd.Name(). It panics on an empty or duplicate name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		panic("uroot: cannot register command with empty name")
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("uroot: command %q already registered", name))
	}
	r.commands[name] = cmd
}

// Lookup retrieves a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.commands))
}

// Run executes the command registered as name. args[0] is the command name.
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return wrapError(name, ErrCommandNotFound)
	}
	return cmd.Run(ctx, args)
}

// Exec runs a packaging command with its operands, the way a step would type it:
//
//	r.Exec(ctx, "tar", "-c", "-f", archive, "-C", workDir, dirName)
func (r *Registry) Exec(ctx context.Context, name string, args ...string) error {
	return r.Run(ctx, name, append([]string{name}, args...))
}

// RegisterDefault adds cmd to DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}
