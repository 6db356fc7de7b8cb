package interaction

import (
	"context"

	"github.com/samber/lo"
)

// Command is one slash command. Respond runs with the invoking username on
// ctx (see util.UsernameFromCtx).
type Command interface {
	Name() string
	Description() string
	Options() []CommandOption
	Respond(ctx context.Context, options []DataOption) (*MessageData, error)
	Autocomplete(ctx context.Context, options []DataOption) (*AutocompleteData, error)
}

// Registry is the fixed set of commands, built once at startup and only
// read afterwards.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry indexes cmds by name. A later command with a duplicate name
// replaces the earlier one.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		if _, exists := r.commands[cmd.Name()]; !exists {
			r.order = append(r.order, cmd.Name())
		}
		r.commands[cmd.Name()] = cmd
	}
	return r
}

func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Definitions is the registration schema of every command, in registration
// order.
func (r *Registry) Definitions() []CommandDefinition {
	return lo.Map(r.order, func(name string, _ int) CommandDefinition {
		cmd := r.commands[name]
		return CommandDefinition{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Type:        CommandTypeChatInput,
			Options:     cmd.Options(),
		}
	})
}
