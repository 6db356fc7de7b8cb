package interaction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/infigaming-com/xe-bot/util"
	"go.uber.org/zap"
)

type Dispatcher struct {
	lg       *zap.Logger
	registry *Registry
}

func NewDispatcher(lg *zap.Logger, registry *Registry) *Dispatcher {
	return &Dispatcher{
		lg:       lg,
		registry: registry,
	}
}

// Decode parses a webhook body.
func Decode(body []byte) (*Interaction, error) {
	var i Interaction
	if err := json.Unmarshal(body, &i); err != nil {
		return nil, ErrInvalidPayload.Wrap(err)
	}
	if i.Type == 0 {
		return nil, ErrInvalidPayload.Wrap(fmt.Errorf("missing interaction type"))
	}
	return &i, nil
}

// Handle answers pings directly and routes commands and autocomplete
// requests to the registered command.
func (d *Dispatcher) Handle(ctx context.Context, i *Interaction) (*Response, error) {
	switch i.Type {
	case TypePing:
		return &Response{Type: ResponsePong}, nil

	case TypeApplicationCommand:
		cmd, err := d.lookup(i)
		if err != nil {
			return nil, err
		}
		username := i.Username()
		if username == "" {
			return nil, ErrInvalidPayload.Wrap(fmt.Errorf("no invoking user"))
		}

		d.lg.Info("handling command",
			zap.String("command", cmd.Name()),
			zap.String("user", username),
			zap.String("interactionId", i.ID),
		)
		data, err := cmd.Respond(util.UsernameToCtx(ctx, username), i.Data.Options)
		if err != nil {
			return nil, err
		}
		return &Response{Type: ResponseChannelMessageWithSource, Data: data}, nil

	case TypeApplicationCommandAutocomplete:
		cmd, err := d.lookup(i)
		if err != nil {
			return nil, err
		}
		data, err := cmd.Autocomplete(ctx, i.Data.Options)
		if err != nil {
			return nil, err
		}
		return &Response{Type: ResponseAutocompleteResult, Data: data}, nil

	default:
		return nil, ErrUnsupportedInteraction.Wrap(fmt.Errorf("type %d", i.Type)).
			WithDetails(map[string]any{"type": i.Type})
	}
}

func (d *Dispatcher) lookup(i *Interaction) (Command, error) {
	if i.Data == nil {
		return nil, ErrInvalidPayload.Wrap(fmt.Errorf("data not found"))
	}
	cmd, ok := d.registry.Lookup(i.Data.Name)
	if !ok {
		return nil, ErrUnknownCommand.Wrap(fmt.Errorf("%s", i.Data.Name)).
			WithDetails(map[string]any{"command": i.Data.Name})
	}
	return cmd, nil
}
