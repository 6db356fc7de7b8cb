package interaction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	name string
}

func (c *echoCommand) Name() string        { return c.name }
func (c *echoCommand) Description() string { return "echo " + c.name }
func (c *echoCommand) Options() []CommandOption {
	return []CommandOption{{Name: "text", Description: "text to echo", Type: OptionString}}
}

func (c *echoCommand) Respond(ctx context.Context, options []DataOption) (*MessageData, error) {
	text, _ := optionMap(options)["text"].(string)
	return &MessageData{Content: c.name + ":" + text}, nil
}

func (c *echoCommand) Autocomplete(ctx context.Context, options []DataOption) (*AutocompleteData, error) {
	return &AutocompleteData{Choices: []Choice{{Name: "hello", Value: "hello"}}}, nil
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(&echoCommand{name: "hey"}, &echoCommand{name: "jisho"})

	cmd, ok := registry.Lookup("jisho")
	require.True(t, ok)
	assert.Equal(t, "jisho", cmd.Name())

	_, ok = registry.Lookup("xe")
	assert.False(t, ok)
}

func TestRegistry_Definitions(t *testing.T) {
	registry := NewRegistry(&echoCommand{name: "hey"}, &echoCommand{name: "jisho"}, &echoCommand{name: "hey"})

	defs := registry.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "hey", defs[0].Name)
	assert.Equal(t, "jisho", defs[1].Name)
	assert.Equal(t, CommandTypeChatInput, defs[0].Type)

	data, err := json.Marshal(defs[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "jisho",
		"description": "echo jisho",
		"type": 1,
		"options": [{"name": "text", "description": "text to echo", "type": 3, "required": false, "autocomplete": false}]
	}`, string(data))
}
