// Package interaction decodes chat-platform interaction webhooks, routes
// them to registered commands and builds the callback response.
package interaction

import (
	"github.com/infigaming-com/xe-bot/embed"
)

type InteractionType int

const (
	TypePing InteractionType = iota + 1
	TypeApplicationCommand
	TypeMessageComponent
	TypeApplicationCommandAutocomplete
	TypeModalSubmit
)

type ResponseType int

const (
	ResponsePong                     ResponseType = 1
	ResponseChannelMessageWithSource ResponseType = 4
	ResponseDeferredChannelMessage   ResponseType = 5
	ResponseAutocompleteResult       ResponseType = 8
)

type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionBoolean         OptionType = 5
)

// CommandTypeChatInput is the slash-command application command type.
const CommandTypeChatInput = 1

type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	PublicFlags   int    `json:"public_flags,omitempty"`
}

type Member struct {
	User        *User    `json:"user"`
	Nick        string   `json:"nick,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions string   `json:"permissions,omitempty"`
	JoinedAt    string   `json:"joined_at,omitempty"`
}

// DataOption is one argument as sent by the platform. Value may be a
// string, number or boolean depending on the option type.
type DataOption struct {
	Name    string     `json:"name"`
	Type    OptionType `json:"type"`
	Value   any        `json:"value,omitempty"`
	Focused bool       `json:"focused,omitempty"`
}

type Data struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Options []DataOption `json:"options,omitempty"`
}

type Interaction struct {
	ID            string          `json:"id"`
	Type          InteractionType `json:"type"`
	Data          *Data           `json:"data,omitempty"`
	Token         string          `json:"token"`
	GuildID       string          `json:"guild_id,omitempty"`
	ChannelID     string          `json:"channel_id,omitempty"`
	ApplicationID string          `json:"application_id,omitempty"`
	Member        *Member         `json:"member,omitempty"`
	User          *User           `json:"user,omitempty"`
	Version       int             `json:"version,omitempty"`
}

// Username is the invoking member's name in a guild, or the user's name in
// a direct message.
func (i *Interaction) Username() string {
	if i.Member != nil && i.Member.User != nil && i.Member.User.Username != "" {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}

type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MessageData is the callback data of a channel message response.
type MessageData struct {
	Content string        `json:"content,omitempty"`
	Embeds  []embed.Embed `json:"embeds,omitempty"`
}

type AutocompleteData struct {
	Choices []Choice `json:"choices"`
}

type Response struct {
	Type ResponseType `json:"type"`
	Data any          `json:"data,omitempty"`
}

// CommandOption describes one argument in a registered command schema.
type CommandOption struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         OptionType `json:"type"`
	Required     bool       `json:"required"`
	Autocomplete bool       `json:"autocomplete"`
	Choices      []Choice   `json:"choices,omitempty"`
}

type CommandDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        int             `json:"type"`
	Options     []CommandOption `json:"options,omitempty"`
}

// optionMap indexes options by name for lookups with util.GetMapString.
func optionMap(options []DataOption) map[string]any {
	m := make(map[string]any, len(options))
	for _, opt := range options {
		m[opt.Name] = opt.Value
	}
	return m
}
