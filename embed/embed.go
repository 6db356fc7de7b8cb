// Package embed holds the rich message structures returned to the chat
// platform.
package embed

// ColorXE is the accent colour of every exchange-rate embed.
const ColorXE = 0xfdc835

type Thumbnail struct {
	URL string `json:"url"`
}

type Footer struct {
	Text string `json:"text"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url,omitempty"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Footer      *Footer    `json:"footer,omitempty"`
	Fields      []Field    `json:"fields"`
	Color       int        `json:"color,omitempty"`
}

// New returns an embed with an empty, non-nil field list so it always
// serialises as "fields": [].
func New(title, description string, color int) Embed {
	return Embed{
		Title:       title,
		Description: description,
		Fields:      []Field{},
		Color:       color,
	}
}

func (e Embed) WithField(name, value string, inline bool) Embed {
	e.Fields = append(append([]Field{}, e.Fields...), Field{Name: name, Value: value, Inline: inline})
	return e
}
