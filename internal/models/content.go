package models

// Roles used on the wire by the generateContent API
const (
	ContentRoleUser  = "user"
	ContentRoleModel = "model"
)

// Part is a single piece of a content turn. Only text parts are sent.
type Part struct {
	Text string `json:"text"`
}

// Content is one turn of a conversation as the API expects it
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Text returns the concatenated text of all parts
func (c Content) Text() string {
	switch len(c.Parts) {
	case 0:
		return ""
	case 1:
		return c.Parts[0].Text
	}
	var n int
	for _, p := range c.Parts {
		n += len(p.Text)
	}
	buf := make([]byte, 0, n)
	for _, p := range c.Parts {
		buf = append(buf, p.Text...)
	}
	return string(buf)
}

// NewUserContent creates a user turn
func NewUserContent(text string) Content {
	return Content{Role: ContentRoleUser, Parts: []Part{{Text: text}}}
}

// NewModelContent creates a model turn
func NewModelContent(text string) Content {
	return Content{Role: ContentRoleModel, Parts: []Part{{Text: text}}}
}

// GenerateRequest is the body of a generateContent call
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}
