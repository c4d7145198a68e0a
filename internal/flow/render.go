package flow

// RenderKind selects how a step result reaches the chat.
type RenderKind int

const (
	// RenderMessage sends a fresh text message.
	RenderMessage RenderKind = iota
	// RenderPhotoCard sends a photo with a caption.
	RenderPhotoCard
	// RenderEdit rewrites the triggering message in place.
	RenderEdit
)

// Button is one inline keyboard affordance. A Disabled button still
// renders but resolves to a no-op acknowledgement; a URL button opens
// an external link instead of firing a callback.
type Button struct {
	Label    string
	Action   string
	Data     string
	URL      string
	Disabled bool
}

// Render is a transport-neutral instruction produced by the flow
// transitions. The bot layer translates it into telebot calls, which
// keeps the transitions testable without a live chat.
type Render struct {
	Kind    RenderKind
	Text    string
	Photo   string
	Buttons [][]Button
}

// Message builds a plain text render.
func Message(text string) Render {
	return Render{Kind: RenderMessage, Text: text}
}

// PhotoCard builds a photo render with a caption.
func PhotoCard(photo, caption string) Render {
	return Render{Kind: RenderPhotoCard, Photo: photo, Text: caption}
}

// Edit builds an in-place rewrite of the triggering message.
func Edit(photo, caption string) Render {
	return Render{Kind: RenderEdit, Photo: photo, Text: caption}
}

// WithButtons attaches inline keyboard rows to the render.
func (r Render) WithButtons(rows ...[]Button) Render {
	r.Buttons = rows
	return r
}

// Row groups buttons into a single keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}
