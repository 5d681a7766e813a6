package domain

type ResponseType int

const (
	ResponseMessage ResponseType = iota + 1
	ResponseDeferred
	ResponseModal
)

func (t ResponseType) String() string {
	switch t {
	case ResponseMessage:
		return "message"
	case ResponseDeferred:
		return "deferred"
	case ResponseModal:
		return "modal"
	default:
		return "unknown"
	}
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Fields      []EmbedField
}

type MessagePayload struct {
	Content string
	Embeds  []Embed
	Flags   MessageFlags
	TTS     bool
}

type TextInputStyle int

const (
	TextInputShort     TextInputStyle = 1
	TextInputParagraph TextInputStyle = 2
)

type TextInput struct {
	CustomID    string
	Label       string
	Style       TextInputStyle
	Placeholder string
	Value       string
	Required    bool
	MinLength   int
	MaxLength   int
}

type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// InitialResponse is the first reply to an interaction. Message is set for
// ResponseMessage, Modal for ResponseModal, Flags applies to ResponseDeferred.
type InitialResponse struct {
	Type    ResponseType
	Message *MessagePayload
	Modal   *Modal
	Flags   MessageFlags
}

type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}
