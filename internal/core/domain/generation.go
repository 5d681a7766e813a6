package domain

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}

// Model is a text model the bot may ask, selected by its keyword.
type Model struct {
	Keyword    string `mapstructure:"keyword" json:"keyword"`
	Identifier string `mapstructure:"identifier" json:"identifier"`
}
