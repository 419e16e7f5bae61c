package gemini

// RequestData is the JSON document sent to the model for one batch.
type RequestData struct {
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	Texts          []string `json:"texts"`
}

// ResponseData is the JSON document expected back from the model.
type ResponseData struct {
	Translations []string      `json:"translations"`
	Usage        UsageMetadata `json:"-"` // filled from the API response, not the model output
}

// UsageMetadata holds token usage information.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}

func (u *UsageMetadata) add(o UsageMetadata) {
	u.PromptTokenCount += o.PromptTokenCount
	u.CandidatesTokenCount += o.CandidatesTokenCount
	u.TotalTokenCount += o.TotalTokenCount
}
