// Package metadata holds backend model identifiers and pricing used for
// usage reports.
package metadata

type GeminiModel struct {
	ID                      string
	Label                   string
	InputPerMillion         float64
	OutputPerMillion        float64
	ReasoningBilledAsOutput bool
}

var GeminiModels = []GeminiModel{
	{
		ID:                      "gemini-3-flash-preview",
		Label:                   "Gemini 3 Flash (preview)",
		InputPerMillion:         0.50,
		OutputPerMillion:        3.00,
		ReasoningBilledAsOutput: true,
	},
	{
		ID:                      "gemini-3-pro-preview",
		Label:                   "Gemini 3 Pro (preview)",
		InputPerMillion:         2.00,
		OutputPerMillion:        12.00,
		ReasoningBilledAsOutput: true,
	},
}

const (
	DefaultGeminiModel            = "gemini-3-flash-preview"
	DefaultGeminiInputPerMillion  = 2.00
	DefaultGeminiOutputPerMillion = 12.00

	// CloudPerMillionChars is the Cloud Translation list price for text
	// translation, billed per code point sent.
	CloudPerMillionChars = 20.00
)

func GeminiModelIDs() []string {
	ids := make([]string, 0, len(GeminiModels))
	for _, m := range GeminiModels {
		ids = append(ids, m.ID)
	}
	return ids
}

func GeminiPricing(modelID string) (GeminiModel, bool) {
	for _, m := range GeminiModels {
		if m.ID == modelID {
			return m, true
		}
	}
	return GeminiModel{
		ID:                      "default",
		Label:                   "Default Gemini",
		InputPerMillion:         DefaultGeminiInputPerMillion,
		OutputPerMillion:        DefaultGeminiOutputPerMillion,
		ReasoningBilledAsOutput: true,
	}, false
}

// GeminiCost estimates the cost of a token count.
func GeminiCost(modelID string, promptTokens, candidateTokens int) float64 {
	m, _ := GeminiPricing(modelID)
	return float64(promptTokens)/1e6*m.InputPerMillion + float64(candidateTokens)/1e6*m.OutputPerMillion
}

// CloudCost estimates the cost of translating chars code points.
func CloudCost(chars int) float64 {
	return float64(chars) / 1e6 * CloudPerMillionChars
}
