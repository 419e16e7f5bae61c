package language

import (
	"sort"
	"strings"
)

// Language is a supported language and its code for each backend.
type Language struct {
	// Code is the canonical CLI/config identifier.
	Code string
	Name string
	// CloudCode is the BCP-47 code sent to Cloud Translation and Gemini.
	CloudCode string
	// ModelCode is the FLORES-200 code used by NLLB-style local models.
	ModelCode string
}

var Languages = map[string]Language{
	"zh-CN": {Code: "zh-CN", Name: "Chinese (Simplified)", CloudCode: "zh-CN", ModelCode: "zho_Hans"},
	"zh-TW": {Code: "zh-TW", Name: "Chinese (Traditional)", CloudCode: "zh-TW", ModelCode: "zho_Hant"},
	"ko":    {Code: "ko", Name: "Korean", CloudCode: "ko", ModelCode: "kor_Hang"},
	"en":    {Code: "en", Name: "English", CloudCode: "en", ModelCode: "eng_Latn"},
	"ja":    {Code: "ja", Name: "Japanese", CloudCode: "ja", ModelCode: "jpn_Jpan"},
	"th":    {Code: "th", Name: "Thai", CloudCode: "th", ModelCode: "tha_Thai"},
	"pt":    {Code: "pt", Name: "Portuguese", CloudCode: "pt", ModelCode: "por_Latn"},
	"id":    {Code: "id", Name: "Indonesian", CloudCode: "id", ModelCode: "ind_Latn"},
	"vi":    {Code: "vi", Name: "Vietnamese", CloudCode: "vi", ModelCode: "vie_Latn"},
}

var aliases = map[string]string{
	"zh":      "zh-CN",
	"zh-hans": "zh-CN",
	"zh-hant": "zh-TW",
	"zh-cn":   "zh-CN",
	"zh-tw":   "zh-TW",
}

// GetLanguage looks up a language by code, alias or English name.
func GetLanguage(code string) (Language, bool) {
	needle := strings.TrimSpace(code)
	if lang, ok := Languages[needle]; ok {
		return lang, true
	}
	if canonical, ok := aliases[strings.ToLower(needle)]; ok {
		return Languages[canonical], true
	}
	for _, lang := range Languages {
		if strings.EqualFold(lang.Code, needle) || strings.EqualFold(lang.Name, needle) {
			return lang, true
		}
	}
	return Language{}, false
}

// GetSupportedLanguages returns every language sorted by name.
func GetSupportedLanguages() []Language {
	out := make([]Language, 0, len(Languages))
	for _, lang := range Languages {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
