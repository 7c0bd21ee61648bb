package config

import (
	"fmt"
	"strings"
)

// Language is a source-language hint passed to the transcription engine.
type Language string

const (
	Arabic  Language = "ar"
	Hebrew  Language = "he"
	English Language = "en"
)

var languageNames = map[Language]string{
	Arabic:  "Arabic",
	Hebrew:  "Hebrew",
	English: "English",
}

// Languages lists the selectable source languages in display order.
func Languages() []Language {
	return []Language{Arabic, Hebrew, English}
}

// ParseLanguage accepts a display name or an ISO 639-1 code.
func ParseLanguage(value string) (Language, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for code, name := range languageNames {
		if v == string(code) || v == strings.ToLower(name) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (choose Arabic, Hebrew or English)", value)
}

// Name returns the display name of the language.
func (l Language) Name() string {
	return languageNames[l]
}
