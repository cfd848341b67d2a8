package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/spf13/viper"
)

var (
	detector     lingua.LanguageDetector
	detectorOnce sync.Once
)

// DetectLanguage tags post content with an ISO 639-1 code. Detection can be
// switched off (`features.language_detection`), the models are not free to
// load.
func DetectLanguage(content string) string {
	if !viper.GetBool("features.language_detection") {
		return "unknown"
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Russian,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Japanese,
				lingua.Chinese,
			).
			Build()
	})

	if language, ok := detector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return "unknown"
}
