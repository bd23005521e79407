package entities

// Language describes a word list the quiz can be played in.
type Language struct {
	Code        string // BCP-47 code, also used for TTS, e.g. "el"
	DisplayName string // human-readable name shown in the language picker
	WordsFile   string // CSV file name relative to the assets root
	WordColumn  int    // zero-based CSV column holding the word text
}

const DefaultLanguageCode = "en"

var languages = []Language{
	{Code: "en", DisplayName: "English", WordsFile: "words.csv", WordColumn: 0},
	{Code: "el", DisplayName: "Ελληνικά", WordsFile: "words_el.csv", WordColumn: 4},
}

// Languages returns all supported languages in display order.
func Languages() []Language {
	result := make([]Language, len(languages))
	copy(result, languages)
	return result
}

// LookupLanguage returns the language with the given code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
