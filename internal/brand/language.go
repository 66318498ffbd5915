package brand

// DefaultLocalLanguage is used for any state without a specific entry.
const DefaultLocalLanguage = "Hindi"

// stateLanguages maps an Indian state to the language used for the
// localized half of every tone variant.
var stateLanguages = map[string]string{
	"Maharashtra": "Marathi",
	"Karnataka":   "Kannada",
	"Tamil Nadu":  "Tamil",
}

// LocalLanguageForState returns the local language for a state. The lookup
// is exact; unknown or empty states get DefaultLocalLanguage.
func LocalLanguageForState(state string) string {
	if lang, ok := stateLanguages[state]; ok {
		return lang
	}
	return DefaultLocalLanguage
}

// IndianLanguages is the translation menu offered for every post.
var IndianLanguages = []string{
	"Hindi",
	"Kannada",
	"Tamil",
	"Telugu",
	"Marathi",
	"Malayalam",
	"Bengali",
	"Gujarati",
	"Punjabi",
}
