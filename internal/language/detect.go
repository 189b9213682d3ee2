package language

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language of documents without highlighting rules.
const PlainText = "txt"

var extensionLanguage = map[string]string{
	"kt":   "kotlin",
	"java": "java",
	"py":   "python",
	"c":    "c",
}

var languageExtension = map[string]string{
	PlainText: "txt",
	"kotlin":  "kt",
	"java":    "java",
	"python":  "py",
	"c":       "c",
}

// Detect returns the language of a document named filename. Known
// extensions map to the built-in languages. Otherwise the file name is
// matched against chroma's lexer catalogue and the lexer's name or one of
// its aliases is used if the registry holds a language by that name.
func Detect(filename string, r *Registry) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if lang, ok := extensionLanguage[ext]; ok {
		return lang
	}

	if r != nil && filename != "" {
		if lexer := lexers.Match(filepath.Base(filename)); lexer != nil {
			cfg := lexer.Config()
			candidates := append([]string{strings.ToLower(cfg.Name)}, cfg.Aliases...)
			for _, name := range candidates {
				if r.Has(name) {
					return name
				}
			}
		}
	}

	return PlainText
}

// Extension returns the file extension, without the dot, used when saving a
// document in lang. Custom languages take the first file pattern of the
// chroma lexer with the same name; anything else saves as "txt".
func Extension(lang string) string {
	if ext, ok := languageExtension[lang]; ok {
		return ext
	}
	if lexer := lexers.Get(lang); lexer != nil {
		for _, pattern := range lexer.Config().Filenames {
			if ext, ok := strings.CutPrefix(pattern, "*."); ok && !strings.ContainsAny(ext, "*?[") {
				return ext
			}
		}
	}
	return PlainText
}

// WithExtension replaces the extension of filename with the one for lang.
func WithExtension(filename, lang string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + "." + Extension(lang)
}
