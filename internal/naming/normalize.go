package naming

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = '_'

// tokenLength matches the eight character suffix the download names use.
const tokenLength = 8

// Normalize returns a deterministic, path-safe version of a file name.
// The result may be empty; callers still treat it as a valid identity.
func Normalize(raw string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	cleanExt := NormalizeStem(strings.TrimPrefix(ext, "."))
	if cleanExt == "" {
		// "name." or "name.(" has no usable extension; keep it in the stem.
		return NormalizeStem(base)
	}
	return NormalizeStem(stem) + "." + strings.ToLower(cleanExt)
}

// NormalizeStem cleans a name that carries no extension.
func NormalizeStem(raw string) string {
	ascii := transliterate(raw)

	var b strings.Builder
	pendingSep := false
	for _, r := range ascii {
		switch {
		case isWord(r):
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
		case r == separator || r == '-' || r == '.' || unicode.IsSpace(r):
			pendingSep = true
		default:
			// illegal or punctuation characters are dropped
		}
	}
	return b.String()
}

// WithToken prefixes raw with a random token before normalizing it, so two
// unrelated downloads that share a title never collide.
func WithToken(raw string) string {
	return Normalize(Token() + string(separator) + filepath.Base(raw))
}

// Token returns a short random lowercase token.
func Token() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

// Stem returns name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func transliterate(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	for _, r := range out {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		} else if unicode.IsSpace(r) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isWord(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
