package media

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

var (
	audioFormats      = []string{".m4a", ".mp3", ".mpga", ".wav"}
	extractionFormats = []string{".mp4", ".webm", ".mpeg"}
)

// Classify determines from a file name whether it can be transcribed as is,
// needs audio extracted first, or is not supported at all.
func Classify(name string) domain.Kind {
	ext := strings.ToLower(filepath.Ext(name))

	for _, format := range audioFormats {
		if ext == format {
			return domain.KindAudio
		}
	}
	for _, format := range extractionFormats {
		if ext == format {
			return domain.KindNeedsExtraction
		}
	}

	return domain.KindUnsupported
}

// IsSupported reports whether name has a supported extension.
func IsSupported(name string) bool {
	return Classify(name) != domain.KindUnsupported
}

// SupportedFormats returns every accepted extension, audio formats first.
func SupportedFormats() []string {
	formats := make([]string, 0, len(audioFormats)+len(extractionFormats))
	formats = append(formats, audioFormats...)
	return append(formats, extractionFormats...)
}

// Candidates builds the deduplicated work list for a run. Items are keyed by
// identity and a later item replaces an earlier one with the same identity.
// Unsupported names are skipped. The result keeps first-seen order.
func Candidates(items ...domain.MediaItem) []domain.MediaItem {
	index := make(map[string]int, len(items))
	out := make([]domain.MediaItem, 0, len(items))

	for _, item := range items {
		kind := Classify(item.Identity)
		if kind == domain.KindUnsupported {
			continue
		}
		item.Kind = kind

		if i, ok := index[item.Identity]; ok {
			out[i] = item
			continue
		}
		index[item.Identity] = len(out)
		out = append(out, item)
	}

	return out
}
