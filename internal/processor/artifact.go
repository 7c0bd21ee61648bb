package processor

import "github.com/nguyentantai21042004/transcribe-flow/internal/naming"

const (
	transcriptHeader = "--- Original Transcription ---\n"
	analysisHeader   = "\n\n--- AI Analysis & Translation (Hebrew) ---\n"

	// ArtifactExt is the suffix of every artifact name.
	ArtifactExt = ".txt"

	fallbackArtifactStem = "transcript"
)

// ComposeArtifact joins the transcript and the analysis into the combined
// deliverable, transcript first.
func ComposeArtifact(transcript, analysis string) string {
	return transcriptHeader + transcript + analysisHeader + analysis
}

// ArtifactName derives the artifact file name from an item identity.
func ArtifactName(identity string) string {
	stem := naming.NormalizeStem(naming.Stem(identity))
	if stem == "" {
		stem = fallbackArtifactStem
	}
	return stem + ArtifactExt
}
