package synthesizer

import (
	"context"
	"time"
)

// Provider tags which synthesis path produced the audio handed to storage.
type Provider int

const (
	PrimaryTTS Provider = iota
	FallbackTTS
	Placeholder
)

func (p Provider) String() string {
	names := [...]string{
		"PrimaryTTS",
		"FallbackTTS",
		"Placeholder",
	}

	if p < PrimaryTTS || p > Placeholder {
		return "Unknown"
	}

	return names[p]
}

// Result is what the pipeline hands to storage: the produced bytes (real
// audio, or the text placeholder when every provider failed), the file
// extension they should be stored under, and which provider made them.
// Duration is best effort and zero when the bytes are not decodable mp3.
type Result struct {
	Audio    []byte
	Format   string
	Provider Provider
	Duration time.Duration
}

// Synthesizer converts text to audio bytes. Implementations return an error
// on any failure; deciding what a failure means is the pipeline's job.
type Synthesizer interface {
	CreateSpeech(ctx context.Context, text string, voice string) ([]byte, error)
}
