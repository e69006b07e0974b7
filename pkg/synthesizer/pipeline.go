package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrEmptyText rejects a request before any provider is contacted.
var ErrEmptyText = errors.New("text is required")

// state is the pipeline's position in the fallback chain. Spelled out as an
// enum rather than nested conditionals so each transition is one visible
// step and each terminal outcome is testable on its own.
type state int

const (
	tryPrimary state = iota
	tryFallback
	writePlaceholder
)

// Pipeline walks tryPrimary -> tryFallback -> writePlaceholder until one
// state produces bytes. Provider failures are swallowed with a log line;
// the only error Synthesize ever returns is ErrEmptyText. The panel must
// answer every speech request, even if all it can say is a text stub.
type Pipeline struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewPipeline wires the two providers. A nil primary (no hosted credential)
// starts the chain at the fallback state; a nil fallback skips straight to
// the placeholder when the primary fails.
func NewPipeline(primary Synthesizer, fallback Synthesizer) *Pipeline {
	return &Pipeline{primary: primary, fallback: fallback}
}

func (p *Pipeline) Synthesize(ctx context.Context, text string, voice string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	current := tryPrimary
	if p.primary == nil {
		current = tryFallback
	}

	for {
		switch current {
		case tryPrimary:
			audio, err := p.primary.CreateSpeech(ctx, text, voice)
			if err != nil {
				log.Warn().Err(err).Msg("primary tts failed, trying fallback")
				current = tryFallback
				continue
			}
			return p.done(audio, PrimaryTTS), nil

		case tryFallback:
			if p.fallback == nil {
				current = writePlaceholder
				continue
			}
			audio, err := p.fallback.CreateSpeech(ctx, text, voice)
			if err != nil {
				log.Warn().Err(err).Msg("fallback tts failed, writing placeholder")
				current = writePlaceholder
				continue
			}
			return p.done(audio, FallbackTTS), nil

		case writePlaceholder:
			stub := fmt.Sprintf("TTS placeholder for voice=%s\n\n%s\n", voice, text)
			return Result{
				Audio:    []byte(stub),
				Format:   "txt",
				Provider: Placeholder,
			}, nil
		}
	}
}

func (p *Pipeline) done(audio []byte, provider Provider) Result {
	result := Result{
		Audio:    audio,
		Format:   "mp3",
		Provider: provider,
	}

	duration, err := MP3Duration(audio)
	if err != nil {
		log.Debug().Err(err).Msg("could not probe mp3 duration")
	} else {
		result.Duration = duration
	}

	log.Info().Str("provider", provider.String()).Int("audio_byte_size", len(audio)).Dur("audio_duration", result.Duration).Msg("speech synthesis done")
	return result
}
