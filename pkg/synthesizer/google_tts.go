package synthesizer

import (
	"context"
	"os"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// googleTranslateTTS is the credential-free fallback. It rides the public
// Google Translate speech endpoint, so quality is what it is - but it keeps
// the panel producing real mp3 audio when no OpenAI key is around.
type googleTranslateTTS struct {
	language string
}

// NewGoogleTranslateTTS builds the fallback synthesizer for the given
// language code ("en", "de", ...). The voice argument of CreateSpeech is
// ignored; the endpoint has exactly one voice per language.
func NewGoogleTranslateTTS(language string) Synthesizer {
	return &googleTranslateTTS{language: language}
}

func (g *googleTranslateTTS) CreateSpeech(ctx context.Context, text string, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// htgo-tts only writes files, so give it a scratch dir and read back.
	dir, err := os.MkdirTemp("", "gtts")
	if err != nil {
		return nil, errors.Wrap(err, "cannot create scratch dir for fallback tts")
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Debug().Err(rmErr).Str("dir", dir).Msg("scratch dir cleanup failed")
		}
	}()

	speech := htgotts.Speech{Folder: dir, Language: g.language}
	filename, err := speech.CreateSpeechFile(text, "fallback")
	if err != nil {
		return nil, errors.Wrapf(err, "google translate tts failed for language %s", g.language)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read back fallback tts output")
	}
	log.Debug().Int("audio_byte_size", len(data)).Str("language", g.language).Msg("fallback tts done")
	return data, nil
}
