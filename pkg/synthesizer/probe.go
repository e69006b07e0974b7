package synthesizer

import (
	"bytes"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"
)

// MP3Duration decodes the stream headers to report playback length.
// go-mp3 always outputs 16-bit stereo, so 4 bytes per sample.
func MP3Duration(data []byte) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, errors.Wrap(err, "cannot decode mp3")
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return 0, errors.Errorf("implausible mp3 sample rate %d", sampleRate)
	}

	samples := decoder.Length() / 4
	return time.Duration(samples) * time.Second / time.Duration(sampleRate), nil
}
