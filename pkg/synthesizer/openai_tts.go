package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var httpClient = &http.Client{}

// DefaultOpenAIVoice is substituted when the panel asks for "default" - the
// OpenAI endpoint only knows its own voice names.
const DefaultOpenAIVoice = "alloy"

type openAITTS struct {
	apiKey string
	model  string
}

// NewOpenAITTS is the hosted (primary) synthesizer, speaking to the
// /v1/audio/speech endpoint directly.
func NewOpenAITTS(openAIAPIKey string, model string) Synthesizer {
	return &openAITTS{
		apiKey: openAIAPIKey,
		model:  model,
	}
}

// ttsPayload is the audio/speech request body.
type ttsPayload struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

func (o *openAITTS) CreateSpeech(ctx context.Context, text string, voice string) (rawAudioBytes []byte, err error) {
	if voice == "" || voice == "default" {
		voice = DefaultOpenAIVoice
	}
	log.Debug().Int("text_length", len(text)).Str("voice", voice).Msg("sendTTSRequest start")

	payload := ttsPayload{
		Model:          o.model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
		Speed:          1.0,
	}
	reqStr, _ := json.Marshal(payload)
	rawAudioBytes, err = o.sendRequest(ctx, "POST", "audio/speech", string(reqStr))
	if err != nil {
		err = fmt.Errorf("could not do audio/speech for voice %s cause %w", voice, err)
		return
	}
	return
}

// Bare HTTP instead of a client library - audio/speech is a single POST and
// the response body is the mp3 itself.
func (o *openAITTS) sendRequest(ctx context.Context, method string, endpoint string, requestStr string) (result []byte, err error) {
	requestStart := time.Now()
	reqBody := strings.NewReader(requestStr)

	req, err := http.NewRequestWithContext(ctx, method, "https://api.openai.com/v1/"+endpoint, reqBody)
	if err != nil {
		return
	}
	req.Header.Add("Authorization", "Bearer "+o.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return
	}
	defer func() { resp.Body.Close() }()

	log.Debug().Dur("request_time", time.Since(requestStart)).Str("method", method).Str("endpoint", endpoint).Int("status_code", resp.StatusCode).Msg("request done")

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("received non-200 status %d from %s: %s", resp.StatusCode, endpoint, errMsg)
		return
	}

	result, err = io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("could not read response %w", err)
		return
	}
	log.Debug().Int("response_byte_size", len(result)).Str("endpoint", endpoint).Msg("request body read done")
	return
}
