package config

import (
	"os"
)

// Settings is the process-level configuration, read once from the environment.
// The panel document (voice / language selection) lives in Store instead -
// that one is user-editable at runtime.
type Settings struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// OpenAIAPIKey enables the LLM translator and the primary TTS provider.
	// Empty means "run without OpenAI": translation uses the deterministic
	// mock and speech synthesis starts at the fallback provider.
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAITTSModel string

	// TTSLanguage is the language code handed to the fallback synthesizer.
	TTSLanguage string

	// StorageDir is where generated audio and config.json live when no
	// Azure connection string is configured.
	StorageDir string

	// AzureConnectionString switches audio storage to a blob container.
	AzureConnectionString string
	AzureContainer        string

	// PanelPassword, when set, gates /api behind the shared-secret login.
	PanelPassword string
}

// FromEnv reads Settings with the same variable names the original panel
// deployment used, so an existing .env keeps working.
func FromEnv() Settings {
	return Settings{
		Addr:                  getEnvOr("LISTEN_ADDR", ":8080"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           getEnvOr("OPENAI_MODEL", "gpt-4"),
		OpenAITTSModel:        getEnvOr("OPENAI_TTS_MODEL", "tts-1"),
		TTSLanguage:           getEnvOr("TTS_LANG", "en"),
		StorageDir:            getEnvOr("STORAGE_DIR", "storage"),
		AzureConnectionString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AzureContainer:        getEnvOr("AZURE_TTS_CONTAINER", "tts-audio"),
		PanelPassword:         os.Getenv("PANEL_PASSWORD"),
	}
}

func getEnvOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
