package main

import (
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/afero"

	"github.com/markuskoenig271/asiaspanel/internal/server"
	"github.com/markuskoenig271/asiaspanel/internal/utils"
	"github.com/markuskoenig271/asiaspanel/pkg/config"
	"github.com/markuskoenig271/asiaspanel/pkg/storage"
	"github.com/markuskoenig271/asiaspanel/pkg/synthesizer"
	"github.com/markuskoenig271/asiaspanel/pkg/translator"
)

func main() {
	_ = godotenv.Load()
	utils.SetupZerolog()

	settings := config.FromEnv()
	fs := afero.NewOsFs()

	configStore, err := config.NewFileStore(fs, filepath.Join(settings.StorageDir, "config.json"), config.DefaultDocument())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up config store")
	}

	var translate translator.Translator
	var primaryTTS synthesizer.Synthesizer
	if settings.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, running with mock translation and fallback tts only")
		translate = translator.NewChain(nil)
	} else {
		client := openai.NewClient(settings.OpenAIAPIKey)
		translate = translator.NewChain(translator.NewOpenAIChatTranslator(client, settings.OpenAIModel))
		primaryTTS = synthesizer.NewOpenAITTS(settings.OpenAIAPIKey, settings.OpenAITTSModel)
	}
	speech := synthesizer.NewPipeline(primaryTTS, synthesizer.NewGoogleTranslateTTS(settings.TTSLanguage))

	var store storage.Store
	var static http.FileSystem
	if settings.AzureConnectionString != "" {
		azureStore, azErr := storage.NewAzureStore(settings.AzureConnectionString, settings.AzureContainer)
		if azErr != nil {
			log.Fatal().Err(azErr).Msg("cannot set up blob storage")
		}
		store = azureStore
		log.Info().Str("container", settings.AzureContainer).Msg("storing audio in blob container")
	} else {
		localStore, localErr := storage.NewLocalStore(fs, settings.StorageDir)
		if localErr != nil {
			log.Fatal().Err(localErr).Msg("cannot set up local storage")
		}
		store = localStore
		static = localStore.HTTPFileSystem()
		log.Info().Str("dir", settings.StorageDir).Msg("storing audio locally")
	}

	srv := server.New(server.Deps{
		Translator: translate,
		Speech:     speech,
		Store:      store,
		Config:     configStore,
		Static:     static,
		Password:   settings.PanelPassword,
	})

	if err := srv.Run(settings.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
