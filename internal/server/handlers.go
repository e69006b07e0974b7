package server

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/markuskoenig271/asiaspanel/pkg/config"
	"github.com/markuskoenig271/asiaspanel/pkg/synthesizer"
	"github.com/markuskoenig271/asiaspanel/pkg/translator"
)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if req.Source == "" {
		req.Source = "auto"
	}
	if req.Target == "" {
		req.Target = s.deps.Config.Get().DefaultTargetLanguage
	}

	result, err := s.deps.Translator.Translate(c.Request.Context(), translator.Request{
		Text:   req.Text,
		Source: req.Source,
		Target: req.Target,
	})
	if err != nil {
		// The chain degrades to the mock on provider trouble, so an error
		// here is a programming mistake rather than an upstream outage.
		log.Error().Err(err).Msg("translate failed past the degradation path")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "translation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translatedText": result.Text,
		"providerUsed":   result.Provider.String(),
	})
}

type ttsRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

func (s *Server) handleTTS(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Voice == "" {
		req.Voice = s.deps.Config.Get().SelectedVoice
	}

	result, err := s.deps.Speech.Synthesize(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		if errors.Is(err, synthesizer.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}
		log.Error().Err(err).Msg("speech synthesis failed past the placeholder path")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech synthesis failed"})
		return
	}

	name := fmt.Sprintf("tts_%s.%s", newObjectID(), result.Format)
	url, err := s.deps.Store.Save(c.Request.Context(), name, result.Audio)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("could not store synthesized audio")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not store audio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":          url,
		"providerUsed": result.Provider.String(),
	})
}

func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Config.Get())
}

func (s *Server) handleSetConfig(c *gin.Context) {
	var doc config.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Wholesale replace, no merge with the previous document.
	if err := s.deps.Config.Replace(doc); err != nil {
		log.Error().Err(err).Msg("could not persist config document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist config"})
		return
	}

	c.JSON(http.StatusOK, s.deps.Config.Get())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(s.startedAt) / time.Second),
	})
}

// newObjectID mirrors the original file naming: tts_<32 hex chars>.<ext>.
func newObjectID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
