package translator

import (
	"context"

	"github.com/rs/zerolog/log"
)

// chain tries the configured provider once and degrades to the mock when it
// is absent or errors. No retry: a provider failure is decided once per
// request and the caller never sees it.
type chain struct {
	primary Translator
	mock    Translator
}

// NewChain wraps primary with the mock degradation path. A nil primary means
// no credential was configured and every request goes straight to the mock.
func NewChain(primary Translator) Translator {
	return chain{primary: primary, mock: NewMockTranslator()}
}

func (c chain) Translate(ctx context.Context, req Request) (Result, error) {
	if c.primary != nil {
		result, err := c.primary.Translate(ctx, req)
		if err == nil {
			return result, nil
		}
		log.Warn().Err(err).Str("target", req.Target).Msg("translation provider unavailable, degrading to mock")
	}
	return c.mock.Translate(ctx, req)
}
