package translator

import "context"

// mockTranslator reverses the input runes. Deterministic on purpose: the
// panel has to stay demoable on a laptop with no API key, and tests need a
// transform they can predict. Same trick the original deployment used.
type mockTranslator struct{}

// NewMockTranslator returns the credential-free translator.
func NewMockTranslator() Translator {
	return mockTranslator{}
}

func (mockTranslator) Translate(_ context.Context, req Request) (Result, error) {
	return Result{
		Text:     reverseRunes(req.Text),
		Provider: ProviderNone,
	}, nil
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
