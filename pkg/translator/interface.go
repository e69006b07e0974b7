package translator

import "context"

// Provider identifies which path produced a translation.
type Provider int

const (
	// ProviderNone means the deterministic mock answered - either no LLM
	// credential was configured or the provider call failed and we degraded.
	ProviderNone Provider = iota
	ProviderLLM
)

func (p Provider) String() string {
	names := [...]string{
		"none",
		"LLM",
	}

	if p < ProviderNone || p > ProviderLLM {
		return "Unknown"
	}

	return names[p]
}

// Request is one translation call. Target must already be resolved by the
// caller (the HTTP layer fills it from the panel document when absent).
type Request struct {
	Text   string
	Source string
	Target string
}

// Result is the single outcome of a Request.
type Result struct {
	Text     string
	Provider Provider
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}
