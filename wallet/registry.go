package wallet

import (
	"sort"

	"github.com/tessellated-io/walletbridge/log"
)

// Registry tracks installed wallet providers. It is the analog of probing the page for
// injected wallet globals: a provider that was never installed cannot be detected.
type Registry struct {
	providers map[string]Provider

	logger *log.Logger
}

func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		providers: make(map[string]Provider),

		logger: logger.ApplyPrefix("🔌 "),
	}
}

// Install registers a provider under its name, replacing any previous registration.
func (r *Registry) Install(provider Provider) {
	r.providers[provider.Name()] = provider
	r.logger.Debug("installed wallet provider", "wallet", provider.Name())
}

// Detect returns the provider registered under the given name.
func (r *Registry) Detect(name string) (Provider, error) {
	provider, found := r.providers[name]
	if !found {
		r.logger.Warn("wallet not installed", "wallet", name)
		return nil, ErrWalletNotFound
	}
	return provider, nil
}

// InstalledWallets lists registered provider names in a stable order.
func (r *Registry) InstalledWallets() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
