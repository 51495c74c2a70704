package vision

import (
	"fmt"

	"veridoc/internal/config"
	"veridoc/internal/port"
)

// ProviderFactory is a function that creates a ModelGateway from a provider config.
type ProviderFactory func(cfg *config.GatewayProviderConfig) (port.ModelGateway, error)

// registry of gateway provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a gateway provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGateway creates a ModelGateway from a provider config using the registered factory.
func NewGateway(cfg *config.GatewayProviderConfig) (port.ModelGateway, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown gateway provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
