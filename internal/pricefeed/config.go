package pricefeed

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/finnhub"
	"github.com/ndewijer/Investment-Club-Backend/internal/yahoo"
)

// FromConfig builds the provider chain in the order listed by PRICE_PROVIDERS.
// Finnhub is skipped without an API key. The Yahoo provider expands into the direct
// chart API followed by every configured proxy template.
func FromConfig(cfg config.PriceConfig) (*Chain, error) {
	var batch []BatchProvider
	var single []SingleProvider

	for _, name := range cfg.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "finnhub":
			client := finnhub.New(cfg)
			if client == nil {
				log.Info().Msg("FINNHUB_API_KEY not set, skipping finnhub provider")
				continue
			}
			single = append(single, client)
		case "yahoo":
			if cfg.YahooBatchEnabled {
				batch = append(batch, yahoo.NewQuoteProvider(cfg))
			}
			for _, p := range yahoo.NewChartProviders(cfg) {
				single = append(single, p)
			}
		case "":
		default:
			return nil, fmt.Errorf("unknown price provider %q", name)
		}
	}

	chain := NewChain(batch, single, cfg.RequestTimeout, cfg.FallbackDelay)
	log.Info().Strs("providers", chain.Providers()).Msg("price provider chain configured")

	return chain, nil
}
