package svc

import (
	"ratefeed-api/internal/config"
	"ratefeed-api/pkg/kaiko"
	"ratefeed-api/pkg/pricing"
)

type ServiceContext struct {
	Config config.Config

	Source   pricing.MarketDataSource
	Resolver *pricing.Resolver
}

func NewServiceContext(c config.Config) *ServiceContext {
	var source pricing.MarketDataSource
	if c.Kaiko.Value != nil {
		source = kaiko.NewClientFromConfig(c.Kaiko.Value)
	} else {
		source = kaiko.NewClient()
	}

	resolver := pricing.NewResolver(source,
		pricing.WithMaxProxyAssets(c.Pricing.MaxProxyAssets),
		pricing.WithSampleLimit(c.Pricing.SampleLimit),
		pricing.WithRoundScale(c.Pricing.RoundScale),
	)

	return &ServiceContext{
		Config:   c,
		Source:   source,
		Resolver: resolver,
	}
}
