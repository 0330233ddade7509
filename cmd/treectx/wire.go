//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/hayeah/treectx/internal/config"
)

func BuildOutPipeline(root string, cfg *config.Config, args OutCmd) (*OutPipeline, error) {
	wire.Build(
		ProvideLogger,
		ProvideFS,
		ProvideCache,
		ProvideEngine,
		ProvideCounter,
		ProvideMetrics,
		ProvideMeteredAggregator,
		ProvideProjectStore,
		wire.Struct(new(OutPipeline), "*"),
	)
	return nil, nil
}

func BuildPickApp(root string, cfg *config.Config, args PickCmd) (*PickApp, error) {
	wire.Build(
		ProvideLogger,
		ProvideFS,
		ProvideCache,
		ProvideEngine,
		ProvideAggregator,
		ProvideProjectStore,
		wire.Struct(new(PickApp), "*"),
	)
	return nil, nil
}
