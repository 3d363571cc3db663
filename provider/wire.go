//go:build wireinject
// +build wireinject

package provider

import (
	"github.com/google/wire"
)

func NewProvider() (*Provider, func(), error) {
	wire.Build(
		AllProvider,
	)
	return nil, nil, nil
}
