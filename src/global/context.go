package global

import (
	"context"

	"github.com/pixelling/pixelling/src/configure"
	"github.com/spf13/afero"
)

type Context interface {
	context.Context
	Instances() *Instances
	Config() *configure.Config
}

type GlobalContext struct {
	context.Context
	Insts *Instances
	Cfg   *configure.Config
}

// New wraps ctx with config. Instances start out on the OS filesystem.
func New(ctx context.Context, config *configure.Config) Context {
	return &GlobalContext{
		Context: ctx,
		Insts: &Instances{
			Fs: afero.NewOsFs(),
		},
		Cfg: config,
	}
}

func (g *GlobalContext) Instances() *Instances {
	return g.Insts
}

func (g *GlobalContext) Config() *configure.Config {
	return g.Cfg
}
