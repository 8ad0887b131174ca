package engine

import (
	"github.com/spaghettifunk/drawbug/engine/renderer"
)

// Game is the code a host runs every frame. Only FnUpdate is required.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnFixedUpdate     FixedUpdate
	FnRender          Render
	FnShutdown        Shutdown
}

type Initialize func(ctx *Context) error
type Update func(ctx *Context, deltaTime float64) error
type FixedUpdate func(ctx *Context, step float64) error
type Render func(packet *renderer.RenderPacket) error
type Shutdown func(ctx *Context) error
