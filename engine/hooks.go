package engine

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/renderer"
)

// Frame hooks. A host calls them in this order every frame:
//
//	OnFrameBegin(dt)
//	OnFixedStep() ... OnFixedStepEnd()   zero or more times
//	OnLateFrame()
//	OnConsume()                          optional, before the next OnFrameBegin

// OnFrameBegin joins a pending expansion, drops the commands of the last
// frame and counts the duration slots down by deltaTime seconds.
func (c *Context) OnFrameBegin(deltaTime float64) error {
	if err := c.ready(); err != nil {
		return err
	}
	var joinErr error
	if c.job.Pending() {
		joinErr = c.job.Wait()
	}
	c.frame.Clear()
	c.pool.Tick(float32(deltaTime))
	c.deltaTime = deltaTime
	c.scheduled = false
	if c.stage == StageInitialized {
		c.stage = StageRunning
	}
	return joinErr
}

// OnFixedStep starts a fixed step. Commands recorded until OnFixedStepEnd
// replace those of the previous fixed step and are drawn every frame until
// the next fixed step runs.
func (c *Context) OnFixedStep() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.fixed.Clear()
	c.inFixedStep = true
	return nil
}

func (c *Context) OnFixedStepEnd() {
	c.inFixedStep = false
}

// OnLateFrame merges the frame, the fixed step and every active duration
// slot and starts expanding the result in the background. Each merged
// segment starts from wire mode and the identity matrix.
func (c *Context) OnLateFrame() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.job.Pending() {
		return fmt.Errorf("late frame: %w", core.ErrExpansionInProgress)
	}
	c.merged.Clear()
	if err := c.merge(c.frame, "frame"); err != nil {
		return err
	}
	if err := c.merge(c.fixed, "fixed"); err != nil {
		return err
	}
	if err := c.pool.DrainInto(c.merged); err != nil {
		return err
	}
	if err := c.job.Schedule(c.merged.Bytes()); err != nil {
		return err
	}
	c.scheduled = true
	return nil
}

func (c *Context) merge(s *commands.Stream, name string) error {
	if !s.HasData() {
		return nil
	}
	if err := c.merged.WriteStateReset(); err != nil {
		return fmt.Errorf("merge %s stream: %w", name, err)
	}
	if err := c.merged.MergeFrom(s); err != nil {
		return fmt.Errorf("merge %s stream: %w", name, err)
	}
	return nil
}

// OnConsume waits for the expansion scheduled by OnLateFrame and returns
// its output. The packet is valid until the next OnFrameBegin.
func (c *Context) OnConsume() (*renderer.RenderPacket, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.scheduled {
		return nil, fmt.Errorf("consume: %w", core.ErrNoExpansion)
	}
	if err := c.job.Wait(); err != nil {
		return nil, err
	}
	return renderer.NewRenderPacket(c.output, c.deltaTime, c.visuals()), nil
}
