package systems

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/drawbug/engine/containers"
	"github.com/spaghettifunk/drawbug/engine/core"
)

// DefaultHistorySize is the number of expansion samples kept for diagnostics.
const DefaultHistorySize = 120

// ExpansionJob runs one expansion at a time on a background goroutine.
// While a job is pending the worker owns the scheduled stream and the
// RenderData; Wait hands both back.
type ExpansionJob struct {
	mutex   sync.Mutex
	group   *errgroup.Group
	pending bool

	expander *Expander
	output   *RenderData
	metrics  *core.Metrics
	history  *containers.RingQueue[core.ExpansionSample]

	// OnComplete is called on the worker after a successful expansion. Optional.
	OnComplete func(sample core.ExpansionSample)
	// OnFailure is called on the worker when an expansion fails. Optional.
	OnFailure func(err error)
}

func NewExpansionJob(output *RenderData, metrics *core.Metrics, historySize int) *ExpansionJob {
	if metrics == nil {
		metrics = core.NewMetrics()
	}
	if historySize < 0 {
		historySize = 0
	}
	return &ExpansionJob{
		expander: NewExpander(output),
		output:   output,
		metrics:  metrics,
		history:  containers.NewRingQueue[core.ExpansionSample](historySize),
	}
}

// Schedule starts expanding the encoded commands in data, usually the Bytes
// of a commands.Stream. data must not be written until Wait returns.
// Scheduling while a job is pending fails with core.ErrExpansionInProgress.
func (j *ExpansionJob) Schedule(data []byte) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.pending {
		return core.ErrExpansionInProgress
	}
	j.pending = true
	j.group = new(errgroup.Group)
	j.group.Go(func() error {
		return j.run(data)
	})
	return nil
}

func (j *ExpansionJob) run(data []byte) error {
	start := time.Now()
	if err := j.expander.Expand(data); err != nil {
		err = fmt.Errorf("expand %d bytes: %w", len(data), err)
		core.LogError("%s", err.Error())
		if j.OnFailure != nil {
			j.OnFailure(err)
		}
		return err
	}

	sample := core.ExpansionSample{
		Seconds:       time.Since(start).Seconds(),
		StreamBytes:   uint32(len(data)),
		WirePoints:    uint32(j.output.Wire.Len()),
		SolidVertices: uint32(j.output.Solid.VertexCount()),
		SolidIndices:  uint32(j.output.Solid.IndexCount()),
		Styles:        uint32(len(j.output.Styles())),
	}
	j.metrics.Update(sample)

	j.mutex.Lock()
	j.history.Push(sample)
	j.mutex.Unlock()

	if j.OnComplete != nil {
		j.OnComplete(sample)
	}
	return nil
}

// Wait blocks until the pending expansion finishes and returns its error.
// It returns nil immediately when nothing is pending.
func (j *ExpansionJob) Wait() error {
	j.mutex.Lock()
	group := j.group
	pending := j.pending
	j.mutex.Unlock()
	if !pending {
		return nil
	}

	err := group.Wait()

	j.mutex.Lock()
	j.pending = false
	j.group = nil
	j.mutex.Unlock()
	return err
}

// Pending reports whether an expansion has been scheduled and not joined.
func (j *ExpansionJob) Pending() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.pending
}

func (j *ExpansionJob) Metrics() *core.Metrics {
	return j.metrics
}

// History returns the most recent expansion samples, oldest first.
func (j *ExpansionJob) History() []core.ExpansionSample {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.history.Items()
}
