package core

import "sync"

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average of expansion times and the size of the
// most recent expansion. It is written by the expansion worker and read by
// the main thread.
type Metrics struct {
	mutex sync.Mutex

	avgCounter uint8
	msTimes    [AVG_COUNT]float64
	msAvg      float64
	samples    uint64

	lastWirePoints    uint32
	lastSolidVertices uint32
	lastSolidIndices  uint32
	lastStyles        uint32
	lastStreamBytes   uint32
}

// ExpansionSample describes one completed expansion pass.
type ExpansionSample struct {
	Seconds       float64
	StreamBytes   uint32
	WirePoints    uint32
	SolidVertices uint32
	SolidIndices  uint32
	Styles        uint32
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Update(sample ExpansionSample) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ms := sample.Seconds * 1000.0
	m.msTimes[m.avgCounter] = ms
	m.samples++

	// Average over what has been collected so far until the window is full.
	window := uint64(AVG_COUNT)
	if m.samples < window {
		window = m.samples
	}
	sum := 0.0
	for i := uint64(0); i < window; i++ {
		sum += m.msTimes[i]
	}
	m.msAvg = sum / float64(window)

	m.avgCounter++
	m.avgCounter %= AVG_COUNT

	m.lastStreamBytes = sample.StreamBytes
	m.lastWirePoints = sample.WirePoints
	m.lastSolidVertices = sample.SolidVertices
	m.lastSolidIndices = sample.SolidIndices
	m.lastStyles = sample.Styles
}

// AverageMS returns the rolling average expansion time in milliseconds.
func (m *Metrics) AverageMS() float64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.msAvg
}

func (m *Metrics) Samples() uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.samples
}

// Last returns the counts recorded by the most recent expansion.
func (m *Metrics) Last() ExpansionSample {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return ExpansionSample{
		Seconds:       m.msTimes[(m.avgCounter+AVG_COUNT-1)%AVG_COUNT] / 1000.0,
		StreamBytes:   m.lastStreamBytes,
		WirePoints:    m.lastWirePoints,
		SolidVertices: m.lastSolidVertices,
		SolidIndices:  m.lastSolidIndices,
		Styles:        m.lastStyles,
	}
}
