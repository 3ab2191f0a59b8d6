package metrics

import (
	"time"
)

type SearchMetric struct {
	Depth     int
	Duration  time.Duration
	Nodes     int // positions expanded
	Leaves    int // static evaluations
	Cutoffs   int // alpha-beta prunes
	Evaluator string
	Score     int
}

type MoveMetric struct {
	Step int
	Side string
	Move string
	SearchMetric
}

type GameMetric struct {
	ID           string
	StartingSide string
	Winner       string
	Repeated     bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

// Collector gathers statistics for one search. Searches are single-threaded
// so implementations need no locking.
type Collector interface {
	Start(depth int, evaluator string)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(score int) SearchMetric
}

type collector struct {
	depth     int
	evaluator string
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, evaluator string) {
	*m = collector{
		depth:     depth,
		evaluator: evaluator,
		startTime: time.Now(),
	}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddLeaf() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		Duration:  time.Since(m.startTime),
		Nodes:     m.nodes,
		Leaves:    m.leaves,
		Cutoffs:   m.cutoffs,
		Evaluator: m.evaluator,
		Score:     score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, evaluator string) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddLeaf()                          {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) Complete(score int) SearchMetric   { return SearchMetric{Score: score} }
