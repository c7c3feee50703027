package reactive

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/reactivewmc/rwmc/ac"
	"github.com/reactivewmc/rwmc/leaf"
	"github.com/reactivewmc/rwmc/rwmclog"
	"github.com/reactivewmc/rwmc/vector"
	"github.com/rs/zerolog"
)

// Sentinel errors for Reactive Circuit operations.
var (
	// ErrUnknownLeaf indicates a formula referenced a leaf id that was
	// never registered via AddLeaf.
	ErrUnknownLeaf = errors.New("reactive: unknown leaf id in formula")

	// ErrUnknownTarget indicates a lookup for a target token that has no
	// registered AC.
	ErrUnknownTarget = errors.New("reactive: unknown target token")
)

// edge is one RC edge: a memoized vector flowing from a parent AC (which
// holds a Memory node referencing edge.id) to the child AC whose value
// that memo represents.
type edge struct {
	id       int
	from, to int
	memo     vector.Vector
}

// Option configures an RC at construction.
type Option func(*config)

type config struct {
	logger  zerolog.Logger
	workers int
}

// WithLogger overrides the zerolog.Logger used for structured update/lift
// /drop event logging. The zero value logs nowhere (zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxWorkers bounds the worker pool used for intra-level parallel
// valuation during Update. n <= 0 is ignored; the default is
// runtime.GOMAXPROCS(0).
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// RC is the Reactive Circuit: an outer DAG of ACs connected by memoized
// edges, plus the Leaf table, invalidation queue and target mapping.
type RC struct {
	mu sync.RWMutex

	valueSize int
	workers   int
	log       zerolog.Logger

	nextACID   int64
	nextEdgeID int64
	nextLeafID int64

	leaves map[int]*leaf.Leaf
	acs    map[int]*ac.AC

	edges    map[int]*edge
	outgoing map[int][]int // ac id -> edge ids with edge.from == ac id
	incoming map[int][]int // ac id -> edge ids with edge.to == ac id

	targets map[string]int

	queue map[int]struct{}
}

// New creates an empty RC with the given value_size, shared by every Leaf,
// edge memo and AC output for the RC's lifetime. Panics if valueSize <= 0.
func New(valueSize int, opts ...Option) *RC {
	if valueSize <= 0 {
		panic("reactive: value_size must be positive")
	}

	cfg := config{logger: rwmclog.Nop(), workers: runtime.GOMAXPROCS(0)}
	for _, o := range opts {
		o(&cfg)
	}

	return &RC{
		valueSize: valueSize,
		workers:   cfg.workers,
		log:       cfg.logger,
		leaves:    make(map[int]*leaf.Leaf),
		acs:       make(map[int]*ac.AC),
		edges:     make(map[int]*edge),
		outgoing:  make(map[int][]int),
		incoming:  make(map[int][]int),
		targets:   make(map[string]int),
		queue:     make(map[int]struct{}),
	}
}

// FromSumProduct builds an RC, registers every leaf in leaves, and
// compiles formula into one target AC under targetToken in a single
// call. Returns ErrUnknownLeaf (wrapped) if formula references an id not
// present in leaves.
func FromSumProduct(valueSize int, leaves []LeafSpec, formula [][]int, targetToken string) (*RC, error) {
	rc := New(valueSize)
	for _, spec := range leaves {
		rc.AddLeaf(spec.Name, spec.Initial, spec.Timestamp)
	}
	if err := rc.AddSumProduct(formula, targetToken); err != nil {
		return nil, err
	}

	return rc, nil
}

// LeafSpec describes one leaf to pre-register when using FromSumProduct.
type LeafSpec struct {
	Name      string
	Initial   vector.Vector
	Timestamp float64
}

func (rc *RC) newACIDLocked() int {
	return int(atomic.AddInt64(&rc.nextACID, 1)) - 1
}

func (rc *RC) newEdgeIDLocked() int {
	return int(atomic.AddInt64(&rc.nextEdgeID, 1)) - 1
}

func (rc *RC) newLeafIDLocked() int {
	return int(atomic.AddInt64(&rc.nextLeafID, 1)) - 1
}
