package rdbcpool

import (
	"context"
	"sync"
	"time"

	"github.com/relaydb/rdbc"
)

const defaultMaxOpenConns = 10
const defaultGetTimeout = 10 * time.Second

// State is a snapshot of a Pool's internal counters, useful for metrics and
// health checks.
type State struct {
	MaxOpen     uint64
	Connections uint64
	InUse       uint64
	Idle        uint64
	Waits       uint64
	Connecting  uint64
	Checking    uint64
}

type idleConn struct {
	guard     *ConnectionGuard
	returnedAt time.Time
}

// Pool lends out Connections wrapped in ConnectionGuard values, creating
// new ones up to a configurable limit and reusing idle ones in LIFO order.
// A caller that exhausts the pool waits on a condition variable until
// either a connection is returned or its deadline elapses.
//
// Pool is safe for concurrent use by multiple goroutines.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	manager Manager

	idle       []idleConn
	inUse      map[*ConnectionGuard]struct{}
	waiting    uint64
	total      uint64
	connecting uint64
	checking   uint64

	maxOpen         uint64
	maxIdle         uint64
	connMaxLifetime time.Duration
	getTimeout      time.Duration

	createdAt map[*ConnectionGuard]time.Time
	closed    bool
}

// New builds a Pool around manager, with a default max-open-connections
// limit and no idle-connection cap or lifetime limit. manager is typically
// a ConnectionManager, but any Manager implementation works — including a
// test double, which is how this package's tests verify
// connect counts and check-failure behavior without a real backend.
func New(manager Manager) *Pool {
	p := &Pool{
		manager:    manager,
		inUse:      make(map[*ConnectionGuard]struct{}),
		createdAt:  make(map[*ConnectionGuard]time.Time),
		maxOpen:    defaultMaxOpenConns,
		getTimeout: defaultGetTimeout,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// driverTyper is satisfied by ConnectionManager; Pool.DriverType degrades to
// "" for a Manager implementation (such as a test double) that doesn't
// expose a backend name.
type driverTyper interface{ DriverType() string }

// DriverType returns the backend name of the pool's Manager, if it exposes
// one.
func (p *Pool) DriverType() string {
	if dt, ok := p.manager.(driverTyper); ok {
		return dt.DriverType()
	}
	return ""
}

// Get borrows a connection, waiting up to the pool's configured timeout if
// none is immediately available.
func (p *Pool) Get(ctx context.Context) (*ConnectionGuard, error) {
	p.mu.Lock()
	timeout := p.getTimeout
	p.mu.Unlock()
	return p.GetTimeout(ctx, timeout)
}

// GetTimeout borrows a connection, waiting up to d for one to become
// available. d of zero means "don't wait beyond ctx's own deadline".
func (p *Pool) GetTimeout(ctx context.Context, d time.Duration) (*ConnectionGuard, error) {
	deadline := time.Now().Add(d)
	if d <= 0 {
		deadline = time.Time{}
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}

	// cond.Wait only wakes on Signal/Broadcast, so a ctx that is merely
	// cancellable (no deadline of its own) needs its own watcher to break
	// a waiter out of the wait loop on cancellation.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			p.cond.Broadcast()
		case <-watchDone:
		}
	}()

	p.mu.Lock()
	for {
		select {
		case <-ctx.Done():
			p.mu.Unlock()
			return nil, ctx.Err()
		default:
		}

		if p.closed {
			p.mu.Unlock()
			return nil, rdbc.Errorf("pool is closed")
		}

		for len(p.idle) > 0 {
			last := p.idle[len(p.idle)-1]
			p.idle = p.idle[:len(p.idle)-1]

			if p.connMaxLifetime > 0 && time.Since(p.createdAt[last.guard]) > p.connMaxLifetime {
				delete(p.createdAt, last.guard)
				p.total--
				p.mu.Unlock()
				_ = last.guard.conn.Close(ctx)
				p.mu.Lock()
				continue
			}

			p.inUse[last.guard] = struct{}{}
			p.mu.Unlock()
			return last.guard, nil
		}

		if p.total < p.maxOpen {
			p.total++
			p.connecting++
			p.mu.Unlock()

			conn, err := p.manager.Connect(ctx)

			p.mu.Lock()
			p.connecting--
			if err != nil {
				p.total--
				p.mu.Unlock()
				return nil, err
			}
			guard := &ConnectionGuard{conn: conn, manager: p.manager, pool: p}
			p.createdAt[guard] = time.Now()
			p.inUse[guard] = struct{}{}
			p.mu.Unlock()
			return guard, nil
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			p.mu.Unlock()
			return nil, rdbc.ErrTimedOut()
		}

		p.waiting++
		var timer *time.Timer
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			timer = time.AfterFunc(remaining, p.cond.Broadcast)
		}
		p.cond.Wait()
		if timer != nil {
			timer.Stop()
		}
		p.waiting--
	}
}

// release returns g's connection to the idle list, or closes it if the
// pool has since been closed, the lifetime has expired, the idle pool is
// already at its cap, or a health check on return fails.
func (p *Pool) release(ctx context.Context, g *ConnectionGuard) {
	p.mu.Lock()
	delete(p.inUse, g)

	expired := p.connMaxLifetime > 0 && time.Since(p.createdAt[g]) > p.connMaxLifetime
	atCap := p.maxIdle > 0 && uint64(len(p.idle)) >= p.maxIdle

	if p.closed || expired || atCap {
		p.discard(g)
		return
	}

	// Health-check outside the lock: no lock is held across a suspension
	// point, and Check may itself talk to the backend.
	p.checking++
	p.mu.Unlock()
	checkErr := p.manager.Check(ctx, g.conn)
	p.mu.Lock()
	p.checking--

	if checkErr != nil {
		p.discard(g)
		return
	}

	// The connection moves to a fresh guard for the idle list, so the
	// caller's guard reports "conn is drop" from now on and a second
	// Release on it is a no-op.
	idleGuard := &ConnectionGuard{conn: g.conn, manager: g.manager, pool: p}
	p.createdAt[idleGuard] = p.createdAt[g]
	delete(p.createdAt, g)
	g.conn = nil
	p.idle = append(p.idle, idleConn{guard: idleGuard, returnedAt: time.Now()})
	p.cond.Signal()
	p.mu.Unlock()
}

// discard frees g's slot and closes its connection. Called with p.mu held;
// unlocks before returning.
func (p *Pool) discard(g *ConnectionGuard) {
	delete(p.createdAt, g)
	p.total--
	conn := g.conn
	g.conn = nil
	p.cond.Signal()
	p.mu.Unlock()
	if conn != nil {
		_ = conn.Close(context.Background())
	}
}

// SetMaxOpenConns caps the total number of connections (idle + in-use) the
// pool will ever hold at once. Zero means no limit is applied on top of the
// default.
func (p *Pool) SetMaxOpenConns(n uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n == 0 {
		n = defaultMaxOpenConns
	}
	p.maxOpen = n
	p.cond.Broadcast()
}

// SetMaxIdleConns caps how many idle connections the pool retains. Lowering
// it prunes the excess idle connections immediately rather than waiting for
// them to be reused and released again.
func (p *Pool) SetMaxIdleConns(n uint64) {
	p.mu.Lock()
	p.maxIdle = n
	var toClose []*ConnectionGuard
	for n > 0 && uint64(len(p.idle)) > n {
		last := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		delete(p.createdAt, last.guard)
		p.total--
		toClose = append(toClose, last.guard)
	}
	p.mu.Unlock()

	for _, g := range toClose {
		_ = g.conn.Close(context.Background())
	}
}

// SetConnMaxLifetime caps how long a connection may live before it is
// closed instead of being reused, checked lazily on borrow and on return.
func (p *Pool) SetConnMaxLifetime(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connMaxLifetime = d
}

// SetTimeout sets the default wait applied by Get (as opposed to
// GetTimeout, which takes an explicit duration per call).
func (p *Pool) SetTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getTimeout = d
}

// State reports the pool's current counters.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		MaxOpen:     p.maxOpen,
		Connections: p.total,
		InUse:       uint64(len(p.inUse)),
		Idle:        uint64(len(p.idle)),
		Waits:       p.waiting,
		Connecting:  p.connecting,
		Checking:    p.checking,
	}
}

// Close drains and closes every idle connection and marks the pool closed,
// so any connection later returned via release is closed instead of
// reused. In-use connections are not forcibly closed; they are closed as
// they are individually returned.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.total -= uint64(len(idle))
	p.cond.Broadcast()
	p.mu.Unlock()

	var firstErr error
	for _, ic := range idle {
		if err := ic.guard.conn.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
