package assetview

import (
	"context"
	"io"
	"log"
	"sync"
)

// State is the lifecycle state of a Controller.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateRefreshing
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is a read-only copy of the controller's state for rendering.
type Snapshot struct {
	Assets []Record
	State  State
	Err    error
}

// Controller owns the authoritative in-memory asset collection for one
// screen. Every mutation re-fetches the full collection so the view never
// shows a status inconsistent with the server's last authoritative
// computation. Concurrent refreshes are not fenced: the last completed list
// determines the final state.
type Controller struct {
	remote RemoteStore
	cache  *Cache

	mu     sync.Mutex
	state  State
	assets []Record
	err    error
}

// Option configures a Controller.
type Option func(*Controller)

// WithCache persists the last successful listing to the given cache and uses
// it as the first fallback on load failure, before the demo seed.
func WithCache(c *Cache) Option {
	return func(ctrl *Controller) { ctrl.cache = c }
}

// NewController creates a controller in the Empty state.
func NewController(remote RemoteStore, opts ...Option) *Controller {
	c := &Controller{remote: remote, state: StateEmpty}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current collection and state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	assets := make([]Record, len(c.assets))
	copy(assets, c.assets)
	return Snapshot{Assets: assets, State: c.state, Err: c.err}
}

// Load performs the initial fetch. On failure the controller enters the
// Error state but keeps the screen usable by falling back to the cached
// collection, or to the built-in demo seed; the error stays visible in the
// snapshot. The returned error is the remote failure, if any.
func (c *Controller) Load(ctx context.Context) error {
	c.setState(StateLoading)

	assets, err := c.remote.ListAssets(ctx, ListFilter{})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.err = err
		c.assets = c.fallbackAssets()
		return err
	}
	c.adopt(assets)
	return nil
}

// Refresh re-fetches the full collection and replaces it atomically. On
// failure the previously held collection is kept and the error recorded.
func (c *Controller) Refresh(ctx context.Context) error {
	c.setState(StateRefreshing)

	assets, err := c.remote.ListAssets(ctx, ListFilter{})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.err = err
		return err
	}
	c.adopt(assets)
	return nil
}

// FlagMissing flags the asset missing, then refreshes. The refresh is only
// issued after the mutation completed.
func (c *Controller) FlagMissing(ctx context.Context, id string) (FlagResult, error) {
	res, err := c.remote.FlagMissing(ctx, id)
	if err != nil {
		return FlagResult{}, err
	}
	return res, c.Refresh(ctx)
}

// SendEmail sends (simulated) a recovery email, then refreshes, since the
// server may have transitioned the asset as a side effect.
func (c *Controller) SendEmail(ctx context.Context, id string, simulateRecovery bool) (SendResult, error) {
	res, err := c.remote.SendEmail(ctx, id, simulateRecovery)
	if err != nil {
		return SendResult{}, err
	}
	return res, c.Refresh(ctx)
}

// BulkImport uploads a tabular file and refreshes once the import completed.
func (c *Controller) BulkImport(ctx context.Context, filename string, contents io.Reader) (BulkImportResult, error) {
	res, err := c.remote.BulkImport(ctx, filename, contents)
	if err != nil {
		return BulkImportResult{}, err
	}
	return res, c.Refresh(ctx)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// adopt replaces the held collection after a successful list. Caller holds mu.
func (c *Controller) adopt(assets []Record) {
	c.assets = assets
	c.state = StateReady
	c.err = nil
	if c.cache != nil {
		if err := c.cache.Save(assets); err != nil {
			log.Printf("assetview: cache write failed: %v", err)
		}
	}
}

// fallbackAssets picks the collection served while the remote store is
// unreachable. Caller holds mu.
func (c *Controller) fallbackAssets() []Record {
	if c.cache != nil {
		if cached, err := c.cache.Load(); err == nil && len(cached) > 0 {
			return cached
		} else if err != nil {
			log.Printf("assetview: cache read failed: %v", err)
		}
	}
	return DemoAssets()
}
