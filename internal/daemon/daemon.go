package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"stylus/internal/config"
	"stylus/internal/library"
	"stylus/internal/logging"
)

// Daemon owns the stylus process lifecycle and enforces single-instance
// execution via a lock file.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	library *library.Service
	logPath string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	mu        sync.Mutex
	startedAt time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	StartedAt    time.Time
	Uptime       time.Duration
	LockPath     string
	DatabasePath string
	SocketPath   string
	Records      int
	Indexed      int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, svc *library.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("daemon requires config and library service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "stylusd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		library:  svc,
		logPath:  filepath.Join(cfg.Paths.LogDir, "stylus.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and builds the search index so the first
// request does not pay the rebuild cost.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another stylus daemon instance is already running")
	}

	if err := d.library.EnsureReady(ctx); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("build search index: %w", err)
	}

	d.mu.Lock()
	d.startedAt = time.Now()
	d.mu.Unlock()
	d.running.Store(true)
	d.logger.Info("stylus daemon started",
		logging.String("lock", d.lockPath),
		logging.Int("records", d.library.IndexLen()))
	return nil
}

// Stop releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("stylus daemon stopped")
}

// Close stops the daemon. The catalog store is owned by the caller that
// opened it and is closed there.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Library exposes the record service for IPC handlers.
func (d *Daemon) Library() *library.Service {
	return d.library
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// LockPath returns the path to the single-instance lock file.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Status returns a snapshot of daemon runtime state.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockPath:     d.lockPath,
		DatabasePath: d.cfg.DatabasePath(),
		SocketPath:   d.cfg.Paths.SocketPath,
		Indexed:      d.library.IndexLen(),
	}
	d.mu.Lock()
	status.StartedAt = d.startedAt
	d.mu.Unlock()
	if status.Running && !status.StartedAt.IsZero() {
		status.Uptime = time.Since(status.StartedAt)
	}
	if count, err := d.library.Count(ctx); err == nil {
		status.Records = count
	} else {
		d.logger.Warn("count records for status", logging.Error(err))
	}
	return status
}
