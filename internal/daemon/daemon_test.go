package daemon_test

import (
	"context"
	"testing"

	"stylus/internal/daemon"
	"stylus/internal/library"
	"stylus/internal/logging"
	"stylus/internal/testsupport"
)

func newDaemon(t *testing.T) (*daemon.Daemon, *library.Service) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store := testsupport.MustOpenStore(t, cfg)
	svc := library.New(store, logging.NewNop())
	d, err := daemon.New(cfg, svc, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})
	return d, svc
}

func TestStartStop(t *testing.T) {
	d, _ := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected running status")
	}
	if status.PID <= 0 {
		t.Fatalf("unexpected pid %d", status.PID)
	}
	if status.LockPath == "" || status.DatabasePath == "" {
		t.Fatalf("incomplete status: %+v", status)
	}

	d.Stop()
	if d.Status(ctx).Running {
		t.Fatal("expected stopped status")
	}
}

func TestStartBuildsIndex(t *testing.T) {
	d, svc := newDaemon(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testsupport.NewRecord("r1", "Dummy", "Portishead")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	status := d.Status(ctx)
	if status.Records != 1 || status.Indexed != 1 {
		t.Fatalf("status = %+v, want 1 record indexed", status)
	}
}
