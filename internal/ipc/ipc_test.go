package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stylus/internal/catalog"
	"stylus/internal/daemon"
	"stylus/internal/ipc"
	"stylus/internal/library"
	"stylus/internal/logging"
	"stylus/internal/match"
	"stylus/internal/testsupport"
)

func TestIPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	svc := library.New(store, logger)
	d, err := daemon.New(cfg, svc, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	socket := filepath.Join(cfg.Paths.LogDir, "stylusd.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running || status.PID <= 0 {
		t.Fatalf("unexpected status: %+v", status)
	}

	added, err := client.Add(testsupport.NewRecord("", "OK Computer", "Radiohead"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated id")
	}

	fetched, err := client.GetByID(added.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil || fetched.Title != "OK Computer" {
		t.Fatalf("unexpected record: %+v", fetched)
	}

	if _, err := client.GetByID(""); err == nil {
		t.Fatal("expected envelope error for empty id")
	}

	records, err := client.GetByArtist("Radiohead")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 1 || records[0].ID != added.ID {
		t.Fatalf("records = %+v", records)
	}

	matches, err := client.GetByArtistAndTitle("Radiohead", "OK Computer", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 1 || matches[0].Classification != match.Full {
		t.Fatalf("matches = %+v", matches)
	}

	matchesByID, err := client.GetByArtistAndTitleMap("Radiohead", "OK Computer", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitleMap: %v", err)
	}
	if len(matchesByID) != 1 || matchesByID[added.ID].Classification != match.Full {
		t.Fatalf("matchesByID = %+v", matchesByID)
	}

	if err := client.UpdateRating(added.ID, 9); err != nil {
		t.Fatalf("UpdateRating: %v", err)
	}
	if err := client.UpdateRating(added.ID, 11); err == nil {
		t.Fatal("expected rating bound error")
	}

	title := "OK Computer OKNOTOK"
	if err := client.Update(added.ID, &library.RecordUpdate{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	fetched, err = client.GetByID(added.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if fetched.Title != title || fetched.Rating != 9 {
		t.Fatalf("update lost fields: %+v", fetched)
	}

	count, err := client.SetAll([]*catalog.Record{
		testsupport.NewRecord("r1", "Dummy", "Portishead"),
		testsupport.NewRecord("r2", "Third", "Portishead"),
	})
	if err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	if count != 2 {
		t.Fatalf("SetAll count = %d, want 2", count)
	}

	asArray, err := client.GetByIDs([]string{"r1", "r2", "missing"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(asArray) != 2 || asArray[0].ID != "r1" || asArray[1].ID != "r2" {
		t.Fatalf("asArray = %+v", asArray)
	}

	byID, err := client.GetByIDMap([]string{"r1", "r2", "missing"})
	if err != nil {
		t.Fatalf("GetByIDMap: %v", err)
	}
	if len(byID) != 2 || byID["r1"] == nil || byID["r2"] == nil {
		t.Fatalf("byID = %+v", byID)
	}

	all, err := client.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAll = %+v", all)
	}

	grouped, err := client.GetByArtists([]string{"Portishead", "Radiohead"})
	if err != nil {
		t.Fatalf("GetByArtists: %v", err)
	}
	if len(grouped["Portishead"]) != 2 || len(grouped["Radiohead"]) != 0 {
		t.Fatalf("grouped = %+v", grouped)
	}

	if err := client.Delete("r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := client.Delete("r1"); err == nil {
		t.Fatal("expected delete of unknown id to fail")
	}

	total, err := client.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 1 {
		t.Fatalf("Count = %d, want 1", total)
	}
}
