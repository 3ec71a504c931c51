package library_test

import (
	"context"
	"errors"
	"testing"

	"stylus/internal/catalog"
	"stylus/internal/library"
	"stylus/internal/logging"
	"stylus/internal/match"
	"stylus/internal/testsupport"
)

func newService(t *testing.T) *library.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return library.New(store, logging.NewNop())
}

func mustAdd(t *testing.T, svc *library.Service, record *catalog.Record) *catalog.Record {
	t.Helper()
	added, err := svc.Add(context.Background(), record)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return added
}

func TestAddAssignsIDWhenMissing(t *testing.T) {
	svc := newService(t)
	record := &catalog.Record{
		Title:      "Untitled Scrape",
		ArtistName: "Unknown Artist",
		Ownership:  catalog.OwnershipWishlist,
	}
	added := mustAdd(t, svc, record)
	if added.ID == "" {
		t.Fatal("expected generated id")
	}

	fetched, err := svc.GetByID(context.Background(), added.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil || fetched.Title != "Untitled Scrape" {
		t.Fatalf("unexpected record: %+v", fetched)
	}
}

func TestAddThenSearchFindsRecord(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "OK Computer", "Radiohead"))

	records, err := svc.GetByArtist(context.Background(), "Radiohead")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Fatalf("records = %+v, want [r1]", records)
	}
}

func TestGetByArtistFiltersIndexHits(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "OK Computer", "Radiohead"))
	// Title tokens hit the index for "radiohead", but the artist validator
	// rejects the candidate.
	mustAdd(t, svc, testsupport.NewRecord("r2", "A Radiohead Tribute", "Various Artists"))

	records, err := svc.GetByArtist(context.Background(), "Radiohead")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Fatalf("records = %+v, want only r1", records)
	}
}

func TestGetByArtists(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "OK Computer", "Radiohead"))
	mustAdd(t, svc, testsupport.NewRecord("r2", "Dummy", "Portishead"))

	results, err := svc.GetByArtists(context.Background(), []string{"Radiohead", "Portishead", "Autechre"})
	if err != nil {
		t.Fatalf("GetByArtists: %v", err)
	}
	if len(results["Radiohead"]) != 1 || results["Radiohead"][0].ID != "r1" {
		t.Fatalf("Radiohead = %+v", results["Radiohead"])
	}
	if len(results["Portishead"]) != 1 || results["Portishead"][0].ID != "r2" {
		t.Fatalf("Portishead = %+v", results["Portishead"])
	}
	if len(results["Autechre"]) != 0 {
		t.Fatalf("Autechre = %+v, want empty", results["Autechre"])
	}
}

func TestGetByArtistAndTitleOrdersFullBeforePartial(t *testing.T) {
	svc := newService(t)
	// Inserted partial-first to prove ordering is by classification.
	mustAdd(t, svc, testsupport.NewRecord("partial", "Kid A Mnesia", "Radiohead"))
	mustAdd(t, svc, testsupport.NewRecord("full", "Kid A", "Radiohead"))

	matches, err := svc.GetByArtistAndTitle(context.Background(), "Radiohead", "Kid A", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len = %d, want 2", len(matches))
	}
	if matches[0].Record.ID != "full" || matches[0].Classification != match.Full {
		t.Fatalf("first match = %+v, want full", matches[0])
	}
	if matches[1].Record.ID != "partial" || matches[1].Classification != match.Partial {
		t.Fatalf("second match = %+v, want partial", matches[1])
	}
}

func TestGetByArtistAndTitleFallbackTitle(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "Amnesiac", "Radiohead"))

	matches, err := svc.GetByArtistAndTitle(context.Background(), "Radiohead", "No Such Album", "Amnesiac")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 1 || matches[0].Record.ID != "r1" || matches[0].Classification != match.Full {
		t.Fatalf("matches = %+v, want full via fallback", matches)
	}
}

func TestGetByArtistAndTitleWordInclusionFallback(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "The Best of Pink Floyd Live", "Pink Floyd"))

	// "Best Live" is neither an exact nor a word-boundary partial title,
	// but every word appears in the candidate title.
	matches, err := svc.GetByArtistAndTitle(context.Background(), "Pink Floyd", "Best Live", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 1 || matches[0].Record.ID != "r1" {
		t.Fatalf("matches = %+v, want word-inclusion hit", matches)
	}
	if matches[0].Classification != match.Partial {
		t.Fatalf("classification = %v, want partial", matches[0].Classification)
	}
}

func TestGetByArtistAndTitleRemasterPromotion(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "Abbey Road (Remastered)", "The Beatles"))

	matches, err := svc.GetByArtistAndTitle(context.Background(), "The Beatles", "Abbey Road", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 1 || matches[0].Classification != match.Full {
		t.Fatalf("matches = %+v, want full via suffix promotion", matches)
	}
}

func TestUpdateShallowMerge(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "Dummy", "Portishead"))

	rating := 9
	format := catalog.FormatVinyl
	if err := svc.Update(context.Background(), "r1", &library.RecordUpdate{
		Rating: &rating,
		Format: &format,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	record, err := svc.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if record.Rating != 9 || record.Format != catalog.FormatVinyl {
		t.Fatalf("merge lost fields: %+v", record)
	}
	if record.Title != "Dummy" || record.ArtistName != "Portishead" {
		t.Fatalf("merge clobbered untouched fields: %+v", record)
	}
}

func TestUpdateUnknownIDFails(t *testing.T) {
	svc := newService(t)
	rating := 5
	err := svc.Update(context.Background(), "missing", &library.RecordUpdate{Rating: &rating})
	if !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReindexesChangedTitle(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "Old Name", "Boards of Canada"))

	title := "Geogaddi"
	if err := svc.Update(context.Background(), "r1", &library.RecordUpdate{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	matches, err := svc.GetByArtistAndTitle(context.Background(), "Boards of Canada", "Geogaddi", "")
	if err != nil {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if len(matches) != 1 || matches[0].Classification != match.Full {
		t.Fatalf("matches = %+v, want full on new title", matches)
	}
}

func TestUpdateDiscardsRevertedRecords(t *testing.T) {
	svc := newService(t)
	record := testsupport.NewRecord("r1", "Dummy", "Portishead")
	record.Rating = 7
	mustAdd(t, svc, record)

	rating := 0
	ownership := catalog.OwnershipNotCataloged
	if err := svc.Update(context.Background(), "r1", &library.RecordUpdate{
		Rating:    &rating,
		Ownership: &ownership,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	fetched, err := svc.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched != nil {
		t.Fatalf("expected reverted record to be deleted, got %+v", fetched)
	}
	records, err := svc.GetByArtist(context.Background(), "Portishead")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("deleted record still searchable: %+v", records)
	}
}

func TestUpdateRatingBounds(t *testing.T) {
	svc := newService(t)
	record := testsupport.NewRecord("r1", "Dummy", "Portishead")
	record.Rating = 6
	mustAdd(t, svc, record)

	for _, rating := range []int{11, -1} {
		err := svc.UpdateRating(context.Background(), "r1", rating)
		if !errors.Is(err, library.ErrInvalidPayload) {
			t.Fatalf("UpdateRating(%d): expected ErrInvalidPayload, got %v", rating, err)
		}
	}

	fetched, err := svc.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Rating != 6 {
		t.Fatalf("rating mutated to %d by rejected updates", fetched.Rating)
	}

	if err := svc.UpdateRating(context.Background(), "r1", 10); err != nil {
		t.Fatalf("UpdateRating(10): %v", err)
	}
}

func TestDeleteRemovesFromStoreAndIndex(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "Dummy", "Portishead"))

	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "r1"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	records, err := svc.GetByArtist(context.Background(), "Portishead")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("deleted record still searchable: %+v", records)
	}
}

func TestReplaceAll(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("old", "Gone", "Artist"))

	err := svc.ReplaceAll(context.Background(), []*catalog.Record{
		testsupport.NewRecord("r1", "First", "Alpha"),
		testsupport.NewRecord("r2", "Second", "Beta"),
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	count, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count = %d, want 2", count)
	}

	all, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	ids := map[string]bool{}
	for _, record := range all {
		ids[record.ID] = true
	}
	if !ids["r1"] || !ids["r2"] || ids["old"] {
		t.Fatalf("unexpected contents: %v", ids)
	}

	// The rebuilt index serves the new contents.
	records, err := svc.GetByArtist(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("GetByArtist: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Fatalf("records = %+v", records)
	}
}

func TestGetByIDMap(t *testing.T) {
	svc := newService(t)
	mustAdd(t, svc, testsupport.NewRecord("r1", "First", "Alpha"))
	mustAdd(t, svc, testsupport.NewRecord("r2", "Second", "Beta"))

	byID, err := svc.GetByIDMap(context.Background(), []string{"r1", "r2", "missing"})
	if err != nil {
		t.Fatalf("GetByIDMap: %v", err)
	}
	if len(byID) != 2 || byID["r1"] == nil || byID["r2"] == nil {
		t.Fatalf("byID = %+v", byID)
	}
}

func TestInvalidPayloadsRejectedAtBoundary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, ""); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := svc.GetByIDs(ctx, nil); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("GetByIDs: %v", err)
	}
	if _, err := svc.GetByArtist(ctx, "  "); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("GetByArtist: %v", err)
	}
	if _, err := svc.GetByArtistAndTitle(ctx, "a", "", ""); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("GetByArtistAndTitle: %v", err)
	}
	if _, err := svc.Add(ctx, nil); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Update(ctx, "id", nil); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, ""); !errors.Is(err, library.ErrInvalidPayload) {
		t.Fatalf("Delete: %v", err)
	}
}
