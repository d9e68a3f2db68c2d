package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/data/redisStore"
	"github.com/vantagecap/dealdesk/internal/data/store"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

func newTestStore(t *testing.T) (*store.RedisDealStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestDealStore(redisStore.NewTestStore(client)), mr
}

func newDeal(id string) dealModel.Deal {
	return dealModel.Deal{
		Id: id,
		Metadata: dealModel.Metadata{
			Status:    dealModel.StatusUploading,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func TestRedisDealStore_Lifecycle(t *testing.T) {
	dealStore, mr := newTestStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	dealID := "d41e6c"

	t.Run("Create and Get Roundtrip", func(t *testing.T) {
		if err := dealStore.CreateDeal(ctx, newDeal(dealID)); err != nil {
			t.Fatalf("CreateDeal failed: %v", err)
		}

		got, found := dealStore.GetDeal(ctx, dealID)
		if !found {
			t.Fatal("Deal was saved but not found in Redis")
		}
		if got.Metadata.Status != dealModel.StatusUploading {
			t.Errorf("Status mismatch! Got %s, want %s", got.Metadata.Status, dealModel.StatusUploading)
		}
	})

	t.Run("Get Non-Existent Deal", func(t *testing.T) {
		_, found := dealStore.GetDeal(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Idempotent Read", func(t *testing.T) {
		first, _ := dealStore.GetDeal(ctx, dealID)
		second, _ := dealStore.GetDeal(ctx, dealID)
		if first.Metadata.Status != second.Metadata.Status || first.Id != second.Id {
			t.Error("Two reads with no intervening writes returned different data")
		}
	})

	t.Run("Delete Deal", func(t *testing.T) {
		if err := dealStore.DeleteDeal(ctx, dealID); err != nil {
			t.Fatalf("DeleteDeal failed: %v", err)
		}
		if mr.Exists("deal:" + dealID) {
			t.Error("Deal still exists in Redis after DeleteDeal call")
		}
	})
}

func TestRedisDealStore_FieldPatch(t *testing.T) {
	dealStore, _ := newTestStore(t)
	ctx := context.Background()
	dealID := "patch01"

	if err := dealStore.CreateDeal(ctx, newDeal(dealID)); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	// first writer: raw files
	err := dealStore.UpdateDealFields(ctx, dealID, map[string]any{
		"raw_files": map[string]string{"pitch_deck": "deals/patch01/pitch_deck.pdf"},
	})
	if err != nil {
		t.Fatalf("UpdateDealFields(raw_files) failed: %v", err)
	}

	// second writer: status, must not clobber raw_files
	err = dealStore.UpdateDealFields(ctx, dealID, map[string]any{
		"metadata.status": string(dealModel.StatusProcessing),
	})
	if err != nil {
		t.Fatalf("UpdateDealFields(status) failed: %v", err)
	}

	// third writer: nested extracted text
	err = dealStore.UpdateDealFields(ctx, dealID, map[string]any{
		"extracted_text.pitch_deck": dealModel.SourceText{
			Raw:     map[string]string{"1": "page one", "2": ""},
			Concise: "summary",
		},
	})
	if err != nil {
		t.Fatalf("UpdateDealFields(extracted_text) failed: %v", err)
	}

	got, found := dealStore.GetDeal(ctx, dealID)
	if !found {
		t.Fatal("deal disappeared")
	}
	if got.RawFiles["pitch_deck"] != "deals/patch01/pitch_deck.pdf" {
		t.Error("raw_files clobbered by a later field patch")
	}
	if got.Metadata.Status != dealModel.StatusProcessing {
		t.Errorf("status = %s, want processing", got.Metadata.Status)
	}
	if got.ExtractedText["pitch_deck"].Raw["1"] != "page one" {
		t.Error("extracted_text patch not persisted")
	}
	if got.ExtractedText["pitch_deck"].Raw["2"] != "" {
		t.Error("empty page text should round-trip as empty string")
	}
}

func TestRedisDealStore_StatusGuard(t *testing.T) {
	dealStore, _ := newTestStore(t)
	ctx := context.Background()

	setStatus := func(id string, status dealModel.DealStatus) error {
		return dealStore.UpdateDealFields(ctx, id, map[string]any{
			"metadata.status": string(status),
		})
	}

	t.Run("Forward transitions allowed", func(t *testing.T) {
		id := "fwd"
		if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
			t.Fatal(err)
		}
		for _, s := range []dealModel.DealStatus{dealModel.StatusProcessing, dealModel.StatusProcessed} {
			if err := setStatus(id, s); err != nil {
				t.Fatalf("forward transition to %s rejected: %v", s, err)
			}
		}
	})

	t.Run("Backward transition rejected", func(t *testing.T) {
		id := "back"
		if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
			t.Fatal(err)
		}
		if err := setStatus(id, dealModel.StatusProcessed); err != nil {
			t.Fatal(err)
		}
		err := setStatus(id, dealModel.StatusProcessing)
		if !errors.Is(err, store.ErrStatusTransition) {
			t.Errorf("expected ErrStatusTransition, got %v", err)
		}
	})

	t.Run("Error reachable from any non-terminal state", func(t *testing.T) {
		id := "err"
		if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
			t.Fatal(err)
		}
		if err := setStatus(id, dealModel.StatusError); err != nil {
			t.Fatalf("transition to error rejected: %v", err)
		}
	})

	t.Run("Error is terminal", func(t *testing.T) {
		id := "term"
		if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
			t.Fatal(err)
		}
		if err := setStatus(id, dealModel.StatusError); err != nil {
			t.Fatal(err)
		}
		err := setStatus(id, dealModel.StatusProcessing)
		if !errors.Is(err, store.ErrStatusTransition) {
			t.Errorf("expected ErrStatusTransition leaving error, got %v", err)
		}
	})

	t.Run("Patch unknown deal", func(t *testing.T) {
		err := setStatus("ghost", dealModel.StatusProcessing)
		if !errors.Is(err, store.ErrDealNotFound) {
			t.Errorf("expected ErrDealNotFound, got %v", err)
		}
	})
}

func TestRedisDealStore_List(t *testing.T) {
	dealStore, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b2", "a1", "c3"} {
		if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
			t.Fatal(err)
		}
	}

	deals, err := dealStore.ListDeals(ctx)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 3 {
		t.Fatalf("got %d deals, want 3", len(deals))
	}
	if deals[0].Id != "a1" || deals[2].Id != "c3" {
		t.Errorf("deals not sorted by id: %v %v %v", deals[0].Id, deals[1].Id, deals[2].Id)
	}
}

func TestInMemoryDealStore_SameSemantics(t *testing.T) {
	dealStore := store.InitInMemoryDealStore()
	ctx := context.Background()
	id := "mem1"

	if err := dealStore.CreateDeal(ctx, newDeal(id)); err != nil {
		t.Fatal(err)
	}
	err := dealStore.UpdateDealFields(ctx, id, map[string]any{
		"metadata.status": string(dealModel.StatusProcessed),
		"metadata.error":  "",
	})
	if err != nil {
		t.Fatalf("UpdateDealFields failed: %v", err)
	}

	err = dealStore.UpdateDealFields(ctx, id, map[string]any{
		"metadata.status": string(dealModel.StatusUploading),
	})
	if !errors.Is(err, store.ErrStatusTransition) {
		t.Errorf("in-memory store must enforce the same status guard, got %v", err)
	}

	got, found := dealStore.GetDeal(ctx, id)
	if !found || got.Metadata.Status != dealModel.StatusProcessed {
		t.Errorf("got %v found=%v, want processed", got.Metadata.Status, found)
	}
}
