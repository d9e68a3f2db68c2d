package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DealStore")

// InMemoryDealStore backs the API when Redis is offline at boot. Documents
// are kept as raw JSON so field patching goes through the exact same
// merge-patch path as the Redis store.
type InMemoryDealStore struct {
	dealMutex *sync.RWMutex
	dealMap   map[string][]byte
}

func InitInMemoryDealStore() *InMemoryDealStore {
	return &InMemoryDealStore{
		dealMutex: new(sync.RWMutex),
		dealMap:   make(map[string][]byte),
	}
}

func (store *InMemoryDealStore) CreateDeal(ctx context.Context, deal dealModel.Deal) error {
	data, err := json.Marshal(deal)
	if err != nil {
		return err
	}

	store.dealMutex.Lock()
	defer store.dealMutex.Unlock()
	store.dealMap[deal.Id] = data
	inMemLogger.Debug("Saved deal to store", "dealId", deal.Id)
	return nil
}

func (store *InMemoryDealStore) GetDeal(ctx context.Context, dealId string) (dealModel.Deal, bool) {
	store.dealMutex.RLock()
	defer store.dealMutex.RUnlock()

	var deal dealModel.Deal
	data, found := store.dealMap[dealId]
	if !found {
		return deal, false
	}
	if err := json.Unmarshal(data, &deal); err != nil {
		inMemLogger.Error("Corrupt deal record", "dealId", dealId, "error", err)
		return deal, false
	}
	return deal, true
}

func (store *InMemoryDealStore) UpdateDealFields(ctx context.Context, dealId string, fields map[string]any) error {
	store.dealMutex.Lock()
	defer store.dealMutex.Unlock()

	current, found := store.dealMap[dealId]
	if !found {
		return fmt.Errorf("%w: %s", ErrDealNotFound, dealId)
	}
	next, err := applyFieldPatch(current, fields)
	if err != nil {
		return err
	}
	store.dealMap[dealId] = next
	return nil
}

func (store *InMemoryDealStore) ListDeals(ctx context.Context) ([]dealModel.Deal, error) {
	store.dealMutex.RLock()
	defer store.dealMutex.RUnlock()

	ids := make([]string, 0, len(store.dealMap))
	for id := range store.dealMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	deals := make([]dealModel.Deal, 0, len(ids))
	for _, id := range ids {
		var deal dealModel.Deal
		if err := json.Unmarshal(store.dealMap[id], &deal); err != nil {
			inMemLogger.Error("Skipping corrupt deal record", "dealId", id, "error", err)
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (store *InMemoryDealStore) DeleteDeal(ctx context.Context, dealId string) error {
	store.dealMutex.Lock()
	defer store.dealMutex.Unlock()
	delete(store.dealMap, dealId)
	return nil
}
