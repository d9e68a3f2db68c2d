package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/data/redisStore"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

const dealKeyPrefix = "deal:"

var (
	ErrDealNotFound     = errors.New("deal not found")
	ErrStatusTransition = errors.New("illegal status transition")
)

type RedisDealStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDealStore(ctx context.Context) *RedisDealStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisDealStore)
	if inner == nil {
		return nil
	}
	return &RedisDealStore{
		store:  inner,
		logger: logger_i.NewLogger("DealStore"),
	}
}

func dealKey(dealId string) string {
	return dealKeyPrefix + dealId
}

func (s *RedisDealStore) CreateDeal(ctx context.Context, deal dealModel.Deal) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "dealId", deal.Id)
	log.Debug("creating deal record")

	data, err := json.Marshal(deal)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, dealKey(deal.Id), data, config.RedisDealStoreTTL)
	if err == nil {
		log.Debug("Saved deal record to Redis")
	}
	return err
}

func (s *RedisDealStore) GetDeal(ctx context.Context, dealId string) (dealModel.Deal, bool) {
	var deal dealModel.Deal
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "dealId", dealId)

	val, err := s.store.Get(ctx, dealKey(dealId))
	if s.store.IsNil(err) {
		return deal, false
	} else if err != nil {
		log.Error("Error reading deal from Redis", "error", err)
		return deal, false
	}

	if err = json.Unmarshal([]byte(val), &deal); err != nil {
		log.Error("Corrupt deal record", "error", err)
		return deal, false
	}
	return deal, true
}

// UpdateDealFields merge-patches the stored document with the dotted-path
// updates, under an optimistic transaction so concurrent writers to other
// fields of the same deal are never clobbered.
func (s *RedisDealStore) UpdateDealFields(ctx context.Context, dealId string, fields map[string]any) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "dealId", dealId)
	log.Debug("patching deal record", "fields", len(fields))

	return s.store.WatchUpdate(ctx, dealKey(dealId), config.RedisDealStoreTTL, func(current string, exists bool) (string, error) {
		if !exists {
			return "", fmt.Errorf("%w: %s", ErrDealNotFound, dealId)
		}
		next, err := applyFieldPatch([]byte(current), fields)
		if err != nil {
			return "", err
		}
		return string(next), nil
	})
}

func (s *RedisDealStore) ListDeals(ctx context.Context) ([]dealModel.Deal, error) {
	keys, err := s.store.ScanKeys(ctx, dealKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	deals := make([]dealModel.Deal, 0, len(keys))
	for _, key := range keys {
		val, err := s.store.Get(ctx, key)
		if s.store.IsNil(err) {
			continue //deleted between scan and read
		} else if err != nil {
			return nil, err
		}
		var deal dealModel.Deal
		if err := json.Unmarshal([]byte(val), &deal); err != nil {
			s.logger.Error("Skipping corrupt deal record", "key", key, "error", err)
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (s *RedisDealStore) DeleteDeal(ctx context.Context, dealId string) error {
	err := s.store.Del(ctx, dealKey(dealId))
	if err != nil {
		s.logger.Error("Error deleting deal from Redis", "dealId", dealId, "error", err)
		return err
	}
	s.logger.Debug("Deal deleted from Redis", "dealId", dealId)
	return nil
}

func TestDealStore(store *redisStore.Store) *RedisDealStore {
	return &RedisDealStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
