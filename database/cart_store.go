package database

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-service/models"
)

// changeChannel carries ChangeEvent payloads between processes, the analog
// of the browser's cross-tab storage event.
const changeChannel = "cartstore:changed"

// RedisStore persists the cart and customer records as JSON blobs in Redis,
// one pair of keys per session, refreshed with a TTL on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu      sync.RWMutex
	subs    map[int]func(ChangeEvent)
	nextSub int
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		subs:   make(map[int]func(ChangeEvent)),
	}
}

func cartKey(session string) string {
	return CartRecord + ":" + session
}

func customerKey(session string) string {
	return CustomerRecord + ":" + session
}

// Load reads both records. Missing keys and corrupt payloads yield an empty
// cart and a zero customer; only infrastructure failures are returned.
func (s *RedisStore) Load(ctx context.Context, session string) ([]models.CartLineItem, models.CustomerProfile, error) {
	var customer models.CustomerProfile

	cartData, err := s.client.Get(ctx, cartKey(session)).Result()
	if err != nil && err != redis.Nil {
		return nil, customer, err
	}
	items := decodeCart(cartData)

	customerData, err := s.client.Get(ctx, customerKey(session)).Result()
	if err != nil && err != redis.Nil {
		return nil, customer, err
	}
	customer = decodeCustomer(customerData)

	return items, customer, nil
}

// decodeCart parses a persisted cart record, falling back to an empty cart
// on malformed JSON.
func decodeCart(data string) []models.CartLineItem {
	if data == "" {
		return []models.CartLineItem{}
	}
	var items []models.CartLineItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		zap.L().Warn("Discarding corrupt cart record", zap.Error(err))
		return []models.CartLineItem{}
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items
}

// decodeCustomer parses a persisted customer record, falling back to a zero
// profile on malformed JSON.
func decodeCustomer(data string) models.CustomerProfile {
	var customer models.CustomerProfile
	if data == "" {
		return customer
	}
	if err := json.Unmarshal([]byte(data), &customer); err != nil {
		zap.L().Warn("Discarding corrupt customer record", zap.Error(err))
		return models.CustomerProfile{}
	}
	return customer
}

func (s *RedisStore) SaveCart(ctx context.Context, session string, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, cartKey(session), data, s.ttl).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeEvent{Record: CartRecord, Session: session})
	return nil
}

func (s *RedisStore) SaveCustomer(ctx context.Context, session string, customer models.CustomerProfile) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, customerKey(session), data, s.ttl).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeEvent{Record: CustomerRecord, Session: session})
	return nil
}

// Clear removes both records. The two deletes are not transactional with
// each other, matching the independent-record write model.
func (s *RedisStore) Clear(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, cartKey(session), customerKey(session)).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeEvent{Record: CartRecord, Session: session})
	s.notify(ctx, ChangeEvent{Record: CustomerRecord, Session: session})
	return nil
}

func (s *RedisStore) Subscribe(fn func(ChangeEvent)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify fans the event out to same-process subscribers and publishes it for
// other processes. Publish failures are logged, not surfaced; the write
// itself already succeeded.
func (s *RedisStore) notify(ctx context.Context, ev ChangeEvent) {
	s.fanout(ev)
	s.publish(ctx, ev)
}

func (s *RedisStore) fanout(ev ChangeEvent) {
	s.mu.RLock()
	subs := make([]func(ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (s *RedisStore) publish(ctx context.Context, ev ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.client.Publish(ctx, changeChannel, payload).Err(); err != nil {
		zap.L().Warn("Failed to publish store change", zap.Error(err),
			zap.String("record", ev.Record))
	}
}

// Watch subscribes to change events published by other processes. The
// returned channel is closed when ctx is done.
func (s *RedisStore) Watch(ctx context.Context) <-chan ChangeEvent {
	events := make(chan ChangeEvent)
	sub := s.client.Subscribe(ctx, changeChannel)

	go func() {
		defer close(events)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					zap.L().Warn("Ignoring malformed store change", zap.Error(err))
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}
