package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"order_router/internal/model"
)

func testDecision(orderID string, carrier model.Carrier) *model.Decision {
	return &model.Decision{OrderID: orderID, Carrier: carrier, Channel: model.ChannelAmazonEU}
}

func TestLRUCache_SetAndGet(t *testing.T) {
	cache := NewLRUCache(2)
	assertions := assert.New(t)
	ctx := context.Background()

	// 1. Добавить первый элемент
	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierLP))
	val, found := cache.Get(ctx, "order-1")
	assertions.True(found)
	assertions.Equal(model.CarrierLP, val.Carrier)

	// 2. Добавить второй элемент
	cache.Set(ctx, "order-2", testDecision("order-2", model.CarrierDP))
	val, found = cache.Get(ctx, "order-2")
	assertions.True(found)
	assertions.Equal(model.CarrierDP, val.Carrier)

	// 3. Проверить, что оба на месте
	val, found = cache.Get(ctx, "order-1")
	assertions.True(found)
	assertions.Equal("order-1", val.OrderID)
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache(2)
	assertions := assert.New(t)
	ctx := context.Background()

	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierLP))
	cache.Set(ctx, "order-2", testDecision("order-2", model.CarrierDP))

	// Добавить третий элемент, "order-1" (самый старый) должен вытесниться
	cache.Set(ctx, "order-3", testDecision("order-3", model.CarrierNL))

	_, found := cache.Get(ctx, "order-1")
	assertions.False(found, "order-1 should be evicted")

	// "order-2" и "order-3" должны быть на месте
	val, found := cache.Get(ctx, "order-2")
	assertions.True(found)
	assertions.Equal("order-2", val.OrderID)

	val, found = cache.Get(ctx, "order-3")
	assertions.True(found)
	assertions.Equal("order-3", val.OrderID)
}

func TestLRUCache_UsageUpdatesOrder(t *testing.T) {
	cache := NewLRUCache(2)
	assertions := assert.New(t)
	ctx := context.Background()

	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierLP))
	cache.Set(ctx, "order-2", testDecision("order-2", model.CarrierDP)) // "order-1" - старый

	// 1. Используем "order-1", он должен стать самым новым
	cache.Get(ctx, "order-1")

	// 2. Добавляем "order-3". Теперь "order-2" (как самый старый) должен вытесниться
	cache.Set(ctx, "order-3", testDecision("order-3", model.CarrierNL))

	_, found := cache.Get(ctx, "order-2")
	assertions.False(found, "order-2 should be evicted")

	_, found = cache.Get(ctx, "order-1")
	assertions.True(found)
	_, found = cache.Get(ctx, "order-3")
	assertions.True(found)
}

func TestLRUCache_UpdateValue(t *testing.T) {
	cache := NewLRUCache(2)
	assertions := assert.New(t)
	ctx := context.Background()

	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierLP))
	val, found := cache.Get(ctx, "order-1")
	assertions.True(found)
	assertions.Equal(model.CarrierLP, val.Carrier)

	// Обновляем значение
	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierDPD))
	val, found = cache.Get(ctx, "order-1")
	assertions.True(found)
	assertions.Equal(model.CarrierDPD, val.Carrier)
}

func TestLRUCache_ZeroCapacity(t *testing.T) {
	// Кэш с 0 емкостью не должен ничего хранить
	cache := NewLRUCache(0)
	assertions := assert.New(t)
	ctx := context.Background()

	cache.Set(ctx, "order-1", testDecision("order-1", model.CarrierLP))
	_, found := cache.Get(ctx, "order-1")
	assertions.False(found)
}
