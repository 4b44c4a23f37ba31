package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"order_router/internal/cache/mocks"
	db_mocks "order_router/internal/database/mocks"
	"order_router/internal/model"
)

// helperTestDecision - универсальное тестовое решение маршрутизации
var helperTestDecision = &model.Decision{
	OrderID: "test-order-123",
	Channel: model.ChannelAmazonEU,
	Carrier: model.CarrierLP,
	Tracked: false,
	Weight:  320,
	Size:    model.SizeSmall,
}

// setupHandlerAndMocks - хелпер для инициализации хендлера и моков
func setupHandlerAndMocks(t *testing.T) (*gomock.Controller, *DecisionHandler, *mocks.MockCache, *db_mocks.MockStorage) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache(ctrl)
	mockStorage := db_mocks.NewMockStorage(ctrl)
	handler := NewDecisionHandler(mockStorage, mockCache)
	return ctrl, handler, mockCache, mockStorage
}

// createTestRequest - хелпер для создания HTTP-запроса с URL-параметром
func createTestRequest(t *testing.T, orderID string) *http.Request {
	req := httptest.NewRequest("GET", "/api/order/"+orderID, nil)

	// Контекст chi для URL-параметров
	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add("orderID", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))

	return req
}

func TestDecisionHandler_GetByID_CacheHit(t *testing.T) {
	ctrl, handler, mockCache, mockStorage := setupHandlerAndMocks(t)
	defer ctrl.Finish()

	orderID := "test-order-123"
	rr := httptest.NewRecorder()
	req := createTestRequest(t, orderID)

	// Ожидаем вызов кэша
	mockCache.EXPECT().Get(gomock.Any(), orderID).Return(helperTestDecision, true)
	// Не ожидаем вызова БД
	mockStorage.EXPECT().GetDecision(gomock.Any(), gomock.Any()).Times(0)

	handler.GetByID(rr, req)

	// Проверка ответа
	assert.Equal(t, http.StatusOK, rr.Code)

	var decision model.Decision
	err := json.Unmarshal(rr.Body.Bytes(), &decision)
	assert.NoError(t, err)
	assert.Equal(t, helperTestDecision.OrderID, decision.OrderID)
	assert.Equal(t, helperTestDecision.Carrier, decision.Carrier)
}

func TestDecisionHandler_GetByID_CacheMiss_DBHit(t *testing.T) {
	ctrl, handler, mockCache, mockStorage := setupHandlerAndMocks(t)
	defer ctrl.Finish()

	orderID := "test-order-123"
	rr := httptest.NewRecorder()
	req := createTestRequest(t, orderID)

	// 1. Ожидаем промах кэша
	mockCache.EXPECT().Get(gomock.Any(), orderID).Return(nil, false)
	// 2. Ожидаем запрос к БД
	mockStorage.EXPECT().GetDecision(gomock.Any(), orderID).Return(helperTestDecision, nil)
	// 3. Ожидаем сохранение в кэш
	mockCache.EXPECT().Set(gomock.Any(), orderID, helperTestDecision).Times(1)

	handler.GetByID(rr, req)

	// Проверка ответа
	assert.Equal(t, http.StatusOK, rr.Code)

	var decision model.Decision
	err := json.Unmarshal(rr.Body.Bytes(), &decision)
	assert.NoError(t, err)
	assert.Equal(t, helperTestDecision.OrderID, decision.OrderID)
}

func TestDecisionHandler_GetByID_NotFound(t *testing.T) {
	ctrl, handler, mockCache, mockStorage := setupHandlerAndMocks(t)
	defer ctrl.Finish()

	orderID := "not-found-order"
	rr := httptest.NewRecorder()
	req := createTestRequest(t, orderID)

	// 1. Ожидаем промах кэша
	mockCache.EXPECT().Get(gomock.Any(), orderID).Return(nil, false)
	// 2. Ожидаем запрос к БД, который вернет ошибку
	mockStorage.EXPECT().GetDecision(gomock.Any(), orderID).Return(nil, errors.New("not found"))
	// 3. Не ожидаем вызова Set в кэш
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	handler.GetByID(rr, req)

	// Проверка ответа
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDecisionHandler_GetByID_NoID(t *testing.T) {
	_, handler, _, _ := setupHandlerAndMocks(t)

	// Создаем запрос без chi-контекста
	req := httptest.NewRequest("GET", "/api/order/", nil)
	rr := httptest.NewRecorder()

	handler.GetByID(rr, req)

	// Проверка ответа
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
