package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"order_router/internal/cache"
	"order_router/internal/database"
	"order_router/internal/metrics"
)

// DecisionHandler обрабатывает HTTP-запросы о решениях маршрутизации.
type DecisionHandler struct {
	storage database.Storage // Используем интерфейс
	cache   cache.Cache      // Используем интерфейс
}

// NewDecisionHandler создает новый экземпляр DecisionHandler.
func NewDecisionHandler(storage database.Storage, cache cache.Cache) *DecisionHandler {
	return &DecisionHandler{storage: storage, cache: cache}
}

// GetByID ищет решение по номеру заказа сначала в кэше, затем в БД.
func (h *DecisionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	// Метрики и трассировка
	handlerName := "GetByID"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration() // Замеряем длительность запроса

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		metrics.HttpRequestsTotal.WithLabelValues(handlerName, "400").Inc()
		http.Error(w, "Номер заказа не указан", http.StatusBadRequest)
		return
	}

	// Поиск в кэше. Передаем контекст (r.Context()) для трейсинга.
	if decision, found := h.cache.Get(r.Context(), orderID); found {
		log.Printf("КЭШ ХИТ: %s", orderID)
		metrics.CacheHits.Inc()
		metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
		respondWithJSON(w, http.StatusOK, decision)
		return
	}

	// Поиск в БД
	log.Printf("КЭШ ПРОМАХ: %s. Запрос к БД.", orderID)
	metrics.CacheMisses.Inc()

	// Передаем контекст (r.Context()) для трейсинга.
	decision, err := h.storage.GetDecision(r.Context(), orderID)
	if err != nil {
		log.Printf("Ошибка получения решения из БД: %v", err)
		metrics.HttpRequestsTotal.WithLabelValues(handlerName, "404").Inc()
		http.Error(w, "Заказ не найден", http.StatusNotFound)
		return
	}

	// Сохранение в кэш. Передаем контекст.
	h.cache.Set(r.Context(), orderID, decision)
	log.Printf("Решение по заказу %s добавлено в кэш.", orderID)

	metrics.HttpRequestsTotal.WithLabelValues(handlerName, "200").Inc()
	respondWithJSON(w, http.StatusOK, decision)
}

// respondWithJSON вспомогательная функция для отправки JSON-ответов.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
