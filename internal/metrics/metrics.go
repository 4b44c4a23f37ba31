package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersLoaded - Счетчик загруженных из выгрузки заказов
	OrdersLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_loaded_total",
			Help: "Количество заказов, прочитанных из файлов выгрузок",
		},
		[]string{"channel"},
	)

	// OrdersRouted - Счетчик заказов, распределенных по службам доставки
	OrdersRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_routed_total",
			Help: "Количество заказов, назначенных службе доставки",
		},
		[]string{"carrier"},
	)

	// OrdersShortCircuited - Счетчик заказов, маршрутизированных без сравнения цен
	OrdersShortCircuited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_short_circuited_total",
			Help: "Количество заказов с принудительным назначением службы",
		},
	)

	// InvalidWeightOrders - Счетчик заказов без рассчитанного веса
	InvalidWeightOrders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_invalid_weight_total",
			Help: "Количество заказов, для которых не удалось рассчитать вес",
		},
	)

	// ForexFailures - Счетчик отказов при конвертации валют
	ForexFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forex_failures_total",
			Help: "Количество отказов валютного модуля",
		},
		[]string{"reason"}, // "unsupported_currency", "fetch_failed", "stale_data"
	)

	// PricingMisses - Счетчик запросов тарифов без предложения
	PricingMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_misses_total",
			Help: "Количество запросов тарифов, не нашедших предложения",
		},
		[]string{"carrier"},
	)

	// AlertsSent - Счетчик отправленных операторских оповещений
	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_sent_total",
			Help: "Количество отправленных оповещений по кодам",
		},
		[]string{"code"},
	)

	// HttpRequestsTotal - Счетчик HTTP-запросов
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов",
		},
		[]string{"handler", "status"},
	)

	// HttpRequestDuration - Гистограмма длительности HTTP-запросов
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Длительность HTTP запросов",
		},
		[]string{"handler"},
	)

	// CacheHits - Счетчик попаданий в кэш решений
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Количество попаданий в кэш",
		},
	)

	// CacheMisses - Счетчик промахов кэша решений
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Количество промахов кэша",
		},
	)

	// CacheSize - Датчик (Gauge) текущего размера кэша
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size_items",
			Help: "Текущий размер кэша в элементах",
		},
	)

	// CacheEvictions - Счетчик вытеснений из кэша (LRU)
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Количество вытесненных из кэша элементов",
		},
	)

	// DBErrors - Счетчик ошибок базы данных
	DBErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Количество ошибок при работе с БД",
		},
		[]string{"operation"}, // "filter_new", "record_run", "get_decision", "flush_old"
	)
)

// Init используется для регистрации метрик.
// promauto регистрирует их автоматически при создании.
func Init() {
	log.Println("Prometheus метрики инициализированы.")
}
