package routing

import (
	"errors"
	"log"

	"order_router/internal/config"
	"order_router/internal/metrics"
	"order_router/internal/model"
	"order_router/internal/pricing"
	"order_router/internal/refdata"
)

// ErrNoNewJob - штатное завершение: после отсева дубликатов новых заказов
// не осталось, экспортировать нечего.
var ErrNoNewJob = errors.New("новых заказов нет")

// Buckets - заказы, сгруппированные по назначенной службе доставки.
// Порядок внутри корзины совпадает с порядком строк выгрузки.
type Buckets map[model.Carrier][]*model.Order

// Engine назначает заказам службу доставки: сначала сравнением цен по
// допустимым службам, при невозможности - запасным каскадом.
// Служба назначается каждому заказу ровно один раз.
type Engine struct {
	book       *pricing.Book
	policy     config.ChannelPolicy
	skipEtonas bool
}

// New создает движок маршрутизации для одного запуска.
func New(book *pricing.Book, policy config.ChannelPolicy, skipEtonas bool) *Engine {
	return &Engine{book: book, policy: policy, skipEtonas: skipEtonas}
}

// RouteAll маршрутизирует все заказы и раскладывает их по корзинам служб.
// Пустой вход - ErrNoNewJob.
func (e *Engine) RouteAll(orders []*model.Order) (Buckets, error) {
	if len(orders) == 0 {
		return nil, ErrNoNewJob
	}
	buckets := make(Buckets)
	for _, o := range orders {
		e.Route(o)
		buckets[o.Carrier] = append(buckets[o.Carrier], o)
	}
	return buckets, nil
}

// Route назначает службу одному заказу.
func (e *Engine) Route(o *model.Order) {
	if o.ForcedCarrier != "" {
		assign(o, o.ForcedCarrier)
		return
	}
	// Без веса цену не посчитать - сразу запасной каскад
	if !o.WeightAvailable {
		e.fallback(o)
		return
	}

	o.Quotes = make(map[model.Carrier]float64)
	for _, carrier := range e.eligible(o) {
		price, err := e.book.Offer(o, carrier)
		if err != nil {
			metrics.PricingMisses.WithLabelValues(string(carrier)).Inc()
			continue
		}
		o.Quotes[carrier] = price
	}

	best, ok := cheapest(o.Quotes)
	if !ok {
		e.fallback(o)
		return
	}
	assign(o, best)
}

// eligible возвращает службы, допустимые для заказа, в фиксированном порядке.
// Курьерские службы (DPD, UPS) возят только трекинговые заказы; батарейки
// принимают только LP и NL; Etonas не участвует в сравнении цен по
// Великобритании и при флаге пропуска.
func (e *Engine) eligible(o *model.Order) []model.Carrier {
	var carriers []model.Carrier
	for _, c := range model.CarrierOrder {
		if o.Category == model.CategoryBatteries && c != model.CarrierLP && c != model.CarrierNL {
			continue
		}
		if c == model.CarrierEtonas && (e.skipEtonas || refdata.IsUK(o.ShipCountry)) {
			continue
		}
		if !o.Tracked && (c == model.CarrierDPD || c == model.CarrierUPS) {
			continue
		}
		carriers = append(carriers, c)
	}
	return carriers
}

// cheapest выбирает службу со строго минимальной ценой. При равенстве цен
// выигрывает первая по фиксированному порядку перебора.
func cheapest(quotes map[model.Carrier]float64) (model.Carrier, bool) {
	var best model.Carrier
	found := false
	for _, c := range model.CarrierOrder {
		price, ok := quotes[c]
		if !ok {
			continue
		}
		if !found || price < quotes[best] {
			best = c
			found = true
		}
	}
	return best, found
}

// fallback назначает службу заказу, для которого сравнение цен невозможно.
// Каскад перебирается сверху вниз и всегда что-то возвращает: заказ без
// службы - потерянный заказ.
func (e *Engine) fallback(o *model.Order) {
	switch {
	case o.Category == model.CategoryBatteries || refdata.IsLPCountry(o.ShipCountry):
		assign(o, model.CarrierLP)
	case refdata.IsUK(o.ShipCountry):
		// Великобритания разбирается на страновом шаге: флаг пропуска
		// меняет службу, но не пропускает заказ к стоимостной ветке
		if e.skipEtonas {
			assign(o, model.CarrierDP)
		} else {
			assign(o, model.CarrierEtonas)
		}
	case o.ShippingPriceEUR >= e.policy.TrackedCostThreshold:
		assign(o, e.policy.HeavyCarrier)
	default:
		assign(o, model.CarrierDP)
	}
	log.Printf("Заказ %s: тарифа нет, запасной каскад выбрал %s.", o.OrderID, o.Carrier)
}

func assign(o *model.Order, carrier model.Carrier) {
	o.Carrier = carrier
	metrics.OrdersRouted.WithLabelValues(string(carrier)).Inc()
}
