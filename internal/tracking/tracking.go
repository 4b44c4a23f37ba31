package tracking

import (
	"log"

	"order_router/internal/config"
	"order_router/internal/metrics"
	"order_router/internal/model"
	"order_router/internal/refdata"
)

// Classify назначает заказу тип доставки. Правила применяются строго по
// порядку, первое сработавшее - окончательное:
//
//  1. доставка дороже порога канала - трекинг и принудительная тяжелая служба;
//  2. таро в Великобританию не среднего габарита - трекинг и принудительный Etonas;
//  3. дорогой заказ либо всегда трекаемый внутренний канал - трекинг,
//     служба выбирается сравнением цен;
//  4. иначе обычная доставка.
//
// Правила 1 и 2 выставляют ForcedCarrier: движок маршрутизации такие заказы
// не переоценивает.
func Classify(o *model.Order, policy config.ChannelPolicy) {
	if o.ShippingPriceEUR >= policy.TrackedCostThreshold {
		o.Tracked = true
		o.ForcedCarrier = policy.HeavyCarrier
		metrics.OrdersShortCircuited.Inc()
		log.Printf("Заказ %s: доставка %.2f EUR >= порога %.2f, принудительно %s.",
			o.OrderID, o.ShippingPriceEUR, policy.TrackedCostThreshold, policy.HeavyCarrier)
		return
	}

	if o.Category == model.CategoryTarotCards && refdata.IsUK(o.ShipCountry) && o.Size != model.SizeMedium {
		o.Tracked = true
		o.ForcedCarrier = model.CarrierEtonas
		metrics.OrdersShortCircuited.Inc()
		return
	}

	if o.TotalValueEUR > policy.HighValueThreshold || refdata.IsTrackedInnerChannel(o.InnerChannel) {
		o.Tracked = true
		return
	}

	o.Tracked = false
}
