package parser

import "order_router/internal/model"

// ProxyKeys - соответствие внутренних имен полей заголовкам конкретной площадки.
// Внутренние имена совпадают с заголовками Amazon; для Etsy таблица переводит их
// в заголовки ее выгрузки.
type ProxyKeys map[string]string

// amazonKeys - выгрузка Amazon (TSV): внутренние имена равны внешним.
// order-id уникален на строку корзины (order-item-id), полный номер заказа -
// вторичный идентификатор.
var amazonKeys = ProxyKeys{
	"order-id":           "order-item-id",
	"secondary-order-id": "order-id",
	"purchase-date":      "purchase-date",
	"buyer-email":        "buyer-email",
	"buyer-name":         "buyer-name",
	"buyer-phone-number": "buyer-phone-number",
	"sku":                "sku",
	"title":              "product-name",
	"quantity-purchased": "quantity-purchased",
	"currency":           "currency",
	"item-price":         "item-price",
	"shipping-price":     "shipping-price",
	"ship-service-level": "ship-service-level",
	"recipient-name":     "recipient-name",
	"ship-address-1":     "ship-address-1",
	"ship-address-2":     "ship-address-2",
	"ship-address-3":     "ship-address-3",
	"ship-city":          "ship-city",
	"ship-state":         "ship-state",
	"ship-postal-code":   "ship-postal-code",
	"ship-country":       "ship-country",
	"sales-channel":      "sales-channel",
}

// etsyKeys - выгрузка Etsy (CSV с заголовками в свободной форме).
var etsyKeys = ProxyKeys{
	"order-id":           "Order ID",
	"purchase-date":      "Sale Date",
	"recipient-name":     "Full Name",
	"buyer-name":         "Full Name",
	"ship-address-1":     "Street 1",
	"ship-address-2":     "Street 2",
	"ship-city":          "Ship City",
	"ship-state":         "Ship State",
	"ship-postal-code":   "Ship Zipcode",
	"ship-country":       "Ship Country",
	"currency":           "Currency",
	"quantity-purchased": "Number of Items",
	"sku":                "SKU",
	"item-price":         "Order Value",
	"discount":           "Discount Amount",
	"shipping-price":     "Shipping",
}

// KeysFor возвращает таблицу заголовков для канала продаж.
func KeysFor(ch model.SalesChannel) ProxyKeys {
	if ch == model.ChannelEtsy {
		return etsyKeys
	}
	return amazonKeys
}

// requiredKeys - поля, отсутствие которых в заголовке выгрузки означает
// поломку схемы на стороне площадки (фатально для всего запуска).
var requiredKeys = []string{
	"order-id",
	"recipient-name",
	"sku",
	"quantity-purchased",
	"shipping-price",
	"ship-country",
	"currency",
}
