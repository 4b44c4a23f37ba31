package model

import "time"

// SalesChannel - закрытый набор торговых площадок, с которых загружаются заказы.
type SalesChannel string

const (
	ChannelAmazonEU  SalesChannel = "AmazonEU"
	ChannelAmazonCOM SalesChannel = "AmazonCOM"
	ChannelEtsy      SalesChannel = "Etsy"
)

// ExpectedSalesChannels - допустимые значения аргумента канала при запуске.
var ExpectedSalesChannels = []SalesChannel{ChannelAmazonEU, ChannelAmazonCOM, ChannelEtsy}

// ValidChannel проверяет, что переданная строка - известный канал продаж.
func ValidChannel(s string) bool {
	for _, ch := range ExpectedSalesChannels {
		if string(ch) == s {
			return true
		}
	}
	return false
}

// Category - категория товара, определяется по ключевым словам в названии.
type Category string

const (
	CategoryBatteries    Category = "BATTERIES"
	CategoryPlayingCards Category = "PLAYING CARDS"
	CategoryTarotCards   Category = "TAROT CARDS"
	CategoryFootball     Category = "FOOTBALL"
	CategoryDice         Category = "DICE"
	CategoryOther        Category = "OTHER"
)

// IsCardsCategory возвращает true для карточных категорий (у них своя колонка веса упаковки).
func (c Category) IsCardsCategory() bool {
	return c == CategoryPlayingCards || c == CategoryTarotCards
}

// SizeClass - габаритный класс упаковки (VKS < MKS < DKS).
// Используется для выбора под-сегмента в таблице тарифов.
type SizeClass string

const (
	SizeSmall  SizeClass = "VKS"
	SizeMedium SizeClass = "MKS"
	SizeLarge  SizeClass = "DKS"
)

// sizeRank - порядок классов для эскалации. Больший ранг никогда не понижается.
var sizeRank = map[SizeClass]int{SizeSmall: 1, SizeMedium: 2, SizeLarge: 3}

// Rank возвращает порядковый номер класса (0 для неизвестного/пустого).
func (s SizeClass) Rank() int {
	return sizeRank[s]
}

// Next возвращает следующий по возрастанию класс и false, если крупнее уже нет.
func (s SizeClass) Next() (SizeClass, bool) {
	switch s {
	case SizeSmall:
		return SizeMedium, true
	case SizeMedium:
		return SizeLarge, true
	default:
		return "", false
	}
}

// MaxSize возвращает больший из двух классов (эскалация без понижения).
func MaxSize(a, b SizeClass) SizeClass {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Carrier - служба доставки, в экспортный файл которой попадает заказ.
type Carrier string

const (
	CarrierLP     Carrier = "LP"
	CarrierDP     Carrier = "DP"
	CarrierNL     Carrier = "NL"
	CarrierEtonas Carrier = "ETONAS"
	CarrierDPD    Carrier = "DPD"
	CarrierUPS    Carrier = "UPS"
)

// CarrierOrder - фиксированный порядок перебора служб. От него зависит
// детерминированность выбора при равных ценах: выигрывает первая встреченная.
var CarrierOrder = []Carrier{CarrierLP, CarrierDP, CarrierNL, CarrierEtonas, CarrierDPD, CarrierUPS}

// AllowedCarrier проверяет принадлежность службы к фиксированному набору.
func AllowedCarrier(c Carrier) bool {
	for _, known := range CarrierOrder {
		if known == c {
			return true
		}
	}
	return false
}

// Order - один заказ (строка выгрузки площадки) со всеми производными полями.
// Производные поля заполняются строго по стадиям конвейера:
// парсер -> валюта -> вес/категория -> трекинг -> маршрутизация.
// Поле Carrier назначается ровно один раз и после этого не пересматривается.
type Order struct {
	// Идентификация
	OrderID          string       `json:"order_id" db:"order_id" validate:"required"`
	SecondaryOrderID string       `json:"secondary_order_id" db:"secondary_order_id"`
	Channel          SalesChannel `json:"channel" db:"channel" validate:"required"`
	InnerChannel     string       `json:"inner_channel" db:"inner_channel"` // amazon.de, amazon.fr и т.д.
	PurchaseDate     string       `json:"purchase_date" db:"purchase_date"`

	// Покупатель и адрес доставки
	BuyerName     string `json:"buyer_name" db:"buyer_name"`
	BuyerEmail    string `json:"buyer_email" db:"buyer_email"`
	BuyerPhone    string `json:"buyer_phone" db:"buyer_phone"`
	RecipientName string `json:"recipient_name" db:"recipient_name" validate:"required"`
	Address1      string `json:"address1" db:"address1"`
	Address2      string `json:"address2" db:"address2"`
	Address3      string `json:"address3" db:"address3"`
	City          string `json:"city" db:"city"`
	State         string `json:"state" db:"state"`
	PostalCode    string `json:"postal_code" db:"postal_code"`
	ShipCountry   string `json:"ship_country" db:"ship_country" validate:"required,len=2"`

	// Торговые данные
	Currency      string   `json:"currency" db:"currency"` // пустая строка - replacement-заказ, не ошибка
	ItemPrice     float64  `json:"item_price" db:"item_price"`
	Discount      float64  `json:"discount" db:"discount"`
	ShippingPrice float64  `json:"shipping_price" db:"shipping_price"`
	Quantity      int      `json:"quantity" db:"quantity" validate:"gte=1"`
	SKUs          []string `json:"skus" db:"-" validate:"required,min=1"`
	Title         string   `json:"title" db:"title"`
	ServiceLevel  string   `json:"service_level" db:"service_level"`

	// Производные: валюта
	TotalValueEUR    float64 `json:"total_value_eur" db:"total_value_eur"`
	ShippingPriceEUR float64 `json:"shipping_price_eur" db:"shipping_price_eur"`

	// Производные: вес и классификация
	Category        Category  `json:"category" db:"category"`
	Brand           string    `json:"brand" db:"brand"`
	Weight          int       `json:"weight" db:"weight"`
	WeightAvailable bool      `json:"weight_available" db:"weight_available"`
	Size            SizeClass `json:"size_class" db:"size_class"`

	// Производные: трекинг и маршрутизация
	Tracked       bool                `json:"tracked" db:"tracked"`
	ForcedCarrier Carrier             `json:"forced_carrier" db:"-"` // short-circuit из классификатора
	Quotes        map[Carrier]float64 `json:"quotes" db:"-"`
	Carrier       Carrier             `json:"carrier" db:"carrier"`
}

// TotalValue возвращает сумму заказа в валюте источника.
// Etsy: стоимость - скидка + доставка; Amazon: товар + доставка.
func (o *Order) TotalValue() float64 {
	if o.Channel == ChannelEtsy {
		return Round2(o.ItemPrice - o.Discount + o.ShippingPrice)
	}
	return Round2(o.ItemPrice + o.ShippingPrice)
}

// Round2 округляет до двух знаков после запятой (цены, курсы).
func Round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

// Decision - итоговый кортеж маршрутизации, который читают экспортеры
// и отдает HTTP-API. Сохраняется в БД вместе с заказом.
type Decision struct {
	OrderID         string       `json:"order_id" db:"order_id"`
	Channel         SalesChannel `json:"channel" db:"channel"`
	Carrier         Carrier      `json:"carrier" db:"carrier"`
	Tracked         bool         `json:"tracked" db:"tracked"`
	Weight          int          `json:"weight" db:"weight"`
	WeightAvailable bool         `json:"weight_available" db:"weight_available"`
	Size            SizeClass    `json:"size_class" db:"size_class"`
	Category        Category     `json:"category" db:"category"`
	TotalValueEUR   float64      `json:"total_value_eur" db:"total_value_eur"`
	RecordedAt      time.Time    `json:"recorded_at" db:"recorded_at"`
}

// DecisionOf снимает итоговый кортеж с обработанного заказа.
func DecisionOf(o *Order) Decision {
	return Decision{
		OrderID:         o.OrderID,
		Channel:         o.Channel,
		Carrier:         o.Carrier,
		Tracked:         o.Tracked,
		Weight:          o.Weight,
		WeightAvailable: o.WeightAvailable,
		Size:            o.Size,
		Category:        o.Category,
		TotalValueEUR:   o.TotalValueEUR,
		RecordedAt:      time.Now(),
	}
}
