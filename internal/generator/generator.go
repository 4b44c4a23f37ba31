package generator

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"order_router/internal/model"
)

// Пулы значений для правдоподобных выгрузок: реальные SKU берутся из
// весовой таблицы, здесь - представительный срез ассортимента.
var (
	sampleSKUs = []string{
		"1040830", "1034630", "T1147", "2001440", "B0774",
		"T2099", "1100245", "D4410", "9000121", "B2203",
	}
	sampleTitles = []string{
		"Bicycle Standard Playing Cards Deck",
		"Llewellyn Classic Tarot Deck 78 Cards",
		"Duracell AA Alkaline Batteries 4 Pack",
		"US Games Rider Waite Tarot",
		"Varta CR2032 Lithium Battery",
		"Q-WORKSHOP Metal Dice Set",
		"NFL Team Logo Football Keychain",
		"Copag 310 Playing Cards",
	}
	sampleCountries  = []string{"DE", "FR", "IT", "ES", "GB", "NL", "BE", "SE", "FI", "AT", "PL", "US"}
	sampleCurrencies = []string{"EUR", "EUR", "EUR", "GBP", "USD", "SEK", "PLN"}
	innerChannels    = []string{"amazon.de", "amazon.fr", "amazon.it", "amazon.es", "amazon.co.uk", "amazon.com"}
)

// NewOrder создает и возвращает один полностью случайный заказ.
// Эта функция инкапсулирует всю логику генерации тестовых данных.
func NewOrder(channel model.SalesChannel) model.Order {
	// Инициализируем gofakeit, если это еще не сделано (на всякий случай)
	gofakeit.Seed(0)

	addr := gofakeit.Address()
	country := gofakeit.RandomString(sampleCountries)
	quantity := gofakeit.Number(1, 3)

	order := model.Order{
		OrderID:          uuid.New().String(),
		SecondaryOrderID: fmt.Sprintf("%03d-%07d-%07d", gofakeit.Number(100, 999), gofakeit.Number(1000000, 9999999), gofakeit.Number(1000000, 9999999)),
		Channel:          channel,
		InnerChannel:     gofakeit.RandomString(innerChannels),
		PurchaseDate:     gofakeit.PastDate().Format("2006-01-02T15:04:05-07:00"),
		BuyerName:        gofakeit.Name(),
		BuyerEmail:       gofakeit.Email(),
		BuyerPhone:       gofakeit.Phone(),
		RecipientName:    gofakeit.Name(),
		Address1:         addr.Address,
		Address2:         "",
		City:             addr.City,
		State:            addr.State,
		PostalCode:       addr.Zip,
		ShipCountry:      country,
		Currency:         gofakeit.RandomString(sampleCurrencies),
		ItemPrice:        float64(gofakeit.Number(300, 9000)) / 100,
		ShippingPrice:    float64(gofakeit.Number(0, 2500)) / 100,
		Quantity:         quantity,
		SKUs:             []string{gofakeit.RandomString(sampleSKUs)},
		Title:            gofakeit.RandomString(sampleTitles),
		ServiceLevel:     "Standard",
	}

	if channel == model.ChannelEtsy {
		// Etsy выгружает полное название страны и не содержит названия товара
		order.ShipCountry = countryName(country)
		order.Title = ""
		order.Discount = float64(gofakeit.Number(0, 500)) / 100
		// мультилистинг у Etsy: количество совпадает с числом SKU
		if quantity > 1 {
			skus := make([]string, 0, quantity)
			for i := 0; i < quantity; i++ {
				skus = append(skus, "1 vnt. "+gofakeit.RandomString(sampleSKUs))
			}
			order.SKUs = skus
		}
	}

	return order
}

// countryName возвращает полное название страны для кода (как выгружает Etsy).
func countryName(code string) string {
	names := map[string]string{
		"DE": "Germany", "FR": "France", "IT": "Italy", "ES": "Spain",
		"GB": "United Kingdom", "NL": "Netherlands", "BE": "Belgium",
		"SE": "Sweden", "FI": "Finland", "AT": "Austria", "PL": "Poland",
		"US": "United States",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}
