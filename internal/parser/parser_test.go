package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"order_router/internal/model"
)

const amazonSample = "order-item-id\torder-id\tpurchase-date\tbuyer-email\tbuyer-name\tbuyer-phone-number\tsku\tproduct-name\tquantity-purchased\tcurrency\titem-price\tshipping-price\tship-service-level\trecipient-name\tship-address-1\tship-address-2\tship-address-3\tship-city\tship-state\tship-postal-code\tship-country\tsales-channel\n" +
	"11111\t111-222\t2026-08-01\tbuyer@mail.com\tJohn Buyer\t+1 213-442-1463\t1040830\tBicycle Standard Deck\t2\tUSD\t15.99\t4.50\tStandard\tJohn Buyer\tMain st. 5\t\t\tAustin\tTX\t73301\tUS\tamazon.com\n"

const etsySample = "Order ID,Sale Date,Full Name,Street 1,Street 2,Ship City,Ship State,Ship Zipcode,Ship Country,Currency,Number of Items,SKU,Order Value,Discount Amount,Shipping\n" +
	"22222,2026-08-02,Jane Craft,Baker st. 9,,London,,NW1,United Kingdom,GBP,2,1 vnt. 1040830 + 1 vnt. T1147,20.00,2.00,3.00\n"

func TestReadOrders_Amazon(t *testing.T) {
	assertions := assert.New(t)

	orders, err := readOrders(strings.NewReader(amazonSample), model.ChannelAmazonCOM)
	assertions.NoError(err)
	assertions.Len(orders, 1)

	o := orders[0]
	assertions.Equal("11111", o.OrderID)
	assertions.Equal("111-222", o.SecondaryOrderID)
	assertions.Equal("amazon.com", o.InnerChannel)
	assertions.Equal("Bicycle Standard Deck", o.Title)
	assertions.Equal(2, o.Quantity)
	assertions.Equal(15.99, o.ItemPrice)
	assertions.Equal(4.5, o.ShippingPrice)
	assertions.Equal("US", o.ShipCountry)
	assertions.Equal([]string{"1040830"}, o.SKUs)
	assertions.Equal("001 213-442-1463", o.BuyerPhone)
}

func TestReadOrders_Etsy(t *testing.T) {
	assertions := assert.New(t)

	orders, err := readOrders(strings.NewReader(etsySample), model.ChannelEtsy)
	assertions.NoError(err)
	assertions.Len(orders, 1)

	o := orders[0]
	assertions.Equal("22222", o.OrderID)
	// Полное название страны переводится в код
	assertions.Equal("GB", o.ShipCountry)
	assertions.Equal("Jane Craft", o.RecipientName)
	assertions.Equal([]string{"1 vnt. 1040830", "1 vnt. T1147"}, o.SKUs)
	assertions.Equal(2.0, o.Discount)
	// Выгрузка Etsy не содержит названия товара
	assertions.Empty(o.Title)
}

func TestReadOrders_SchemaError(t *testing.T) {
	// Без колонки sku запуск должен быть прерван
	broken := "order-item-id\torder-id\trecipient-name\tquantity-purchased\tshipping-price\tship-country\tcurrency\n" +
		"1\t2\tName\t1\t3.00\tDE\tEUR\n"

	_, err := readOrders(strings.NewReader(broken), model.ChannelAmazonEU)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestReadOrders_BOM(t *testing.T) {
	withBOM := "\ufeff" + etsySample
	orders, err := readOrders(strings.NewReader(withBOM), model.ChannelEtsy)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestReadOrders_SloppyNumbers(t *testing.T) {
	// Мусор в числовом поле не прерывает запуск: значение 0
	sloppy := "Order ID,Sale Date,Full Name,Street 1,Street 2,Ship City,Ship State,Ship Zipcode,Ship Country,Currency,Number of Items,SKU,Order Value,Discount Amount,Shipping\n" +
		"33333,2026-08-02,Jane Craft,Baker st. 9,,London,,NW1,Germany,EUR,abc,1 vnt. 1040830,xx,,3.00\n"

	orders, err := readOrders(strings.NewReader(sloppy), model.ChannelEtsy)
	assert.NoError(t, err)
	assert.Equal(t, 0, orders[0].Quantity)
	assert.Equal(t, 0.0, orders[0].ItemPrice)
	assert.Equal(t, 3.0, orders[0].ShippingPrice)
}

func TestSplitSKU(t *testing.T) {
	assertions := assert.New(t)

	assertions.Nil(SplitSKU("", model.ChannelEtsy))
	assertions.Equal([]string{"1040830"}, SplitSKU("1040830", model.ChannelAmazonEU))
	assertions.Equal([]string{"(2 vnt.) A1", "(1 vnt.) B2"}, SplitSKU("(2 vnt.) A1 + (1 vnt.) B2", model.ChannelAmazonEU))
	// Etsy дополнительно делит по запятой
	assertions.Equal(
		[]string{"1 vnt. 1040830", "1 vnt. 1034630", "1 vnt. T1147"},
		SplitSKU("1 vnt. 1040830 + 1 vnt. 1034630,1 vnt. T1147", model.ChannelEtsy),
	)
	// Amazon запятую не делит
	assertions.Equal([]string{"A1,B2"}, SplitSKU("A1,B2", model.ChannelAmazonEU))
}

func TestCleanPhoneNumber(t *testing.T) {
	assertions := assert.New(t)

	assertions.Equal("00 90019 1 213-442-1463", CleanPhoneNumber("+1 213-442-1463 ext. 90019"))
	assertions.Equal("001 213-442-1463", CleanPhoneNumber("+1 213-442-1463"))
	assertions.Equal("861066162", CleanPhoneNumber("861066162"))
	assertions.Equal("", CleanPhoneNumber(""))
}
