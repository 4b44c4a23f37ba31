package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assertions := assert.New(t)

	assertions.Equal(10.0, Round2(10.004))
	assertions.Equal(10.01, Round2(10.006))
	assertions.Equal(9.09, Round2(10.0/1.1))
	assertions.Equal(-2.35, Round2(-2.346))
	assertions.Equal(0.0, Round2(0))
}

func TestOrder_TotalValue(t *testing.T) {
	assertions := assert.New(t)

	// Amazon: товар + доставка, скидка не участвует
	amazon := &Order{Channel: ChannelAmazonEU, ItemPrice: 20, ShippingPrice: 3.5, Discount: 5}
	assertions.Equal(23.5, amazon.TotalValue())

	// Etsy: стоимость - скидка + доставка
	etsy := &Order{Channel: ChannelEtsy, ItemPrice: 20, ShippingPrice: 3.5, Discount: 5}
	assertions.Equal(18.5, etsy.TotalValue())
}

func TestSizeClass_Escalation(t *testing.T) {
	assertions := assert.New(t)

	assertions.True(SizeSmall.Rank() < SizeMedium.Rank())
	assertions.True(SizeMedium.Rank() < SizeLarge.Rank())

	// Эскалация коммутативна и не понижает класс
	assertions.Equal(SizeLarge, MaxSize(SizeSmall, SizeLarge))
	assertions.Equal(SizeLarge, MaxSize(SizeLarge, SizeSmall))
	assertions.Equal(SizeMedium, MaxSize(SizeMedium, SizeSmall))
	assertions.Equal(SizeMedium, MaxSize(SizeMedium, SizeMedium))

	next, ok := SizeSmall.Next()
	assertions.True(ok)
	assertions.Equal(SizeMedium, next)
	next, ok = SizeMedium.Next()
	assertions.True(ok)
	assertions.Equal(SizeLarge, next)
	_, ok = SizeLarge.Next()
	assertions.False(ok, "крупнее DKS класса нет")
}

func TestCategory_IsCardsCategory(t *testing.T) {
	assertions := assert.New(t)

	assertions.True(CategoryPlayingCards.IsCardsCategory())
	assertions.True(CategoryTarotCards.IsCardsCategory())
	assertions.False(CategoryBatteries.IsCardsCategory())
	assertions.False(CategoryOther.IsCardsCategory())
}

func TestValidChannel(t *testing.T) {
	assertions := assert.New(t)

	assertions.True(ValidChannel("AmazonEU"))
	assertions.True(ValidChannel("AmazonCOM"))
	assertions.True(ValidChannel("Etsy"))
	assertions.False(ValidChannel("ebay"))
	assertions.False(ValidChannel(""))
}

func TestCarrierOrder_Fixed(t *testing.T) {
	assertions := assert.New(t)

	// Порядок перебора определяет победителя при равных ценах
	assertions.Equal([]Carrier{CarrierLP, CarrierDP, CarrierNL, CarrierEtonas, CarrierDPD, CarrierUPS}, CarrierOrder)
	assertions.True(AllowedCarrier(CarrierLP))
	assertions.False(AllowedCarrier("FEDEX"))
}

func TestDecisionOf(t *testing.T) {
	assertions := assert.New(t)

	o := &Order{
		OrderID:         "A1",
		Channel:         ChannelEtsy,
		Carrier:         CarrierNL,
		Tracked:         true,
		Weight:          340,
		WeightAvailable: true,
		Size:            SizeMedium,
		Category:        CategoryDice,
		TotalValueEUR:   41.2,
	}
	d := DecisionOf(o)
	assertions.Equal("A1", d.OrderID)
	assertions.Equal(CarrierNL, d.Carrier)
	assertions.True(d.Tracked)
	assertions.Equal(340, d.Weight)
	assertions.Equal(SizeMedium, d.Size)
	assertions.False(d.RecordedAt.IsZero())
}
