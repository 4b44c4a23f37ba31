package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"order_router/internal/model"
)

func TestProductCategory(t *testing.T) {
	assertions := assert.New(t)

	assertions.Equal(model.CategoryTarotCards, ProductCategory("Llewellyn Classic Tarot Deck"))
	assertions.Equal(model.CategoryPlayingCards, ProductCategory("Bicycle Standard Deck"))
	assertions.Equal(model.CategoryBatteries, ProductCategory("Duracell AA Batteries 4 Pack"))
	assertions.Equal(model.CategoryFootball, ProductCategory("NFL Team Keychain"))
	assertions.Equal(model.CategoryDice, ProductCategory("Q-WORKSHOP Metal Dice Set"))
	assertions.Equal(model.CategoryOther, ProductCategory("Wooden Chess Board"))
	assertions.Equal(model.CategoryOther, ProductCategory(""))
}

func TestProductCategory_OrderMatters(t *testing.T) {
	assertions := assert.New(t)

	// Конкретный бренд должен побеждать общую ловушку 'tarot'
	assertions.Equal("LLEWELLYN", ProductBrand("Llewellyn Tarot of the Moon"))
	// Общая ловушка срабатывает при отсутствии бренда
	assertions.Equal("OTHER CARDS BRAND", ProductBrand("Mystic Tarot Deck 78 Cards"))
	// fournier + tarot - таро, fournier без tarot - игральные карты
	assertions.Equal(model.CategoryTarotCards, ProductCategory("Fournier Tarot de Marsella"))
	assertions.Equal(model.CategoryPlayingCards, ProductCategory("Fournier 505 Deck"))
}

func TestProductBrand_Default(t *testing.T) {
	assert.Equal(t, "OTHER", ProductBrand("Wooden Chess Board"))
}

func TestOriginCountry(t *testing.T) {
	assertions := assert.New(t)

	assertions.Equal("US", OriginCountry("Bicycle Standard Deck"))
	assertions.Equal("IT", OriginCountry("Lo Scarabeo Tarot"))
	assertions.Equal("BR", OriginCountry("Copag 310"))
	assertions.Equal("CN", OriginCountry("Unknown Gadget"))
}

func TestHSCode(t *testing.T) {
	assertions := assert.New(t)

	assertions.Equal("330499", HSCode("BOMB COSM", model.CategoryOther))
	assertions.Equal("850610", HSCode("DURACELL", model.CategoryBatteries))
	assertions.Equal("950440", HSCode("BICYCLE", model.CategoryPlayingCards))
	assertions.Equal("950440", HSCode("LLEWELLYN", model.CategoryTarotCards))
	assertions.Equal("950300", HSCode("OTHER", model.CategoryOther))
}

func TestCountryCode(t *testing.T) {
	assertions := assert.New(t)

	code, ok := CountryCode("United Kingdom")
	assertions.True(ok)
	assertions.Equal("GB", code)

	code, ok = CountryCode("GERMANY")
	assertions.True(ok)
	assertions.Equal("DE", code)

	// Код короче трех символов проходит без преобразования
	code, ok = CountryCode("LT")
	assertions.True(ok)
	assertions.Equal("LT", code)

	_, ok = CountryCode("Atlantis")
	assertions.False(ok)
}

func TestCountrySets(t *testing.T) {
	assertions := assert.New(t)

	assertions.True(IsEUCountry("DE"))
	assertions.True(IsEUCountry("EL"), "греческий код EL встречается наряду с GR")
	assertions.True(IsEUCountry("GR"))
	assertions.False(IsEUCountry("GB"))
	assertions.False(IsEUCountry("US"))

	assertions.True(IsLPCountry("SE"))
	assertions.True(IsLPCountry("NO"))
	assertions.False(IsLPCountry("DE"))

	assertions.True(IsUK("GB"))
	assertions.True(IsUK("UK"))
	assertions.False(IsUK("IE"))

	assertions.True(IsTrackedInnerChannel("amazon.fr"))
	assertions.True(IsTrackedInnerChannel("amazon.com"))
	assertions.False(IsTrackedInnerChannel("amazon.de"))
}
