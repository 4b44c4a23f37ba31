package refdata

import (
	"strings"

	"order_router/internal/model"
)

// Criteria - одно правило сопоставления названия товара с брендом и категорией.
// Срабатывает, если в названии (в нижнем регистре) встречаются оба ключевых
// слова (пустое второе слово совпадает всегда).
type Criteria struct {
	Kw1      string
	Kw2      string
	Brand    string
	Category model.Category
}

// CategoryCriterias - упорядоченный список правил, первое совпадение выигрывает.
// Порядок важен: конкретные бренды стоят раньше общих слов-ловушек
// ('oracle', 'tarot', 'cards', 'batt'), которые сознательно размещены в конце
// своих групп.
var CategoryCriterias = []Criteria{
	{"llewellyn", "", "LLEWELLYN", model.CategoryTarotCards},
	{"lo scarabeo", "", "LO SCARABEO", model.CategoryTarotCards},
	{"agm", "cards", "AGM", model.CategoryTarotCards},
	{"agm", "karten", "AGM", model.CategoryTarotCards},
	{"solarus", "", "SOLARUS", model.CategoryTarotCards},
	{"animal dreaming", "", "ANIMAL DREAMING", model.CategoryTarotCards},
	{"findhorn", "", "FINDHORN PRESS", model.CategoryTarotCards},
	{"cico", "", "CICO BOOKS", model.CategoryTarotCards},
	{"bear", "company", "BEAR & COMPANY", model.CategoryTarotCards},
	{"tarcher", "", "TARCHER", model.CategoryTarotCards},
	{"world tree", "", "WORLD TREE PRESS", model.CategoryTarotCards},
	{"earth dancer", "", "EARTH DANCER", model.CategoryTarotCards},
	{"inner traditions", "", "INNER TRADITIONS", model.CategoryTarotCards},
	{"harper", "", "HARPER ONE", model.CategoryTarotCards},
	{"touchstone", "", "TOUCHSTONE", model.CategoryTarotCards},
	{"destiny", "", "DESTINY", model.CategoryTarotCards},
	{"rockpool", "", "ROCKPOOL", model.CategoryTarotCards},
	{"music design", "", "MUSIC DESIGN", model.CategoryTarotCards},
	{"adams media", "", "ADAMS MEDIA", model.CategoryTarotCards},
	{"welbeck", "", "WELLBECK", model.CategoryTarotCards},
	{"beyond words", "", "BEYOND WORDS", model.CategoryTarotCards},
	{"us games", "", "US GAMES", model.CategoryTarotCards},
	{"blue angel", "", "BLUE ANGELS", model.CategoryTarotCards},
	{"schiffer", "", "SCHIFFER", model.CategoryTarotCards},
	{"fournier", "tarot", "FOURNIER", model.CategoryTarotCards},
	{"copag", "casino", "COPAG", model.CategoryTarotCards},
	{"angel", "card", "OTHER CARDS BRAND", model.CategoryTarotCards},
	{"oracle", "", "OTHER CARDS BRAND", model.CategoryTarotCards},
	{"tarot", "", "OTHER CARDS BRAND", model.CategoryTarotCards}, // общая ловушка для таро

	{"copag", "", "COPAG", model.CategoryPlayingCards},
	{"ellusionist", "", "ELLUSIONIST", model.CategoryPlayingCards},
	{"cartamundi", "", "CARTAMUNDI", model.CategoryPlayingCards},
	{"fournier", "", "BICYCLE", model.CategoryPlayingCards},
	{"bicycle", "", "BICYCLE", model.CategoryPlayingCards},
	{"aviator", "", "BICYCLE", model.CategoryPlayingCards},
	{"bee", "deck", "BICYCLE", model.CategoryPlayingCards},
	{"theory", "", "THEORY11", model.CategoryPlayingCards},
	{"maverick", "", "BICYCLE", model.CategoryPlayingCards},
	{"streamline", "", "BICYCLE", model.CategoryPlayingCards},
	{"hoyle", "", "BICYCLE", model.CategoryPlayingCards},
	{"tally", "", "BICYCLE", model.CategoryPlayingCards},
	{"art of play", "", "ART OF PLAY", model.CategoryPlayingCards},
	{"cartes", "", "OTHER CARDS BRAND", model.CategoryPlayingCards},
	{"cards", "", "OTHER CARDS BRAND", model.CategoryPlayingCards}, // общая ловушка для карт

	{"energizer", "", "ENERGIZER", model.CategoryBatteries},
	{"duracell", "", "DURACELL", model.CategoryBatteries},
	{"varta", "", "VARTA", model.CategoryBatteries},
	{"rayovac", "", "RAYOVAC", model.CategoryBatteries},
	{"renata", "", "RENATA", model.CategoryBatteries},
	{"maxell", "", "MAXELL", model.CategoryBatteries},
	{"murata", "", "SONY MURATA", model.CategoryBatteries},
	{"sony", "", "SONY", model.CategoryBatteries},
	{"vinnic", "", "VINNIC", model.CategoryBatteries},
	{"siemens", "", "SIEMENS", model.CategoryBatteries},
	{"gp", "batt", "GP", model.CategoryBatteries},
	{"gp", "recyko", "GP", model.CategoryBatteries},
	{"everactive", "", "EVERACTIVE", model.CategoryBatteries},
	{"eneloop", "", "P ENELOOP", model.CategoryBatteries},
	{"panasonic", "", "PANASONIC", model.CategoryBatteries},
	{"procell", "", "PROCELL", model.CategoryBatteries},
	{"xtar", "batt", "XTAR", model.CategoryBatteries},
	{"samsung", "", "LI-ION", model.CategoryBatteries},
	{"sanyo", "", "LI-ION", model.CategoryBatteries},
	{"eve", "", "LI-ION", model.CategoryBatteries},
	{"kodak", "", "KODAK", model.CategoryBatteries},
	{"saft", "", "LI-ION", model.CategoryBatteries},
	{"li-ion", "", "LI-ION", model.CategoryBatteries},
	{"camelion", "", "CAMELION", model.CategoryBatteries},
	{"philips", "", "PHILIPS", model.CategoryBatteries},
	{"pila", "", "ZBATTERY BRAND", model.CategoryBatteries},
	{"batt", "", "ZBATTERY BRAND", model.CategoryBatteries}, // общая ловушка для батареек

	{"football", "", "FOOTBOOL", model.CategoryFootball},
	{"fußball", "", "FOOTBOOL", model.CategoryFootball},
	{"nfl", "", "FOOTBOOL", model.CategoryFootball},
	{"nba", "", "FOOTBOOL", model.CategoryFootball},
	{"basketball", "", "FOOTBOOL", model.CategoryFootball},
	{"bomb cosm", "", "BOMB COSM", model.CategoryOther},
	{"baff", "", "GELLI BAFF", model.CategoryOther},
	{"injinji", "", "INJINJI", model.CategoryOther},
	{"q-workshop", "", "Q-WORKSHOP", model.CategoryDice},
}

// originCriteria - правила определения страны происхождения по названию.
type originCriteria struct {
	kw1, kw2, country string
}

var originCriterias = []originCriteria{
	{"copag", "", "BR"},
	{"ellusionist", "", "BE"},
	{"cartamundi", "", "BE"},
	{"fournier", "", "ES"},
	{"bicycle", "", "US"},
	{"aviator", "", "US"},
	{"bee", "deck", "US"},
	{"theory", "", "US"},
	{"lo scarabeo", "", "IT"},
	{"agm", "cards", "BE"},
	{"agm", "karten", "BE"},
	{"bomb cosm", "", "UK"},
}

func matches(title, kw1, kw2 string) bool {
	return strings.Contains(title, kw1) && strings.Contains(title, kw2)
}

// ProductCategory возвращает категорию по названию товара, OTHER по умолчанию.
func ProductCategory(title string) model.Category {
	lower := strings.ToLower(title)
	for _, c := range CategoryCriterias {
		if matches(lower, c.Kw1, c.Kw2) {
			return c.Category
		}
	}
	return model.CategoryOther
}

// ProductBrand возвращает бренд по названию товара, OTHER по умолчанию.
func ProductBrand(title string) string {
	lower := strings.ToLower(title)
	for _, c := range CategoryCriterias {
		if matches(lower, c.Kw1, c.Kw2) {
			return c.Brand
		}
	}
	return "OTHER"
}

// OriginCountry возвращает страну происхождения товара, CN по умолчанию.
func OriginCountry(title string) string {
	lower := strings.ToLower(title)
	for _, c := range originCriterias {
		if matches(lower, c.kw1, c.kw2) {
			return c.country
		}
	}
	return "CN"
}

// HSCode возвращает таможенный код ТН ВЭД по бренду и категории.
func HSCode(brand string, category model.Category) string {
	if brand == "BOMB COSM" {
		return "330499"
	}
	switch category {
	case model.CategoryBatteries:
		return "850610"
	case model.CategoryPlayingCards, model.CategoryTarotCards:
		return "950440"
	default:
		return "950300"
	}
}
