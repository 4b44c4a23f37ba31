package refdata

import "strings"

// Страновые справочники. Код EL для Греции встречается в выгрузках наряду с GR,
// поэтому в списке присутствуют оба.

// euCountryCodes - страны ЕС: для них в экспорте LP таможенные поля не заполняются.
var euCountryCodes = map[string]struct{}{
	"BE": {}, "BG": {}, "CZ": {}, "DK": {}, "DE": {}, "EE": {}, "IE": {},
	"EL": {}, "GR": {}, "ES": {}, "FR": {}, "HR": {}, "IT": {}, "CY": {},
	"LV": {}, "LT": {}, "LU": {}, "HU": {}, "MT": {}, "NL": {}, "AT": {},
	"PL": {}, "PT": {}, "RO": {}, "SI": {}, "SK": {}, "FI": {}, "SE": {},
}

// lpCountries - направления, которые при отсутствии тарифных данных
// по умолчанию уходят в Lietuvos Pastas.
var lpCountries = map[string]struct{}{
	"IE": {}, "SE": {}, "LT": {}, "FI": {}, "EE": {}, "LV": {},
	"NO": {}, "CH": {}, "IS": {},
}

// trackedInnerChannels - внутренние каналы Amazon, заказы которых всегда трекаются.
var trackedInnerChannels = map[string]struct{}{
	"amazon.fr":     {},
	"amazon.it":     {},
	"amazon.es":     {},
	"amazon.com":    {},
	"amazon.ca":     {},
	"amazon.com.mx": {},
}

// IsEUCountry возвращает true для кода страны ЕС.
func IsEUCountry(code string) bool {
	_, ok := euCountryCodes[code]
	return ok
}

// IsLPCountry возвращает true для направлений LP по умолчанию.
func IsLPCountry(code string) bool {
	_, ok := lpCountries[code]
	return ok
}

// IsTrackedInnerChannel возвращает true для всегда трекаемых каналов.
func IsTrackedInnerChannel(inner string) bool {
	_, ok := trackedInnerChannels[inner]
	return ok
}

// IsUK возвращает true для Великобритании (в выгрузках встречаются оба кода).
func IsUK(code string) bool {
	return code == "GB" || code == "UK"
}

// countryCodes - полные названия стран (Etsy выгружает название, не код).
var countryCodes = map[string]string{
	"UNITED STATES":        "US",
	"UNITED KINGDOM":       "GB",
	"GERMANY":              "DE",
	"FRANCE":               "FR",
	"ITALY":                "IT",
	"SPAIN":                "ES",
	"NETHERLANDS":          "NL",
	"THE NETHERLANDS":      "NL",
	"BELGIUM":              "BE",
	"AUSTRIA":              "AT",
	"POLAND":               "PL",
	"PORTUGAL":             "PT",
	"IRELAND":              "IE",
	"SWEDEN":               "SE",
	"FINLAND":              "FI",
	"DENMARK":              "DK",
	"NORWAY":               "NO",
	"SWITZERLAND":          "CH",
	"ICELAND":              "IS",
	"LITHUANIA":            "LT",
	"LATVIA":               "LV",
	"ESTONIA":              "EE",
	"CZECH REPUBLIC":       "CZ",
	"CZECHIA":              "CZ",
	"SLOVAKIA":             "SK",
	"SLOVENIA":             "SI",
	"HUNGARY":              "HU",
	"ROMANIA":              "RO",
	"BULGARIA":             "BG",
	"GREECE":               "GR",
	"CROATIA":              "HR",
	"CYPRUS":               "CY",
	"MALTA":                "MT",
	"LUXEMBOURG":           "LU",
	"CANADA":               "CA",
	"AUSTRALIA":            "AU",
	"NEW ZEALAND":          "NZ",
	"JAPAN":                "JP",
	"MEXICO":               "MX",
	"BRAZIL":               "BR",
	"SINGAPORE":            "SG",
	"HONG KONG":            "HK",
	"ISRAEL":               "IL",
	"SOUTH KOREA":          "KR",
	"UNITED ARAB EMIRATES": "AE",
}

// knownCodes - множество кодов, для которых есть строки в тарифных таблицах.
var knownCodes = func() map[string]struct{} {
	set := make(map[string]struct{}, len(countryCodes))
	for _, code := range countryCodes {
		set[code] = struct{}{}
	}
	// коды, которых нет среди полных названий, но которые встречаются в выгрузках
	for _, extra := range []string{"UK", "EL", "US"} {
		set[extra] = struct{}{}
	}
	return set
}()

// CountryCode приводит страну к двухбуквенному коду. Название длиннее двух
// символов ищется в справочнике; ненайденное название - ошибка уровня запуска,
// обрабатывается вызывающей стороной.
func CountryCode(country string) (string, bool) {
	if len(country) <= 2 {
		return country, true
	}
	code, ok := countryCodes[strings.ToUpper(country)]
	return code, ok
}

// KnownCountryCode возвращает true, если код признается источником тарифов.
func KnownCountryCode(code string) bool {
	_, ok := knownCodes[code]
	return ok
}
