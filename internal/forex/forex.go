package forex

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"order_router/internal/alerts"
	"order_router/internal/config"
	"order_router/internal/metrics"
	"order_router/internal/model"
)

// supportedCurrencies - валюты, для которых ЕЦБ публикует дневной курс
// и которые встречаются в выгрузках. CDN - исторический псевдоним CAD.
var supportedCurrencies = map[string]struct{}{
	"USD": {}, "GBP": {}, "CAD": {}, "CDN": {}, "AUD": {},
	"HKD": {}, "SGD": {}, "SEK": {}, "PLN": {}, "MXN": {},
}

// ErrNoRates возвращается, когда курсов нет и скачать их не удалось.
// На первом запуске это фатально: безопасного значения по умолчанию не существует.
var ErrNoRates = errors.New("нет данных о курсах валют")

// ratesFile - формат дискового json-кэша курсов.
type ratesFile struct {
	LastUpdated string             `json:"last_updated"` // YYYY-MM-DD из фида ЕЦБ
	Currencies  map[string]float64 `json:"currencies"`
}

// Структуры для разбора дневного XML ЕЦБ.
type ecbEnvelope struct {
	XMLName xml.Name   `xml:"Envelope"`
	Cube    ecbCubeTop `xml:"Cube"`
}

type ecbCubeTop struct {
	Day ecbCubeDay `xml:"Cube"`
}

type ecbCubeDay struct {
	Time  string        `xml:"time,attr"`
	Rates []ecbCubeRate `xml:"Cube"`
}

type ecbCubeRate struct {
	Currency string  `xml:"currency,attr"`
	Rate     float64 `xml:"rate,attr"`
}

// Converter конвертирует суммы в EUR по дневным курсам ЕЦБ.
// Курс - количество иностранной валюты за 1 EUR, конвертация делением.
// Таблица загружается один раз на запуск и далее не меняется.
type Converter struct {
	rates    map[string]float64
	jsonPath string
	client   *http.Client
	url      string
	maxAge   time.Duration
	notifier *alerts.Notifier
}

// New загружает курсы из дискового кэша и при устаревании (возраст >= 2 дней)
// обновляет их из фида ЕЦБ. Отказ обновления при наличии старого кэша -
// предупреждение; отказ без кэша - ErrNoRates (вызывающая сторона завершает запуск).
func New(ctx context.Context, cfg config.ForexConfig, jsonPath string, notifier *alerts.Notifier) (*Converter, error) {
	c := &Converter{
		jsonPath: jsonPath,
		url:      cfg.ECBURL,
		maxAge:   time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		notifier: notifier,
		client: &http.Client{
			// Короткий фиксированный таймаут: недоступность фида не должна
			// задерживать пакетную обработку.
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	cached, cacheErr := c.readCache()
	if cacheErr != nil || c.stale(cached) {
		fresh, fetchErr := c.fetch(ctx)
		if fetchErr != nil {
			if cacheErr != nil {
				// Первый запуск и фид недоступен - работать не с чем.
				metrics.ForexFailures.WithLabelValues("fetch_failed").Inc()
				notifier.Send(ctx, alerts.CodeNoForexData, fetchErr.Error())
				return nil, fmt.Errorf("%w: %v", ErrNoRates, fetchErr)
			}
			// Есть старый кэш - работаем по нему, дежурный предупрежден.
			log.Printf("Не удалось обновить курсы валют: %v. Используются данные от %s.", fetchErr, cached.LastUpdated)
			metrics.ForexFailures.WithLabelValues("stale_data").Inc()
			notifier.Send(ctx, alerts.CodeForexFailure, fetchErr.Error())
			c.rates = cached.Currencies
			return c, nil
		}
		if err := c.writeCache(fresh); err != nil {
			log.Printf("Не удалось сохранить кэш курсов: %v", err)
		}
		log.Printf("Курсы валют обновлены. Дата публикации: %s", fresh.LastUpdated)
		c.rates = fresh.Currencies
		return c, nil
	}

	c.rates = cached.Currencies
	return c, nil
}

// ConvertToEUR конвертирует сумму в EUR.
// Пустая валюта - replacement-заказ площадки, сумма возвращается как есть.
// Неподдерживаемая валюта - не фатальная ошибка: оповещение и исходная сумма.
func (c *Converter) ConvertToEUR(ctx context.Context, amount float64, currency string) float64 {
	currency = strings.ToUpper(currency)
	if currency == "EUR" || currency == "" {
		return amount
	}
	if _, ok := supportedCurrencies[currency]; !ok {
		log.Printf("Попытка конвертации неподдерживаемой валюты: %s. Возвращается исходная сумма.", currency)
		metrics.ForexFailures.WithLabelValues("unsupported_currency").Inc()
		c.notifier.Send(ctx, alerts.CodeForexFailure, "неподдерживаемая валюта: "+currency)
		return amount
	}
	if currency == "CDN" {
		currency = "CAD"
	}
	rate, ok := c.rates[currency]
	if !ok || rate == 0 {
		log.Printf("В таблице курсов нет валюты %s. Возвращается исходная сумма.", currency)
		metrics.ForexFailures.WithLabelValues("unsupported_currency").Inc()
		c.notifier.Send(ctx, alerts.CodeForexFailure, "нет курса для валюты: "+currency)
		return amount
	}
	return model.Round2(amount / rate)
}

// stale сравнивает дату публикации кэша с текущей датой.
// Нечитаемая дата считается устаревшей (формат фида мог измениться).
func (c *Converter) stale(f *ratesFile) bool {
	lastUpdated, err := time.Parse("2006-01-02", f.LastUpdated)
	if err != nil {
		log.Printf("Не удалось разобрать дату кэша курсов %q: %v. Кэш считается устаревшим.", f.LastUpdated, err)
		return true
	}
	return time.Since(lastUpdated) >= c.maxAge
}

func (c *Converter) readCache() (*ratesFile, error) {
	raw, err := os.ReadFile(c.jsonPath)
	if err != nil {
		return nil, err
	}
	var f ratesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if len(f.Currencies) == 0 {
		return nil, errors.New("кэш курсов пуст")
	}
	return &f, nil
}

func (c *Converter) writeCache(f *ratesFile) error {
	raw, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.jsonPath, raw, 0o644)
}

// fetch скачивает и разбирает дневной XML ЕЦБ.
func (c *Converter) fetch(ctx context.Context) (*ratesFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос фида ЕЦБ: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("фид ЕЦБ вернул статус %d", resp.StatusCode)
	}

	var envelope ecbEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("разбор XML ЕЦБ: %w", err)
	}

	f := &ratesFile{
		LastUpdated: envelope.Cube.Day.Time,
		Currencies:  make(map[string]float64),
	}
	for _, r := range envelope.Cube.Day.Rates {
		if _, ok := supportedCurrencies[r.Currency]; ok {
			f.Currencies[r.Currency] = r.Rate
		}
	}
	if len(f.Currencies) == 0 {
		return nil, errors.New("в фиде ЕЦБ не нашлось поддерживаемых валют: изменилась структура?")
	}
	return f, nil
}

// NewFromRates создает конвертер с готовой таблицей курсов (для тестов).
func NewFromRates(rates map[string]float64, notifier *alerts.Notifier) *Converter {
	return &Converter{rates: rates, notifier: notifier}
}
