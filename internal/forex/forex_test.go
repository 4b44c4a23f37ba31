package forex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"order_router/internal/alerts"
	"order_router/internal/config"
)

const ecbSampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2026-08-28">
			<Cube currency="USD" rate="1.0842"/>
			<Cube currency="JPY" rate="162.13"/>
			<Cube currency="GBP" rate="0.8554"/>
			<Cube currency="CAD" rate="1.4712"/>
			<Cube currency="SEK" rate="11.2041"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func testNotifier() *alerts.Notifier {
	return alerts.New(config.KafkaConfig{Enabled: false}, "test")
}

func TestConvertToEUR(t *testing.T) {
	assertions := assert.New(t)
	ctx := context.Background()

	c := NewFromRates(map[string]float64{"USD": 1.10, "CAD": 1.50, "GBP": 0.85}, testNotifier())

	// Конвертация делением с округлением до двух знаков
	assertions.Equal(10.0, c.ConvertToEUR(ctx, 11, "USD"))
	assertions.Equal(9.09, c.ConvertToEUR(ctx, 10, "USD"))

	// EUR и пустая валюта (replacement-заказ) проходят как есть
	assertions.Equal(12.34, c.ConvertToEUR(ctx, 12.34, "EUR"))
	assertions.Equal(12.34, c.ConvertToEUR(ctx, 12.34, ""))

	// CDN - исторический псевдоним CAD
	assertions.Equal(10.0, c.ConvertToEUR(ctx, 15, "CDN"))

	// Нижний регистр валюты не мешает
	assertions.Equal(10.0, c.ConvertToEUR(ctx, 11, "usd"))
}

func TestConvertToEUR_Unsupported(t *testing.T) {
	ctx := context.Background()
	c := NewFromRates(map[string]float64{"USD": 1.10}, testNotifier())

	// Неподдерживаемая валюта не фатальна: возвращается исходная сумма
	assert.Equal(t, 500.0, c.ConvertToEUR(ctx, 500, "JPY"))

	// Поддерживаемая валюта без курса в таблице - то же поведение
	assert.Equal(t, 500.0, c.ConvertToEUR(ctx, 500, "GBP"))
}

func TestFetch_ParsesECBFeed(t *testing.T) {
	assertions := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ecbSampleXML))
	}))
	defer srv.Close()

	c := &Converter{url: srv.URL, client: srv.Client()}
	rates, err := c.fetch(context.Background())
	assertions.NoError(err)
	assertions.Equal("2026-08-28", rates.LastUpdated)
	assertions.Equal(1.0842, rates.Currencies["USD"])
	assertions.Equal(0.8554, rates.Currencies["GBP"])
	// JPY не поддерживается и в кэш не попадает
	assertions.NotContains(rates.Currencies, "JPY")
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Converter{url: srv.URL, client: srv.Client()}
	_, err := c.fetch(context.Background())
	assert.Error(t, err)
}

func TestStale(t *testing.T) {
	assertions := assert.New(t)
	c := &Converter{maxAge: 48 * time.Hour}

	fresh := &ratesFile{LastUpdated: time.Now().Format("2006-01-02")}
	assertions.False(c.stale(fresh))

	old := &ratesFile{LastUpdated: time.Now().AddDate(0, 0, -3).Format("2006-01-02")}
	assertions.True(c.stale(old))

	// Нечитаемая дата считается устаревшей
	broken := &ratesFile{LastUpdated: "28-08-2026"}
	assertions.True(c.stale(broken))
}

func TestNew_FirstRunWithoutFeed(t *testing.T) {
	// Первый запуск без кэша и без фида - работать не с чем
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := config.ForexConfig{ECBURL: srv.URL, TimeoutSeconds: 1, MaxAgeDays: 2}
	_, err := New(context.Background(), cfg, t.TempDir()+"/fx.json", testNotifier())
	assert.ErrorIs(t, err, ErrNoRates)
}
