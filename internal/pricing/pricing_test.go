package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"order_router/internal/model"
)

// untrackedCSV - тарифы обычной доставки: четыре службы, по две весовые
// ступени в минимальном габарите.
const untrackedCSV = `,LP,,DP,,NL,,ETONAS,
,,,,,,,,
,500,2000,500,2000,500,2000,500,2000
DE,3.00,5.00,3.00,6.00,4.50,6.50,3.50,5.50
GB,3.20,5.20,3.40,5.60,4.10,6.60,3.00,5.00
SE,2.50,4.50,2.80,4.80,,,,
US,4.00,7.00,3.80,6.80,5.00,8.00,4.20,7.20
`

// trackedCSV - тарифы трекинговой доставки, включая курьерские службы.
const trackedCSV = `,LP,,DP,,DPD,,UPS,
,,,,,,,,
,500,2000,500,2000,500,2000,500,2000
DE,4.00,6.00,4.20,6.20,8.00,10.00,9.00,12.00
GB,4.30,6.30,4.50,6.50,8.50,10.50,9.50,12.50
US,5.00,8.00,5.20,8.20,12.00,15.00,11.00,14.00
`

// escalationCSV - один сегмент LP с тремя габаритными под-сегментами.
const escalationCSV = `,LP,,,
,VKS,MKS,DKS,
,500,1500,3000,
DE,3.00,4.50,6.00,
`

func mustParse(t *testing.T, csvData string) *Table {
	t.Helper()
	table, err := Parse(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("не удалось разобрать тестовую таблицу: %v", err)
	}
	return table
}

func TestParse(t *testing.T) {
	assertions := assert.New(t)

	table := mustParse(t, untrackedCSV)
	assertions.Equal([]model.Carrier{model.CarrierLP, model.CarrierDP, model.CarrierNL, model.CarrierEtonas}, table.Carriers())

	tracked := mustParse(t, trackedCSV)
	assertions.Contains(tracked.Carriers(), model.CarrierDPD)
	assertions.Contains(tracked.Carriers(), model.CarrierUPS)
}

func TestParse_UnknownCarrier(t *testing.T) {
	_, err := Parse(strings.NewReader(",FEDEX,\n,,\n,500,\nDE,3.00,\n"))
	assert.Error(t, err)
}

func TestParse_TooShort(t *testing.T) {
	_, err := Parse(strings.NewReader(",LP\n,500\n"))
	assert.Error(t, err)
}

func TestOffer_WeightBreaks(t *testing.T) {
	assertions := assert.New(t)
	table := mustParse(t, untrackedCSV)

	// Первая ступень с потолком не ниже веса
	price, err := table.Offer("DE", 400, model.SizeSmall, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(3.00, price)

	// Вес на границе ступени остается в ней
	price, err = table.Offer("DE", 500, model.SizeSmall, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(3.00, price)

	// Следующая ступень
	price, err = table.Offer("DE", 501, model.SizeSmall, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(5.00, price)
}

func TestOffer_SizeEscalation(t *testing.T) {
	assertions := assert.New(t)
	table := mustParse(t, escalationCSV)

	// Вес не влезает в потолки малого габарита - класс эскалируется
	price, err := table.Offer("DE", 1000, model.SizeSmall, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(4.50, price)

	// Заказ среднего габарита не смотрит на малый под-сегмент
	price, err = table.Offer("DE", 400, model.SizeMedium, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(4.50, price)

	price, err = table.Offer("DE", 2500, model.SizeSmall, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(6.00, price)
}

func TestOffer_EmptyCellEscalates(t *testing.T) {
	// Пустая ячейка цены означает, что служба не везет комбинацию,
	// поиск продолжается на следующем габарите
	table := mustParse(t, `,DP,,
,VKS,MKS,
,1000,1000,
GB,,7.00,
`)
	price, err := table.Offer("GB", 800, model.SizeSmall, model.CarrierDP)
	assert.NoError(t, err)
	assert.Equal(t, 7.00, price)
}

func TestOffer_Errors(t *testing.T) {
	assertions := assert.New(t)
	table := mustParse(t, untrackedCSV)

	_, err := table.Offer("DE", 400, model.SizeSmall, model.CarrierUPS)
	assertions.ErrorIs(err, ErrUnsupportedCarrier)

	_, err = table.Offer("JP", 400, model.SizeSmall, model.CarrierLP)
	assertions.ErrorIs(err, ErrUnsupportedCountry)

	// Вес выше всех потолков последнего габарита
	_, err = table.Offer("DE", 5000, model.SizeSmall, model.CarrierLP)
	assertions.ErrorIs(err, ErrNoOffer)

	// SE возит только LP и DP: пустые ячейки NL до последнего габарита
	_, err = table.Offer("SE", 400, model.SizeSmall, model.CarrierNL)
	assertions.ErrorIs(err, ErrNoOffer)
}

func TestOffer_UnknownCountryCodeRejected(t *testing.T) {
	assertions := assert.New(t)

	// Код сверяется со справочником до поиска строки: строка XK в таблице
	// есть, но запрос по непризнаваемому коду - нарушение контракта
	table := mustParse(t, `,LP,
,,
,500,
XK,3.00,
`)
	_, err := table.Offer("XK", 400, model.SizeSmall, model.CarrierLP)
	assertions.ErrorIs(err, ErrUnsupportedCountry)
}

func TestBook_SelectsTableByTracking(t *testing.T) {
	assertions := assert.New(t)
	book := NewBookFromTables(mustParse(t, trackedCSV), mustParse(t, untrackedCSV))

	o := &model.Order{ShipCountry: "DE", Weight: 400, Size: model.SizeSmall}

	price, err := book.Offer(o, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(3.00, price, "обычный заказ идет по обычной таблице")

	o.Tracked = true
	price, err = book.Offer(o, model.CarrierLP)
	assertions.NoError(err)
	assertions.Equal(4.00, price, "трекинговый заказ идет по трекинговой таблице")
}
