package pricing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"order_router/internal/model"
	"order_router/internal/refdata"
)

// Ошибки поиска тарифа. Для движка маршрутизации все три означают одно:
// данная служба этот заказ не везет.
var (
	ErrUnsupportedCarrier = errors.New("службы нет в таблице тарифов")
	ErrUnsupportedCountry = errors.New("страны нет в таблице тарифов")
	ErrNoOffer            = errors.New("нет тарифа для веса и габарита")
)

// column - одна весовая ступень: индекс колонки в строке страны
// и потолок веса в граммах.
type column struct {
	index   int
	ceiling int
}

// Table - разобранная таблица тарифов одного типа доставки.
// Геометрия файла повторяет операторскую книгу тарифов:
//
//	строка 1: имя службы в колонке начала ее сегмента;
//	строка 2: метка габаритного класса в колонке начала под-сегмента;
//	строка 3: потолки веса по колонкам;
//	далее:   строки стран, первая колонка - код ISO2.
type Table struct {
	segments map[model.Carrier]map[model.SizeClass][]column
	rows     map[string][]string
}

// Load читает таблицу тарифов из CSV.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть таблицу тарифов: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse разбирает таблицу тарифов из произвольного источника.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("чтение таблицы тарифов: %w", err)
	}
	if len(records) < 4 {
		return nil, errors.New("таблица тарифов неполная: нужны три строки заголовков и строки стран")
	}

	carrierRow, sizeRow, ceilingRow := records[0], records[1], records[2]

	t := &Table{
		segments: make(map[model.Carrier]map[model.SizeClass][]column),
		rows:     make(map[string][]string),
	}

	// Имя службы и метка габарита протягиваются вправо до следующей непустой ячейки
	var carrier model.Carrier
	var size model.SizeClass
	for i := 1; i < len(ceilingRow); i++ {
		if i < len(carrierRow) && strings.TrimSpace(carrierRow[i]) != "" {
			carrier = model.Carrier(strings.ToUpper(strings.TrimSpace(carrierRow[i])))
			if !model.AllowedCarrier(carrier) {
				return nil, fmt.Errorf("неизвестная служба %q в заголовке тарифов", carrierRow[i])
			}
			size = "" // новый сегмент начинает разметку габаритов заново
		}
		if i < len(sizeRow) && strings.TrimSpace(sizeRow[i]) != "" {
			size = model.SizeClass(strings.ToUpper(strings.TrimSpace(sizeRow[i])))
		}
		if carrier == "" {
			continue
		}
		ceiling, err := strconv.Atoi(strings.TrimSpace(ceilingRow[i]))
		if err != nil {
			continue // разделительная колонка
		}
		key := size
		if key == "" {
			key = model.SizeSmall
		}
		if t.segments[carrier] == nil {
			t.segments[carrier] = make(map[model.SizeClass][]column)
		}
		t.segments[carrier][key] = append(t.segments[carrier][key], column{index: i, ceiling: ceiling})
	}

	for _, row := range records[3:] {
		if len(row) == 0 {
			continue
		}
		country := strings.ToUpper(strings.TrimSpace(row[0]))
		if country == "" {
			continue
		}
		t.rows[country] = row
	}

	log.Printf("Таблица тарифов загружена: %d служб, %d стран.", len(t.segments), len(t.rows))
	return t, nil
}

// Offer возвращает цену доставки заказа указанной службой.
// Код страны сначала сверяется со справочником признаваемых кодов,
// независимо от содержимого таблицы. Поиск идет по габаритным
// под-сегментам начиная с класса заказа: если вес не влезает в потолки
// текущего класса (или у страны нет цены), класс эскалируется вверх.
// Понижения класса не бывает.
func (t *Table) Offer(country string, weight int, size model.SizeClass, carrier model.Carrier) (float64, error) {
	seg, ok := t.segments[carrier]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCarrier, carrier)
	}
	country = strings.ToUpper(country)
	if !refdata.KnownCountryCode(country) {
		return 0, fmt.Errorf("%w: %s (%s)", ErrUnsupportedCountry, country, carrier)
	}
	row, ok := t.rows[country]
	if !ok {
		return 0, fmt.Errorf("%w: %s (%s)", ErrUnsupportedCountry, country, carrier)
	}
	if size.Rank() == 0 {
		size = model.SizeSmall
	}

	for {
		if price, ok := t.offerInSize(seg[size], row, weight); ok {
			return price, nil
		}
		next, ok := size.Next()
		if !ok {
			return 0, fmt.Errorf("%w: %s, %d г, %s", ErrNoOffer, country, weight, carrier)
		}
		size = next
	}
}

// offerInSize ищет первую весовую ступень под-сегмента с потолком не ниже веса.
// Пустая ячейка цены означает, что служба не везет эту комбинацию, и поиск
// продолжается на следующем габарите.
func (t *Table) offerInSize(cols []column, row []string, weight int) (float64, bool) {
	for _, col := range cols {
		if weight > col.ceiling {
			continue
		}
		if col.index >= len(row) {
			return 0, false
		}
		raw := strings.TrimSpace(strings.ReplaceAll(row[col.index], ",", "."))
		if raw == "" {
			return 0, false
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("Нечисловая цена %q в таблице тарифов, ячейка пропущена.", row[col.index])
			return 0, false
		}
		return price, true
	}
	return 0, false
}

// Carriers возвращает службы, присутствующие в таблице.
func (t *Table) Carriers() []model.Carrier {
	var carriers []model.Carrier
	for _, c := range model.CarrierOrder {
		if _, ok := t.segments[c]; ok {
			carriers = append(carriers, c)
		}
	}
	return carriers
}

// Book - пара таблиц тарифов: трекинговая и обычная доставка.
type Book struct {
	tracked   *Table
	untracked *Table
}

// NewBook загружает обе таблицы тарифов.
func NewBook(trackedPath, untrackedPath string) (*Book, error) {
	tracked, err := Load(trackedPath)
	if err != nil {
		return nil, fmt.Errorf("тарифы трекинговой доставки: %w", err)
	}
	untracked, err := Load(untrackedPath)
	if err != nil {
		return nil, fmt.Errorf("тарифы обычной доставки: %w", err)
	}
	return &Book{tracked: tracked, untracked: untracked}, nil
}

// NewBookFromTables собирает Book из готовых таблиц (для тестов).
func NewBookFromTables(tracked, untracked *Table) *Book {
	return &Book{tracked: tracked, untracked: untracked}
}

// Offer возвращает цену доставки заказа службой по таблице, соответствующей
// типу доставки заказа.
func (b *Book) Offer(o *model.Order, carrier model.Carrier) (float64, error) {
	table := b.untracked
	if o.Tracked {
		table = b.tracked
	}
	return table.Offer(o.ShipCountry, o.Weight, o.Size, carrier)
}
