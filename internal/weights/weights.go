package weights

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"order_router/internal/metrics"
	"order_router/internal/model"
	"order_router/internal/refdata"
)

// Префиксы внутреннего количества в строке SKU.
// Amazon: '(4 vnt.) 1040830', Etsy: '4 vnt. 1040830'.
var (
	amazonQtyPattern = regexp.MustCompile(`^\(\d+\svnt\.\)\s`)
	etsyQtyPattern   = regexp.MustCompile(`^\d+\svnt\.\s`)
	digitsPattern    = regexp.MustCompile(`\d+`)
)

// Resolver обогащает заказы весом, габаритным классом, категорией и брендом.
// Правило "все или ничего": если хотя бы один SKU заказа не разрешился,
// вес всего заказа помечается недоступным и заказ уходит в ручную обработку.
type Resolver struct {
	channel  model.SalesChannel
	table    map[string]SKUInfo
	aliases  map[string]string
	innerQty *regexp.Regexp

	processed int
	invalid   int
	unmatched map[string][]string // SKU -> номера заказов, где он встретился
}

// NewResolver создает Resolver для одного канала продаж.
func NewResolver(channel model.SalesChannel, table map[string]SKUInfo, aliases map[string]string) *Resolver {
	pattern := amazonQtyPattern
	if channel == model.ChannelEtsy {
		pattern = etsyQtyPattern
	}
	return &Resolver{
		channel:   channel,
		table:     table,
		aliases:   aliases,
		innerQty:  pattern,
		unmatched: make(map[string][]string),
	}
}

// AddOrderData заполняет производные поля заказа: название (для Etsy),
// бренд, категорию, вес, габаритный класс.
func (r *Resolver) AddOrderData(o *model.Order) {
	r.processed++

	// Выгрузка Etsy не содержит названия товара - берем его из весовой таблицы
	if o.Title == "" {
		o.Title = r.titleFromTable(o.SKUs)
	}
	o.Brand = refdata.ProductBrand(o.Title)
	o.Category = refdata.ProductCategory(o.Title)

	r.resolveWeight(o)
}

// resolveWeight считает вес заказа в граммах.
// Один SKU: вес позиции умножается на количество из заказа.
// Несколько SKU: веса складываются по одному разу, количество из заказа
// не применяется (оно уже зашито в префиксы 'N vnt.').
// Упаковка добавляется один раз - максимальная по всем SKU.
func (r *Resolver) resolveWeight(o *model.Order) {
	// У Etsy количество товаров должно сходиться с числом SKU в мультилистинге,
	// иначе непонятно, что именно купили
	if r.channel == model.ChannelEtsy && len(o.SKUs) > 1 && o.Quantity != len(o.SKUs) {
		log.Printf("Заказ %s: %d SKU при количестве %d. Вес недоступен.", o.OrderID, len(o.SKUs), o.Quantity)
		r.markInvalid(o)
		return
	}

	var itemsTotal, packaging float64
	size := model.SizeSmall
	resolved := true

	for _, rawSKU := range o.SKUs {
		qty, sku := r.splitInnerQty(rawSKU)
		info, ok := r.lookup(sku)
		if !ok {
			r.noteUnmatched(sku, o.OrderID)
			resolved = false
			continue
		}
		if !info.weightOK || !info.packageOK {
			log.Printf("Заказ %s: для SKU %s в таблице нет числового веса.", o.OrderID, sku)
			resolved = false
			continue
		}
		itemsTotal += info.Weight * float64(qty)
		pack := info.PackageGeneral
		if o.Category.IsCardsCategory() {
			pack = info.PackageCards
		}
		if pack > packaging {
			packaging = pack
		}
		size = model.MaxSize(size, info.Size)
	}

	if !resolved || len(o.SKUs) == 0 {
		r.markInvalid(o)
		return
	}

	if len(o.SKUs) == 1 {
		itemsTotal *= float64(o.Quantity)
	}

	o.Weight = int(math.Round(itemsTotal + packaging))
	o.WeightAvailable = true
	o.Size = size
}

func (r *Resolver) markInvalid(o *model.Order) {
	o.WeightAvailable = false
	r.invalid++
	metrics.InvalidWeightOrders.Inc()
}

// splitInnerQty отделяет префикс внутреннего количества от кода товара.
// Без префикса количество равно 1.
func (r *Resolver) splitInnerQty(rawSKU string) (int, string) {
	prefix := r.innerQty.FindString(rawSKU)
	if prefix == "" {
		return 1, strings.TrimSpace(rawSKU)
	}
	qty, err := strconv.Atoi(digitsPattern.FindString(prefix))
	if err != nil || qty < 1 {
		qty = 1
	}
	return qty, strings.TrimSpace(strings.TrimPrefix(rawSKU, prefix))
}

// lookup ищет SKU в весовой таблице, при промахе - через таблицу алиасов
// (площадки используют собственные коды, не совпадающие с внутренними).
func (r *Resolver) lookup(sku string) (SKUInfo, bool) {
	if info, ok := r.table[sku]; ok {
		return info, true
	}
	if label, ok := r.aliases[sku]; ok {
		if info, ok := r.table[label]; ok {
			return info, true
		}
	}
	return SKUInfo{}, false
}

func (r *Resolver) noteUnmatched(sku, orderID string) {
	r.unmatched[sku] = append(r.unmatched[sku], orderID)
}

// titleFromTable возвращает название из весовой таблицы по первому
// распознанному SKU заказа.
func (r *Resolver) titleFromTable(skus []string) string {
	for _, rawSKU := range skus {
		_, sku := r.splitInnerQty(rawSKU)
		if info, ok := r.lookup(sku); ok && info.Title != "" {
			return info.Title
		}
	}
	return ""
}

// InvalidPercent - доля заказов с недоступным весом за запуск.
func (r *Resolver) InvalidPercent() float64 {
	if r.processed == 0 {
		return 0
	}
	return model.Round2(float64(r.invalid) / float64(r.processed) * 100)
}

// UnmatchedReport возвращает строки отчета о ненайденных SKU
// (по строке на SKU со списком затронутых заказов).
func (r *Resolver) UnmatchedReport() []string {
	skus := make([]string, 0, len(r.unmatched))
	for sku := range r.unmatched {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	lines := make([]string, 0, len(skus))
	for _, sku := range skus {
		lines = append(lines, fmt.Sprintf("%s: %s", sku, strings.Join(r.unmatched[sku], ", ")))
	}
	return lines
}
