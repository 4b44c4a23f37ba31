package parser

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

// ErrSchema - в выгрузке нет ожидаемой колонки. Локально не восстанавливается:
// схема сломана на стороне площадки, запуск должен быть прерван с оповещением.
var ErrSchema = errors.New("отсутствует ожидаемая колонка в выгрузке")

// ReadOrders читает файл выгрузки площадки и возвращает заказы с заполненными
// исходными полями. Amazon выгружает TSV, Etsy - CSV.
func ReadOrders(path string, channel model.SalesChannel) ([]*model.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл выгрузки: %w", err)
	}
	defer f.Close()
	return readOrders(f, channel)
}

func readOrders(r io.Reader, channel model.SalesChannel) ([]*model.Order, error) {
	reader := csv.NewReader(r)
	if channel != model.ChannelEtsy {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1 // хвостовые колонки площадки бывают рваными

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать заголовок выгрузки: %w", err)
	}
	// Выгрузки с Windows-машин приходят с BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	keys := KeysFor(channel)
	if err := checkSchema(index, keys); err != nil {
		return nil, err
	}

	var orders []*model.Order
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку выгрузки: %w", err)
		}
		fields := rowToMap(header, row)
		order := buildOrder(fields, channel, keys)
		orders = append(orders, order)
	}
	return orders, nil
}

// checkSchema проверяет наличие всех обязательных колонок до разбора строк.
func checkSchema(index map[string]int, keys ProxyKeys) error {
	for _, internal := range requiredKeys {
		external, ok := keys[internal]
		if !ok {
			continue
		}
		if _, ok := index[external]; !ok {
			log.Printf("КРИТИЧНО: в выгрузке нет колонки %q (внутреннее имя %q).", external, internal)
			return fmt.Errorf("%w: %s", ErrSchema, external)
		}
	}
	return nil
}

func rowToMap(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			fields[name] = row[i]
		} else {
			fields[name] = ""
		}
	}
	return fields
}

// buildOrder собирает заказ из сырой строки. Числовые поля с мусором не
// прерывают запуск: значение 0 и предупреждение в лог.
func buildOrder(fields map[string]string, channel model.SalesChannel, keys ProxyKeys) *model.Order {
	get := func(internal string) string {
		return fields[keys[internal]]
	}

	o := &model.Order{
		OrderID:          get("order-id"),
		SecondaryOrderID: get("secondary-order-id"),
		Channel:          channel,
		InnerChannel:     get("sales-channel"),
		PurchaseDate:     get("purchase-date"),
		BuyerName:        get("buyer-name"),
		BuyerEmail:       get("buyer-email"),
		BuyerPhone:       CleanPhoneNumber(get("buyer-phone-number")),
		RecipientName:    get("recipient-name"),
		Address1:         get("ship-address-1"),
		Address2:         get("ship-address-2"),
		Address3:         get("ship-address-3"),
		City:             get("ship-city"),
		State:            get("ship-state"),
		PostalCode:       get("ship-postal-code"),
		ShipCountry:      strings.ToUpper(get("ship-country")),
		Currency:         get("currency"),
		ItemPrice:        parseFloat(get("item-price"), "item-price", get("order-id")),
		Discount:         parseFloat(get("discount"), "discount", get("order-id")),
		ShippingPrice:    parseFloat(get("shipping-price"), "shipping-price", get("order-id")),
		Quantity:         parseInt(get("quantity-purchased"), get("order-id")),
		SKUs:             SplitSKU(get("sku"), channel),
		Title:            get("title"),
		ServiceLevel:     get("ship-service-level"),
	}

	// Etsy выгружает полное название страны, не код
	if channel == model.ChannelEtsy {
		code, ok := refdata.CountryCode(o.ShipCountry)
		if !ok {
			log.Printf("Неизвестная страна %q в заказе %s. Код оставлен пустым.", o.ShipCountry, o.OrderID)
			code = ""
		}
		o.ShipCountry = code
	}
	return o
}

func parseFloat(raw, field, orderID string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		log.Printf("Не удалось разобрать %s=%q в заказе %s, используется 0. Ошибка: %v", field, raw, orderID, err)
		return 0
	}
	return v
}

func parseInt(raw, orderID string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("Не удалось разобрать количество %q в заказе %s, используется 0. Ошибка: %v", raw, orderID, err)
		return 0
	}
	return v
}

// SplitSKU разбивает строку SKU на список. Мультилистинги склеиваются через
// ' + '; Etsy дополнительно разделяет товары запятой.
// Пример Etsy: '1 vnt. 1040830 + 1 vnt. 1034630,1 vnt. T1147' ->
// ['1 vnt. 1040830', '1 vnt. 1034630', '1 vnt. T1147'].
func SplitSKU(raw string, channel model.SalesChannel) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, " + ")
	if channel != model.ChannelEtsy {
		return parts
	}
	var skus []string
	for _, part := range parts {
		skus = append(skus, strings.Split(part, ",")...)
	}
	return skus
}

// CleanPhoneNumber приводит телефон к виду без плюса и с добавочным впереди.
// Пример: '+1 213-442-1463 ext. 90019' -> '00 90019 1 213-442-1463'.
func CleanPhoneNumber(phone string) string {
	if strings.Contains(phone, " ext. ") {
		parts := strings.SplitN(phone, " ext. ", 2)
		base, ext := parts[0], parts[1]
		plusPos := strings.Index(base, "+") + 1
		phone = base[:plusPos] + " " + ext + " " + base[plusPos:]
	}
	return strings.ReplaceAll(phone, "+", "00")
}
