package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"order_router/internal/generator"
	"order_router/internal/model"
)

// amazonColumns - заголовки выгрузки Amazon (TSV).
var amazonColumns = []string{
	"order-item-id", "order-id", "purchase-date", "buyer-email", "buyer-name",
	"buyer-phone-number", "sku", "product-name", "quantity-purchased",
	"currency", "item-price", "shipping-price", "ship-service-level",
	"recipient-name", "ship-address-1", "ship-address-2", "ship-address-3",
	"ship-city", "ship-state", "ship-postal-code", "ship-country", "sales-channel",
}

// etsyColumns - заголовки выгрузки Etsy (CSV).
var etsyColumns = []string{
	"Order ID", "Sale Date", "Full Name", "Street 1", "Street 2",
	"Ship City", "Ship State", "Ship Zipcode", "Ship Country", "Currency",
	"Number of Items", "SKU", "Order Value", "Discount Amount", "Shipping",
}

// Producer генерирует тестовые выгрузки площадок для локальных прогонов.
type Producer struct {
	channel model.SalesChannel
}

func (p *Producer) row(o model.Order) []string {
	if p.channel == model.ChannelEtsy {
		return []string{
			o.OrderID, o.PurchaseDate, o.RecipientName, o.Address1, o.Address2,
			o.City, o.State, o.PostalCode, o.ShipCountry, o.Currency,
			fmt.Sprintf("%d", o.Quantity), strings.Join(o.SKUs, " + "),
			fmt.Sprintf("%.2f", o.ItemPrice), fmt.Sprintf("%.2f", o.Discount),
			fmt.Sprintf("%.2f", o.ShippingPrice),
		}
	}
	return []string{
		o.OrderID, o.SecondaryOrderID, o.PurchaseDate, o.BuyerEmail, o.BuyerName,
		o.BuyerPhone, strings.Join(o.SKUs, " + "), o.Title,
		fmt.Sprintf("%d", o.Quantity), o.Currency,
		fmt.Sprintf("%.2f", o.ItemPrice), fmt.Sprintf("%.2f", o.ShippingPrice),
		o.ServiceLevel, o.RecipientName, o.Address1, o.Address2, o.Address3,
		o.City, o.State, o.PostalCode, o.ShipCountry, o.InnerChannel,
	}
}

// Write пишет файл выгрузки с count случайными заказами.
func (p *Producer) Write(path string, count int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не удалось создать файл выгрузки: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	headers := amazonColumns
	if p.channel == model.ChannelEtsy {
		headers = etsyColumns
	} else {
		w.Comma = '\t'
	}

	if err := w.Write(headers); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		order := generator.NewOrder(p.channel)
		if err := w.Write(p.row(order)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func main() {
	channel := flag.String("channel", "AmazonEU", "канал продаж: AmazonEU / AmazonCOM / Etsy")
	count := flag.Int("count", 50, "количество заказов в выгрузке")
	out := flag.String("out", "", "путь к файлу выгрузки (по умолчанию ./<канал>-sample.csv)")
	flag.Parse()

	if !model.ValidChannel(*channel) {
		log.Fatalf("Неизвестный канал продаж: %s. Ожидается один из %v.", *channel, model.ExpectedSalesChannels)
	}
	ch := model.SalesChannel(*channel)

	path := *out
	if path == "" {
		ext := "txt"
		if ch == model.ChannelEtsy {
			ext = "csv"
		}
		path = fmt.Sprintf("./%s-sample.%s", ch, ext)
	}

	p := &Producer{channel: ch}
	if err := p.Write(path, *count); err != nil {
		log.Fatalf("Не удалось записать выгрузку: %v", err)
	}
	fmt.Printf("Выгрузка %s: %d заказов записано в %s\n", ch, *count, path)
}
