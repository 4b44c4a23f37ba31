package exporter

import (
	"fmt"

	"order_router/internal/model"
	"order_router/internal/refdata"
)

// nlpostHeaders - шаблон CSV NLPost.
var nlpostHeaders = []string{
	"Sender company", "Sender name", "Sender street", "Sender city",
	"Sender postal code", "Sender country code", "Sender state code",
	"Sender phone", "Sender email", "Sender EORI", "Sender VAT",
	"Receiver company name", "Receiver name", "Receiver street", "Receiver city",
	"Receiver postal code", "Receiver country code", "Receiver state",
	"Receiver phone", "Receiver email", "Receiver EORI", "Receiver VAT",
	"Type", "Parcels amount", "X", "Y", "Z", "Weight", "Units",
	"Description", "Unit price", "Service name", "Order reference",
	"Export reason", "Export country code", "HS code",
	"COD", "COD Currency", "Importer", "identifier",
}

// nlpostSender - реквизиты отправителя, требуемые порталом в каждой строке.
var nlpostSender = map[string]string{
	"Sender company":      "Shop4Top",
	"Sender name":         "Vykintas Urniezius",
	"Sender street":       "Veiveriu street 55B",
	"Sender city":         "Kaunas",
	"Sender postal code":  "46335",
	"Sender country code": "LT",
	"Sender phone":        "861066162",
	"Sender email":        "klausimai@shop4top.lt",
}

// exportNLPost пишет CSV для портала NLPost.
func (e *Exporter) exportNLPost(path string, orders []*model.Order) error {
	rows := [][]string{nlpostHeaders}
	for _, o := range orders {
		rows = append(rows, nlpostRow(o))
	}
	return writeCSV(path, rows)
}

func nlpostRow(o *model.Order) []string {
	street := o.Address1
	if o.Address2 != "" {
		street += " " + o.Address2
	}

	values := map[string]string{
		"Receiver name":         o.RecipientName,
		"Receiver street":       street,
		"Receiver city":         o.City,
		"Receiver postal code":  o.PostalCode,
		"Receiver country code": o.ShipCountry,
		"Receiver state":        o.State,
		"Receiver phone":        o.BuyerPhone,
		"Receiver email":        o.BuyerEmail,
		"Type":                  "Package",
		"Parcels amount":        "1",
		"Weight":                weightCell(o),
		"Units":                 "1",
		"Description":           string(o.Category),
		"Unit price":            fmt.Sprintf("%.2f", o.TotalValueEUR),
		"Order reference":       o.OrderID,
		"Export reason":         "Gift",
		"Export country code":   o.ShipCountry,
		"HS code":               refdata.HSCode(o.Brand, o.Category),
		"COD Currency":          o.Currency,
	}
	for header, value := range nlpostSender {
		values[header] = value
	}

	row := make([]string, len(nlpostHeaders))
	for i, header := range nlpostHeaders {
		row[i] = values[header]
	}
	return row
}
