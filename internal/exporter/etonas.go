package exporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"order_router/internal/alerts"
	"order_router/internal/model"
	"order_router/internal/refdata"
)

// etonasCharlimit - лимит символов на ячейку адреса в книге Etonas.
const etonasCharlimit = 32

// etonasHeaders - колонки книги xlsx, которую принимает Etonas.
var etonasHeaders = []string{
	"Address_line_1",
	"Address_line_2",
	"Address_line_3",
	"Address_line_4",
	"Postcode",
	"First_name",
	"Last_name",
	"Email",
	"Weight(Kg)",
	"Compensation()",
	"Signature(y/n)",
	"Reference",
	"Contents",
	"Delivery_phone",
	"Buyer Country",
	"Tracking (0 - neregistruota, 1 - registruota)",
	"PackageType (DP Jeigu maza pakuote)",
	"Amount",
	"Price per quantity",
	"GLS",
	"HS",
	"Origin",
	"Currency",
}

// exportEtonas пишет книгу xlsx для Etonas.
func (e *Exporter) exportEtonas(ctx context.Context, path string, orders []*model.Order) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, header := range etonasHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, o := range orders {
		values := e.etonasRow(ctx, o)
		for col, header := range etonasHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, values[header]); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("сохранение книги Etonas: %w", err)
	}
	return nil
}

func (e *Exporter) etonasRow(ctx context.Context, o *model.Order) map[string]string {
	firstName, lastName := splitName(o.RecipientName)

	// Etonas требует UK вместо GB
	country := o.ShipCountry
	if country == "GB" {
		country = "UK"
	}

	tracking := "0"
	if o.Tracked {
		tracking = "1"
	}

	weightKg := ""
	if o.WeightAvailable {
		weightKg = fmt.Sprintf("%.2f", float64(o.Weight)/1000)
	}

	values := map[string]string{
		"Address_line_1": o.Address1,
		"Address_line_2": o.Address2,
		"Address_line_3": o.City,
		"Address_line_4": o.State,
		"Postcode":       o.PostalCode,
		"First_name":     firstName,
		"Last_name":      lastName,
		"Email":          o.BuyerEmail,
		"Weight(Kg)":     weightKg,
		"Reference":      o.OrderID,
		"Contents":       string(o.Category),
		"Delivery_phone": o.BuyerPhone,
		"Buyer Country":  country,
		"Tracking (0 - neregistruota, 1 - registruota)": tracking,
		"Amount":             fmt.Sprintf("%d", o.Quantity),
		"Price per quantity": fmt.Sprintf("%.2f", o.TotalValueEUR),
		"HS":                 refdata.HSCode(o.Brand, o.Category),
		"Origin":             refdata.OriginCountry(o.Title),
		"Currency":           strings.ToLower(o.Currency),
	}

	for _, header := range []string{"Address_line_1", "Address_line_2", "Address_line_3", "Address_line_4"} {
		if len(values[header]) > etonasCharlimit {
			e.notifier.Send(ctx, alerts.CodeCharlimit, "адресная ячейка Etonas длиннее лимита: "+values[header])
		}
	}
	return values
}

// splitName делит полное имя на имя и фамилию по первому пробелу.
// Однословное имя целиком уходит в первую часть.
func splitName(full string) (string, string) {
	parts := strings.SplitN(full, " ", 2)
	if len(parts) < 2 {
		return full, ""
	}
	return parts[0], parts[1]
}
