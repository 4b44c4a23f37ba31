package exporter

import (
	"fmt"

	"order_router/internal/model"
	"order_router/internal/refdata"
)

// lpHeaders - шаблон CSV Lietuvos Pastas (заголовки портала на литовском).
var lpHeaders = []string{
	"Delivery Method",
	"Siuntos rūšis",
	"Terminalo ID",
	"Gavėjo pavadinimas",
	"Gavėjo įmonės pavadinimas",
	"Gavėjo gatvė",
	"Gavėjo namas",
	"Gavėjo butas",
	"Gavėjo gyvenvietė",
	"Gavėjo pašto kodas",
	"Adreso eilutė 1",
	"Adreso eilutė 2",
	"Gavėjo šalies kodas",
	"Gavėjo mob. tel. (370xxxxxxxx)",
	"Gavėjo el. paštas",
	"Svoris (g)",
	"Dalių skaičius",
	"Pirmenybinis siuntimas",
	"Draudimas (Eur)",
	"COD (Eur)",
	"Gauti informaciją apie įteiktą siuntą (POD)",
	"Moka gavėjas",
	"Komentaras",
	"Siuntos turinio kategorija",
	"HS kodas",
	"Prekių kilmės šalis",
	"Siuntos turinio aprašymas anglų kalba",
	"Kiekis (vnt)",
	"Deklaruojamas siuntos svoris (g)",
	"Deklaruojama vertė (eur)",
	"Nepavykus pristatyti",
}

// exportLP пишет CSV для портала Lietuvos Pastas.
// Таможенные колонки заполняются только для стран вне ЕС: внутри союза
// декларация не нужна.
func (e *Exporter) exportLP(path string, orders []*model.Order) error {
	rows := [][]string{lpHeaders}
	for _, o := range orders {
		rows = append(rows, lpRow(o))
	}
	return writeCSV(path, rows)
}

func lpRow(o *model.Order) []string {
	kind := "Paprasta"
	if o.Tracked {
		kind = "Registruota"
	}

	values := map[string]string{
		"Siuntos rūšis":                  kind,
		"Gavėjo pavadinimas":             o.RecipientName,
		"Gavėjo gyvenvietė":              o.City,
		"Gavėjo pašto kodas":             o.PostalCode,
		"Adreso eilutė 1":                o.Address1,
		"Adreso eilutė 2":                o.Address2,
		"Gavėjo šalies kodas":            o.ShipCountry,
		"Gavėjo mob. tel. (370xxxxxxxx)": o.BuyerPhone,
		"Gavėjo el. paštas":              o.BuyerEmail,
		"Svoris (g)":                     weightCell(o),
		"Dalių skaičius":                 "1",
		"Pirmenybinis siuntimas":         "Taip",
	}

	if !refdata.IsEUCountry(o.ShipCountry) {
		values["Siuntos turinio kategorija"] = "Dovana"
		values["HS kodas"] = refdata.HSCode(o.Brand, o.Category)
		values["Prekių kilmės šalis"] = refdata.OriginCountry(o.Title)
		values["Siuntos turinio aprašymas anglų kalba"] = string(o.Category)
		values["Kiekis (vnt)"] = fmt.Sprintf("%d", o.Quantity)
		values["Deklaruojamas siuntos svoris (g)"] = weightCell(o)
		values["Deklaruojama vertė (eur)"] = fmt.Sprintf("%.2f", o.TotalValueEUR)
	}

	row := make([]string, len(lpHeaders))
	for i, header := range lpHeaders {
		row[i] = values[header]
	}
	return row
}
