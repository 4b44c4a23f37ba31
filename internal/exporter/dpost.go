package exporter

import (
	"context"
	"fmt"
	"log"
	"strings"

	"order_router/internal/alerts"
	"order_router/internal/model"
	"order_router/internal/refdata"
)

// Лимиты полей портала Deutsche Post. Превышение портал отклоняет молча,
// поэтому имя сокращается, а адрес перекладывается заранее.
const (
	dpostNameCharlimit    = 30
	dpostAddressCharlimit = 40
	dpostRefCharlimit     = 20
)

// dpostHeaders - шаблон CSV Deutsche Post. Тот же шаблон принимают DPD и UPS.
var dpostHeaders = []string{
	"PRODUCT", "SERVICE_LEVEL", "CUST_EKP", "AWB", "REGISTERED_BARCODE",
	"CUST_REF", "NAME", "RECIPIENT_PHONE", "RECIPIENT_EMAIL",
	"ADDRESS_LINE_1", "ADDRESS_LINE_2", "ADDRESS_LINE_3",
	"CITY", "STATE", "POSTAL_CODE", "DESTINATION_COUNTRY",
	"WEIGHT", "CURRENCY", "CONTENT_TYPE",
	"DECLARED_CONTENT_AMOUNT_1", "DETAILED_CONTENT_DESCRIPTIONS_1",
	"DECLARED_NETWEIGHT_1", "DECLARED_VALUE_1", "DECLARED_HS_CODE_1", "DECLARED_ORIGIN_COUNTRY_1",
	"TOTAL_VALUE", "RETURN_LABEL", "SENDER_CUSTOMS_REFERENCE", "IMPORTER_CUSTOMS_REFERENCE",
}

// exportDPost пишет CSV по шаблону Deutsche Post (используется для DP, DPD, UPS).
func (e *Exporter) exportDPost(ctx context.Context, path string, orders []*model.Order) error {
	rows := [][]string{dpostHeaders}
	for _, o := range orders {
		rows = append(rows, e.dpostRow(ctx, o))
	}
	return writeCSV(path, rows)
}

func (e *Exporter) dpostRow(ctx context.Context, o *model.Order) []string {
	product := "GMP" // обычный мелкий пакет
	if o.Tracked {
		product = "GPT" // трекинговый
	}

	name := o.RecipientName
	if len(name) > dpostNameCharlimit {
		name = e.shortenName(ctx, name)
	}
	addr1, addr2, addr3 := o.Address1, o.Address2, o.Address3
	if len(addr1) > dpostAddressCharlimit || len(addr2) > dpostAddressCharlimit || len(addr3) > dpostAddressCharlimit {
		addr1, addr2, addr3 = e.reorgAddress(ctx, addr1, addr2, addr3)
	}

	ref := o.RecipientName
	if len(ref) > dpostRefCharlimit {
		ref = ref[:dpostRefCharlimit]
	}

	values := map[string]string{
		"PRODUCT":                         product,
		"SERVICE_LEVEL":                   "PRIORITY",
		"CUST_REF":                        ref,
		"NAME":                            name,
		"RECIPIENT_PHONE":                 o.BuyerPhone,
		"RECIPIENT_EMAIL":                 o.BuyerEmail,
		"ADDRESS_LINE_1":                  addr1,
		"ADDRESS_LINE_2":                  addr2,
		"ADDRESS_LINE_3":                  addr3,
		"CITY":                            o.City,
		"STATE":                           o.State,
		"POSTAL_CODE":                     strings.ToUpper(o.PostalCode),
		"DESTINATION_COUNTRY":             o.ShipCountry,
		"WEIGHT":                          weightCell(o),
		"CURRENCY":                        o.Currency,
		"CONTENT_TYPE":                    "SALE_GOODS",
		"DECLARED_CONTENT_AMOUNT_1":       fmt.Sprintf("%d", o.Quantity),
		"DETAILED_CONTENT_DESCRIPTIONS_1": string(o.Category),
		"DECLARED_NETWEIGHT_1":            weightCell(o),
		"DECLARED_VALUE_1":                fmt.Sprintf("%.2f", o.TotalValueEUR),
		"DECLARED_HS_CODE_1":              refdata.HSCode(o.Brand, o.Category),
		"DECLARED_ORIGIN_COUNTRY_1":       refdata.OriginCountry(o.Title),
		"TOTAL_VALUE":                     fmt.Sprintf("%.2f", o.TotalValueEUR),
		"RETURN_LABEL":                    "FALSE",
	}

	row := make([]string, len(dpostHeaders))
	for i, header := range dpostHeaders {
		row[i] = values[header]
	}
	return row
}

// shortenName сокращает средние слова имени до инициалов.
// 'Jose Inarritu Gonzallez Ima La Piena Hugo' -> 'Jose I. G. I. L. P. Hugo'.
// Если и после сокращения лимит превышен, имя возвращается как было,
// дежурный получает предупреждение.
func (e *Exporter) shortenName(ctx context.Context, name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "-", " "))
	if len(words) < 3 {
		e.notifier.Send(ctx, alerts.CodeCharlimit, "имя не сокращается: "+name)
		return name
	}
	short := make([]string, 0, len(words))
	for i, word := range words {
		if i == 0 || i == len(words)-1 {
			short = append(short, word)
			continue
		}
		short = append(short, abbreviateWord(word))
	}
	result := strings.Join(short, " ")
	if len(result) > dpostNameCharlimit {
		log.Printf("Имя %q не влезло в лимит даже после сокращения.", name)
		e.notifier.Send(ctx, alerts.CodeCharlimit, "имя длиннее лимита: "+name)
		return name
	}
	return result
}

// abbreviateWord возвращает первую букву слова с точкой; слово, начинающееся
// не с латинской буквы, остается как есть.
func abbreviateWord(word string) string {
	c := word[0]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return strings.ToUpper(string(c)) + "."
	}
	return word
}

// reorgAddress перекладывает слова адреса по трем строкам в пределах лимита.
// Если адрес не помещается и так, возвращаются исходные строки с предупреждением.
func (e *Exporter) reorgAddress(ctx context.Context, a1, a2, a3 string) (string, string, string) {
	words := strings.Fields(a1 + " " + a2 + " " + a3)
	var lines [3]string
	line := 0
	for _, word := range words {
		for line < 3 && len(lines[line])+len(word) >= dpostAddressCharlimit {
			line++
		}
		if line == 3 {
			log.Printf("Адрес не влез в 3x%d: %s %s %s", dpostAddressCharlimit, a1, a2, a3)
			e.notifier.Send(ctx, alerts.CodeCharlimit, "адрес длиннее лимита: "+a1+" "+a2+" "+a3)
			return a1, a2, a3
		}
		lines[line] += word + " "
	}
	return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), strings.TrimSpace(lines[2])
}

// weightCell возвращает вес в граммах или пустую ячейку для недоступного веса.
func weightCell(o *model.Order) string {
	if !o.WeightAvailable {
		return ""
	}
	return fmt.Sprintf("%d", o.Weight)
}
