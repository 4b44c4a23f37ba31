package exporter

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"order_router/internal/model"
)

// ExportSameBuyerReport пишет текстовый отчет о заказах одного покупателя:
// такие отправления оператор может объединить в одну посылку.
// Без повторяющихся покупателей файл не создается.
func (e *Exporter) ExportSameBuyerReport(orders []*model.Order) error {
	grouped := sameBuyerOrders(orders)
	if len(grouped) == 0 {
		log.Println("Повторяющихся покупателей в партии нет, отчет не создается.")
		return nil
	}

	var b strings.Builder
	b.WriteString("Buyer\t\tOrder Number\t\t\tShipping Address(1-2)")
	for _, name := range sortedKeys(grouped) {
		fmt.Fprintf(&b, "\n\n%s", name)
		for _, o := range grouped[name] {
			fmt.Fprintf(&b, "\n\t\t%s\t\t%s %s", o.OrderID, o.Address1, o.Address2)
		}
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("Same Buyer Orders %s.txt", e.stamp))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("запись отчета о покупателях: %w", err)
	}
	log.Printf("Отчет о повторяющихся покупателях: %d покупателей, файл %s.", len(grouped), path)
	return nil
}

// sameBuyerOrders группирует заказы по имени получателя и отбрасывает
// покупателей с единственным заказом.
func sameBuyerOrders(orders []*model.Order) map[string][]*model.Order {
	grouped := make(map[string][]*model.Order)
	for _, o := range orders {
		grouped[o.RecipientName] = append(grouped[o.RecipientName], o)
	}
	for name, group := range grouped {
		if len(group) == 1 {
			delete(grouped, name)
		}
	}
	return grouped
}

func sortedKeys(grouped map[string][]*model.Order) []string {
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys) // детерминированный порядок в отчете
	return keys
}

// ExportUnmatchedSKUReport пишет текстовый отчет о SKU, не найденных в весовой
// таблице. Пустой отчет не создается.
func (e *Exporter) ExportUnmatchedSKUReport(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	path := filepath.Join(e.outputDir, fmt.Sprintf("Unmatched SKU %s.txt", e.stamp))
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("запись отчета о ненайденных SKU: %w", err)
	}
	log.Printf("Отчет о ненайденных SKU: %d позиций, файл %s.", len(lines), path)
	return nil
}
