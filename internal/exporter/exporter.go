package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"order_router/internal/alerts"
	"order_router/internal/model"
	"order_router/internal/routing"
)

// Exporter пишет файлы отгрузки для служб доставки и сопутствующие отчеты.
// Каждая служба принимает свой формат: DP и UPS - CSV по шаблону Deutsche Post,
// LP - CSV Lietuvos Pastas, NL - CSV NLPost, Etonas - книга xlsx.
type Exporter struct {
	outputDir string
	channel   model.SalesChannel
	notifier  *alerts.Notifier
	stamp     string
}

// New создает Exporter для одного запуска.
func New(outputDir string, channel model.SalesChannel, notifier *alerts.Notifier) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		channel:   channel,
		notifier:  notifier,
		stamp:     time.Now().Format("2006.01.02 15.04"),
	}
}

// Export пишет файлы отгрузки по корзинам служб. Пустые корзины пропускаются -
// пустой файл для оператора хуже отсутствующего.
func (e *Exporter) Export(ctx context.Context, buckets routing.Buckets) error {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог выгрузки: %w", err)
	}

	type job struct {
		carrier model.Carrier
		export  func(ctx context.Context, orders []*model.Order) error
	}
	jobs := []job{
		{model.CarrierDP, func(ctx context.Context, orders []*model.Order) error {
			return e.exportDPost(ctx, e.path("DPost", "csv"), orders)
		}},
		{model.CarrierDPD, func(ctx context.Context, orders []*model.Order) error {
			return e.exportDPost(ctx, e.path("DPD", "csv"), orders)
		}},
		{model.CarrierUPS, func(ctx context.Context, orders []*model.Order) error {
			return e.exportDPost(ctx, e.path("UPS", "csv"), orders)
		}},
		{model.CarrierLP, func(ctx context.Context, orders []*model.Order) error {
			return e.exportLP(e.path("LP", "csv"), orders)
		}},
		{model.CarrierNL, func(ctx context.Context, orders []*model.Order) error {
			return e.exportNLPost(e.path("NLPost", "csv"), orders)
		}},
		{model.CarrierEtonas, func(ctx context.Context, orders []*model.Order) error {
			return e.exportEtonas(ctx, e.path("Etonas", "xlsx"), orders)
		}},
	}

	for _, j := range jobs {
		orders := buckets[j.carrier]
		if len(orders) == 0 {
			log.Printf("Корзина %s пуста, файл не создается.", j.carrier)
			continue
		}
		if err := j.export(ctx, orders); err != nil {
			return fmt.Errorf("выгрузка %s: %w", j.carrier, err)
		}
		log.Printf("Выгрузка %s: %d заказов.", j.carrier, len(orders))
	}
	return nil
}

func (e *Exporter) path(carrier, ext string) string {
	return filepath.Join(e.outputDir, fmt.Sprintf("%s-%s %s.%s", carrier, e.channel, e.stamp, ext))
}

// writeCSV пишет файл в формате, который принимают порталы служб:
// разделитель ';', BOM в начале (файлы открываются в Excel на Windows).
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не удалось создать файл %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\ufeff"); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("запись %s: %w", path, err)
	}
	return nil
}
