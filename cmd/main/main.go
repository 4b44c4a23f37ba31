package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"order_router/internal/alerts"
	"order_router/internal/config"
	"order_router/internal/database"
	"order_router/internal/exporter"
	"order_router/internal/forex"
	"order_router/internal/metrics"
	"order_router/internal/model"
	"order_router/internal/parser"
	"order_router/internal/pricing"
	"order_router/internal/routing"
	"order_router/internal/tracing"
	"order_router/internal/tracking"
	"order_router/internal/validator"
	"order_router/internal/weights"
)

// pipeline держит зависимости одного пакетного прогона.
type pipeline struct {
	cfg      *config.Config
	channel  model.SalesChannel
	notifier *alerts.Notifier
	storage  database.Storage
}

// fatal отправляет оповещение и завершает прогон с ненулевым кодом.
// log.Fatalf не используется: должны отработать закрытия соединений.
func (p *pipeline) fatal(ctx context.Context, code, detail string) {
	p.notifier.Send(ctx, code, detail)
	log.Printf("КРИТИЧНО: %s", detail)
	p.close()
	os.Exit(1)
}

func (p *pipeline) close() {
	if p.storage != nil {
		if err := p.storage.Close(); err != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", err)
		}
	}
	p.notifier.Close()
}

func main() {
	source := flag.String("source", "", "путь к файлу выгрузки площадки")
	channelFlag := flag.String("channel", "", "канал продаж: AmazonEU / AmazonCOM / Etsy")
	skipEtonas := flag.Bool("skip-etonas", false, "направлять заказы Etonas через Deutsche Post")
	flag.Parse()

	if *source == "" || !model.ValidChannel(*channelFlag) {
		fmt.Fprintf(os.Stderr, "Использование: -source <файл выгрузки> -channel <%v> [-skip-etonas]\n", model.ExpectedSalesChannels)
		os.Exit(2)
	}
	channel := model.SalesChannel(*channelFlag)

	cfg := config.Get()
	metrics.Init()
	shutdownTracing := tracing.InitTracerProvider("order-router")
	defer shutdownTracing()

	ctx := context.Background()
	p := &pipeline{
		cfg:      cfg,
		channel:  channel,
		notifier: alerts.New(cfg.Kafka, string(channel)),
	}
	p.run(ctx, *source, *skipEtonas || cfg.Routing.SkipEtonasByDefault)
}

func (p *pipeline) run(ctx context.Context, source string, skipEtonas bool) {
	// 1. Чтение выгрузки площадки
	orders, err := parser.ReadOrders(source, p.channel)
	if err != nil {
		if errors.Is(err, parser.ErrSchema) {
			p.fatal(ctx, alerts.CodeSchemaError, err.Error())
		}
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("чтение выгрузки: %v", err))
	}
	metrics.OrdersLoaded.WithLabelValues(string(p.channel)).Add(float64(len(orders)))
	log.Printf("Выгрузка %s прочитана: %d заказов.", p.channel, len(orders))

	// 2. Отсев уже обработанных заказов
	p.storage, err = database.New(p.cfg.Postgres.URL, "./migrations")
	if err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("инициализация хранилища: %v", err))
	}
	fresh, err := p.storage.FilterNew(ctx, orders)
	if err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("отсев дублей: %v", err))
	}
	if len(fresh) == 0 {
		p.notifier.Send(ctx, alerts.CodeNoNewJob, "все заказы выгрузки уже обработаны")
		p.close()
		return
	}

	// 3. Конвертация валют
	converter, err := forex.New(ctx, p.cfg.Forex, p.cfg.Data.RatesPath, p.notifier)
	if err != nil {
		// оповещение уже отправлено внутри forex.New
		log.Printf("КРИТИЧНО: %v", err)
		p.close()
		os.Exit(1)
	}
	for _, o := range fresh {
		o.ShippingPriceEUR = converter.ConvertToEUR(ctx, o.ShippingPrice, o.Currency)
		o.TotalValueEUR = converter.ConvertToEUR(ctx, o.TotalValue(), o.Currency)
	}

	// 4. Вес, категория, габарит
	weightTable, err := weights.LoadWeightTable(p.cfg.Data.WeightsPath)
	if err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("весовая таблица: %v", err))
	}
	aliases, duplicates, err := weights.LoadSKUMapping(p.cfg.Data.SKUMappingPath)
	if err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("таблица алиасов SKU: %v", err))
	}
	for _, sku := range duplicates {
		p.notifier.Send(ctx, alerts.CodeDuplicateSKU, sku)
	}
	resolver := weights.NewResolver(p.channel, weightTable, aliases)
	for _, o := range fresh {
		resolver.AddOrderData(o)
		if err := validator.ValidateStruct(o); err != nil {
			log.Printf("Заказ %s не прошел валидацию: %v", o.OrderID, err)
		}
	}
	log.Printf("Вес рассчитан. Доля заказов без веса: %.2f%%.", resolver.InvalidPercent())

	// 5. Тип доставки
	policy := p.cfg.PolicyFor(p.channel)
	for _, o := range fresh {
		tracking.Classify(o, policy)
	}

	// 6. Маршрутизация
	book, err := pricing.NewBook(p.cfg.Data.PricingTrackedPath, p.cfg.Data.PricingUntrackedPath)
	if err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("таблицы тарифов: %v", err))
	}
	engine := routing.New(book, policy, skipEtonas)
	buckets, err := engine.RouteAll(fresh)
	if err != nil {
		if errors.Is(err, routing.ErrNoNewJob) {
			p.notifier.Send(ctx, alerts.CodeNoNewJob, "маршрутизировать нечего")
			p.close()
			return
		}
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("маршрутизация: %v", err))
	}

	// 7. Файлы отгрузки и отчеты
	exp := exporter.New(p.cfg.Data.OutputDir, p.channel, p.notifier)
	if err := exp.Export(ctx, buckets); err != nil {
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("выгрузка файлов отгрузки: %v", err))
	}
	if err := exp.ExportSameBuyerReport(fresh); err != nil {
		log.Printf("Отчет о покупателях не записан: %v", err)
	}
	if err := exp.ExportUnmatchedSKUReport(resolver.UnmatchedReport()); err != nil {
		log.Printf("Отчет о ненайденных SKU не записан: %v", err)
	}

	// 8. Фиксация запуска в БД
	decisions := make([]model.Decision, 0, len(fresh))
	for _, o := range fresh {
		decisions = append(decisions, model.DecisionOf(o))
	}
	if err := p.storage.RecordRun(ctx, p.channel, decisions); err != nil {
		// файлы уже отданы оператору - запуск не откатывается, дежурный предупрежден
		p.fatal(ctx, alerts.CodeError, fmt.Sprintf("фиксация запуска: %v", err))
	}
	if _, err := p.storage.FlushOld(ctx); err != nil {
		log.Printf("Очистка старых заказов не удалась: %v", err)
	}

	p.notifier.Send(ctx, alerts.CodeExportedOK, fmt.Sprintf("обработано %d заказов", len(fresh)))
	log.Printf("Запуск завершен: %d заказов разложено по %d службам.", len(fresh), len(buckets))
	p.close()
}
