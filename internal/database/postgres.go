package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"order_router/internal/metrics"
	"order_router/internal/model"
)

//go:generate mockgen -source=postgres.go -destination=./mocks/storage_mock.go -package=mocks Storage

// retentionDays - срок хранения обработанных заказов. Старше - вычищаются:
// площадки не выгружают заказы двухмесячной давности, защита от дублей им
// уже не нужна.
const retentionDays = 60

// Storage определяет интерфейс для работы с хранилищем решений маршрутизации.
type Storage interface {
	FilterNew(ctx context.Context, orders []*model.Order) ([]*model.Order, error)
	RecordRun(ctx context.Context, channel model.SalesChannel, decisions []model.Decision) error
	GetDecision(ctx context.Context, orderID string) (*model.Decision, error)
	GetRecentDecisions(ctx context.Context) ([]model.Decision, error)
	FlushOld(ctx context.Context) (int64, error)
	Close() error
}

// postgresStorage обеспечивает взаимодействие с базой данных PostgreSQL.
// Это конкретная реализация интерфейса Storage.
type postgresStorage struct {
	db     *sqlx.DB
	tracer trace.Tracer // Для трассировки
}

// New создает подключение к БД, применяет миграции и возвращает
// экземпляр, реализующий интерфейс Storage.
func New(dbURL, migrationsPath string) (Storage, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	// Запуск миграций
	if err := runMigrations(dbURL, migrationsPath); err != nil {
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	return &postgresStorage{
		db:     db,
		tracer: otel.Tracer("postgres-storage"), // Инициализация трейсера
	}, nil
}

// runMigrations выполняет миграции БД до последней версии.
func runMigrations(dbURL, migrationsPath string) error {
	log.Println("Поиск и применение миграций...")

	// Важно: 'file://' префикс
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dbURL)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр миграции: %w", err)
	}

	// Применяем миграции "вверх"
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("не удалось выполнить миграции: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("не удалось получить версию миграции: %w", err)
	}

	if dirty {
		log.Printf("БД в 'грязном' состоянии (dirty). Версия: %d. Рекомендуется проверка.", version)
	}

	log.Printf("Миграции успешно применены. Текущая версия БД: %d", version)
	return nil
}

// FilterNew возвращает только заказы, которых еще нет в БД.
// Повторная выгрузка площадки содержит и уже обработанные заказы -
// их экспортировать второй раз нельзя.
func (s *postgresStorage) FilterNew(ctx context.Context, orders []*model.Order) ([]*model.Order, error) {
	ctx, span := s.tracer.Start(ctx, "DB.FilterNew")
	defer span.End()

	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}

	query, args, err := sqlx.In(`SELECT order_id FROM orders WHERE order_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса отсева дублей: %w", err)
	}
	query = s.db.Rebind(query)

	var seen []string
	if err := s.db.SelectContext(ctx, &seen, query, args...); err != nil {
		metrics.DBErrors.WithLabelValues("filter_new").Inc() // Метрика ошибки
		return nil, fmt.Errorf("ошибка отсева дублей: %w", err)
	}

	seenSet := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	fresh := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		if _, ok := seenSet[o.OrderID]; !ok {
			fresh = append(fresh, o)
		}
	}
	log.Printf("Отсев дублей: %d заказов в выгрузке, %d новых.", len(orders), len(fresh))
	return fresh, nil
}

// RecordRun сохраняет запуск и все решения маршрутизации в одной транзакции.
// Либо запуск записан целиком, либо его как будто не было.
func (s *postgresStorage) RecordRun(ctx context.Context, channel model.SalesChannel, decisions []model.Decision) (err error) {
	ctx, span := s.tracer.Start(ctx, "DB.RecordRun")
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}

	// Используем defer с функцией, чтобы корректно обработать panic и ошибки
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Printf("Ошибка отката транзакции (после ошибки: %v): %v", err, rbErr)
			}
		}
	}()

	runQuery := `INSERT INTO program_runs (channel, orders_count) VALUES ($1, $2) RETURNING id`
	var runID int
	if err = tx.GetContext(ctx, &runID, runQuery, channel, len(decisions)); err != nil {
		metrics.DBErrors.WithLabelValues("record_run").Inc() // Метрика ошибки
		return fmt.Errorf("ошибка сохранения запуска: %w", err)
	}

	decisionQuery := `INSERT INTO orders (order_id, run_id, channel, carrier, tracked, weight, weight_available, size_class, category, total_value_eur, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, d := range decisions {
		if _, err = tx.ExecContext(ctx, decisionQuery, d.OrderID, runID, d.Channel, d.Carrier, d.Tracked,
			d.Weight, d.WeightAvailable, d.Size, d.Category, d.TotalValueEUR, d.RecordedAt); err != nil {
			metrics.DBErrors.WithLabelValues("record_run").Inc() // Метрика ошибки
			return fmt.Errorf("ошибка сохранения решения по заказу %s: %w", d.OrderID, err)
		}
	}

	err = tx.Commit()
	return err
}

// GetDecision извлекает решение маршрутизации по номеру заказа.
func (s *postgresStorage) GetDecision(ctx context.Context, orderID string) (*model.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "DB.GetDecision")
	defer span.End()

	var d model.Decision
	query := `SELECT order_id, channel, carrier, tracked, weight, weight_available, size_class, category, total_value_eur, recorded_at
		FROM orders WHERE order_id = $1`
	if err := s.db.GetContext(ctx, &d, query, orderID); err != nil {
		metrics.DBErrors.WithLabelValues("get_decision").Inc() // Метрика ошибки
		return nil, fmt.Errorf("не удалось получить решение по заказу: %w", err)
	}
	return &d, nil
}

// GetRecentDecisions извлекает решения последних запусков для прогрева кэша.
func (s *postgresStorage) GetRecentDecisions(ctx context.Context) ([]model.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "DB.GetRecentDecisions")
	defer span.End()

	var decisions []model.Decision
	query := `SELECT order_id, channel, carrier, tracked, weight, weight_available, size_class, category, total_value_eur, recorded_at
		FROM orders ORDER BY recorded_at DESC LIMIT 1000`
	if err := s.db.SelectContext(ctx, &decisions, query); err != nil {
		metrics.DBErrors.WithLabelValues("get_recent").Inc() // Метрика ошибки
		return nil, fmt.Errorf("ошибка получения решений для прогрева: %w", err)
	}
	return decisions, nil
}

// FlushOld удаляет заказы старше срока хранения. Возвращает число удаленных строк.
func (s *postgresStorage) FlushOld(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "DB.FlushOld")
	defer span.End()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM orders WHERE recorded_at < NOW() - make_interval(days => $1)`, retentionDays)
	if err != nil {
		metrics.DBErrors.WithLabelValues("flush_old").Inc() // Метрика ошибки
		return 0, fmt.Errorf("ошибка очистки старых заказов: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Очистка БД: удалено %d заказов старше %d дней.", deleted, retentionDays)
	}
	return deleted, nil
}

// Close закрывает соединение с БД.
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
