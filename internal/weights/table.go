package weights

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"order_router/internal/model"
)

// SKUInfo - строка весовой таблицы для одного внутреннего кода.
// Вес упаковки хранится в двух колонках: карточные категории пакуются иначе.
type SKUInfo struct {
	Weight         float64
	PackageCards   float64 // колонка 'Package DP'
	PackageGeneral float64 // колонка 'Package LP'
	Size           model.SizeClass
	Title          string

	// Нечисловое значение в весовых колонках не теряется, а помечает строку:
	// заказ с таким SKU получает вес "недоступен".
	weightOK  bool
	packageOK bool
}

// weightTableHeader - ожидаемый заголовок weights.csv.
var weightTableHeader = []string{"sku", "weight", "package_dp", "package_lp", "size", "title"}

// LoadWeightTable читает весовую таблицу из CSV, ключ - нормализованный SKU.
func LoadWeightTable(path string) (map[string]SKUInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть весовую таблицу: %w", err)
	}
	defer f.Close()
	return readWeightTable(f)
}

func readWeightTable(r io.Reader) (map[string]SKUInfo, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("заголовок весовой таблицы: %w", err)
	}
	for i, want := range weightTableHeader {
		if i >= len(header) || header[i] != want {
			return nil, fmt.Errorf("весовая таблица: ожидалась колонка %q на позиции %d", want, i+1)
		}
	}

	table := make(map[string]SKUInfo)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("строка весовой таблицы: %w", err)
		}
		if len(row) < 5 {
			continue
		}
		sku := strings.TrimSpace(row[0])
		if sku == "" {
			continue
		}
		info := SKUInfo{Size: parseSizeTag(row[4])}
		info.Weight, info.weightOK = cellToFloat(row[1])
		var cardsOK, generalOK bool
		info.PackageCards, cardsOK = cellToFloat(row[2])
		info.PackageGeneral, generalOK = cellToFloat(row[3])
		info.packageOK = cardsOK && generalOK
		if len(row) > 5 {
			info.Title = strings.TrimSpace(row[5])
		}
		table[sku] = info
	}
	log.Printf("Весовая таблица загружена: %d SKU.", len(table))
	return table, nil
}

// parseSizeTag переводит метку колонки size в габаритный класс.
// Пустая метка означает самый маленький класс.
func parseSizeTag(raw string) model.SizeClass {
	switch strings.TrimSpace(strings.ToUpper(raw)) {
	case "MKS":
		return model.SizeMedium
	case "DKS":
		return model.SizeLarge
	default:
		return model.SizeSmall
	}
}

func cellToFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LoadSKUMapping читает таблицу алиасов: SKU площадки -> внутренний код.
// Дубликат алиаса не перетирает первый вариант, но возвращается список
// дубликатов для оповещения оператора.
func LoadSKUMapping(path string) (map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось открыть таблицу алиасов SKU: %w", err)
	}
	defer f.Close()
	return readSKUMapping(f)
}

func readSKUMapping(r io.Reader) (map[string]string, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil { // заголовок
		return nil, nil, fmt.Errorf("заголовок таблицы алиасов: %w", err)
	}

	mapping := make(map[string]string)
	var duplicates []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("строка таблицы алиасов: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		sku := strings.TrimSpace(row[0])
		label := strings.TrimSpace(row[1])
		if sku == "" {
			continue
		}
		if _, exists := mapping[sku]; exists {
			log.Printf("Дубликат SKU в таблице алиасов: %s", sku)
			duplicates = append(duplicates, sku)
			continue
		}
		mapping[sku] = label
	}
	log.Printf("Таблица алиасов SKU загружена: %d записей.", len(mapping))
	return mapping, duplicates, nil
}
