package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"go.uber.org/zap"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads storefront catalog exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	log         *zap.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, log *zap.Logger) *CSVImporter {
	if log == nil {
		log = zap.NewNop()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // continuation rows may be short
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		log:         log.Named("importer"),
	}
}

type csvRow struct {
	line          int
	ID            string
	Name          string
	Desc          string
	Price         string
	OriginalPrice string
	Category      string
	Sizes         string
	Stock         string
	ImageURLs     []string
}

// Run parses CSV rows and upserts one product per named row. Rows without a
// name carry extra images for the product above them.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: missing name column")
	}

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.line = line

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current == nil {
			return imported, fmt.Errorf("line %d: image row before any product", line)
		}
		current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	i.log.Info("import finished", zap.Int("products", imported))
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.product()
	if err != nil {
		return fmt.Errorf("line %d: %w", row.line, err)
	}
	saved, err := i.productRepo.Upsert(ctx, p)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	i.log.Debug("product imported", zap.String("id", saved.ID), zap.String("name", saved.Name))
	return nil
}

func (r *csvRow) product() (domain.Product, error) {
	p := domain.Product{
		ID:       r.ID,
		Name:     r.Name,
		Category: domain.Category(strings.ToLower(r.Category)),
		Images:   r.ImageURLs,
	}
	if r.Desc != "" {
		desc := r.Desc
		p.Description = &desc
	}

	price, err := parseAmount(r.Price)
	if err != nil || price <= 0 {
		return p, fmt.Errorf("%w: price %q for %q", domain.ErrInvalidInput, r.Price, r.Name)
	}
	p.Price = price

	if r.OriginalPrice != "" {
		orig, err := parseAmount(r.OriginalPrice)
		if err != nil {
			return p, fmt.Errorf("%w: original_price %q for %q", domain.ErrInvalidInput, r.OriginalPrice, r.Name)
		}
		if orig > price {
			p.OriginalPrice = &orig
			p.IsSale = true
		}
	}

	if !p.Category.Valid() {
		return p, fmt.Errorf("%w: category %q for %q", domain.ErrInvalidInput, r.Category, r.Name)
	}

	for _, s := range strings.Split(r.Sizes, ";") {
		if s = strings.TrimSpace(s); s != "" {
			p.Sizes = append(p.Sizes, domain.Size(s))
		}
	}
	if len(p.Sizes) == 0 {
		return p, fmt.Errorf("%w: no sizes for %q", domain.ErrInvalidInput, r.Name)
	}

	if r.Stock != "" {
		stock, err := strconv.Atoi(r.Stock)
		if err != nil || stock < 0 {
			return p, fmt.Errorf("%w: stock_quantity %q for %q", domain.ErrInvalidInput, r.Stock, r.Name)
		}
		p.StockQuantity = stock
	}
	return p, nil
}

// parseAmount reads a whole-unit price. Exports sometimes carry a ".00" tail.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), ".00")
	return strconv.ParseInt(s, 10, 64)
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	images := splitImages(pick(record, index, "images"))

	if name == "" && len(images) == 0 {
		return nil
	}

	return &csvRow{
		ID:            pick(record, index, "id"),
		Name:          name,
		Desc:          pick(record, index, "description"),
		Price:         pick(record, index, "price"),
		OriginalPrice: pick(record, index, "original_price"),
		Category:      pick(record, index, "category"),
		Sizes:         pick(record, index, "sizes"),
		Stock:         pick(record, index, "stock_quantity"),
		ImageURLs:     images,
	}
}

func splitImages(s string) []string {
	var out []string
	for _, u := range strings.Split(s, ";") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
