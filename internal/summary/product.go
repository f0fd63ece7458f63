package summary

import "inventory/internal/core"

// ProductRow is one normalized inventory grid row.
type ProductRow struct {
	Serial        int           `json:"serial"`
	ProductID     string        `json:"productId"`
	Name          string        `json:"name"`
	Price         string        `json:"price"`
	Rating        string        `json:"rating"`
	StockQuantity string        `json:"stockQuantity"`
	Category      string        `json:"category"`
	Amount        float64       `json:"amount"`
	CreatedAt     core.DateTime `json:"createdAt"`
}

// ProductCategoryTotal is one category partition of the inventory rollup.
type ProductCategoryTotal struct {
	Category      string  `json:"category"`
	Total         float64 `json:"total"`
	StockQuantity float64 `json:"stockQuantity"`
}

// ProductSummary is the full aggregation result for the inventory domain.
// Total and the partition totals are stock value: price times quantity.
type ProductSummary struct {
	Rows       []ProductRow           `json:"rows"`
	Total      float64                `json:"total"`
	ByCategory []ProductCategoryTotal `json:"byCategory"`
	ByMonth    []MonthTotal           `json:"byMonth"`
}

// categoryOf resolves the rollup key for a product. With CategoryFromName
// set the product name doubles as the category when none is stored, which
// degenerates the rollup to per-product rows; that is the upstream contract.
func categoryOf(p core.Product, opts Options) string {
	if p.Category != "" {
		return p.Category
	}
	if opts.CategoryFromName && p.Name != "" {
		return p.Name
	}
	return Uncategorized
}

// Products normalizes the fetched product set and computes stock-value
// totals overall, per category and per creation month.
func Products(records []core.Product, opts Options) ProductSummary {
	s := ProductSummary{Rows: make([]ProductRow, 0, len(records))}
	byCat := newOrdered[ProductCategoryTotal]()
	byMonth := newOrdered[float64]()

	for i, p := range records {
		amount := p.Price.Or(0) * p.StockQuantity.Or(0)
		category := categoryOf(p, opts)
		s.Rows = append(s.Rows, ProductRow{
			Serial:        i + 1,
			ProductID:     stringOr(p.ProductID, NotAvailable),
			Name:          stringOr(p.Name, NotAvailable),
			Price:         displayNumber(p.Price),
			Rating:        displayNumber(p.Rating),
			StockQuantity: displayNumber(p.StockQuantity),
			Category:      category,
			Amount:        amount,
			CreatedAt:     p.CreatedAt,
		})

		s.Total += amount
		cat := byCat.at(category)
		cat.Total += amount
		cat.StockQuantity += p.StockQuantity.Or(0)
		*byMonth.at(opts.monthKey(p.CreatedAt)) += amount
	}

	byCat.each(func(key string, v *ProductCategoryTotal) {
		v.Category = key
		s.ByCategory = append(s.ByCategory, *v)
	})
	byMonth.each(func(key string, total *float64) {
		s.ByMonth = append(s.ByMonth, MonthTotal{Month: key, Total: *total})
	})
	return s
}
