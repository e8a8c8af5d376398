package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"stockconsole/internal/common"
)

// TimestampLayout is how GeneratedAt is rendered in exports.
const TimestampLayout = "2006-01-02 15:04:05"

var productColumns = []string{"Product Name", "SKU", "Description", "Current Stock", "Min Stock", "Status"}

// ToCSV renders the report as CSV text. It is deterministic for a given
// report, GeneratedAt included.
func ToCSV(r *Report) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes cannot fail.
	_ = WriteCSV(&buf, r)
	return buf.Bytes()
}

// WriteCSV streams the CSV rendering of r to w. A nil report writes nothing.
func WriteCSV(w io.Writer, r *Report) error {
	if r == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	blank := []string{""}

	rows := [][]string{
		{fmt.Sprintf("Warehouse Report: %s (%s)", r.Warehouse.Name, r.Warehouse.Location)},
		{"Generated on: " + r.GeneratedAt.Format(TimestampLayout)},
		blank,
		{"SUMMARY"},
		{"Total Products", strconv.Itoa(r.TotalProducts)},
		{"Low Stock Items", strconv.Itoa(r.LowStockCount)},
		{"Estimated Total Value", r.TotalStockValue.StringFixed(2)},
		blank,
		{"PRODUCTS BY SUPPLIER"},
	}

	r.EachGroup(func(_ string, g *SupplierGroup) bool {
		s := g.Supplier
		rows = append(rows, blank, []string{"Supplier: " + s.Name})
		if v := common.SafeString(s.ContactPerson); v != "" {
			rows = append(rows, []string{"Contact Person: " + v})
		}
		if v := common.SafeString(s.Email); v != "" {
			rows = append(rows, []string{"Email: " + v})
		}
		if v := common.SafeString(s.Phone); v != "" {
			rows = append(rows, []string{"Phone: " + v})
		}
		rows = append(rows, productColumns)
		for _, p := range g.Products {
			rows = append(rows, []string{
				p.Name,
				p.SKU,
				common.SafeString(p.Description),
				strconv.Itoa(p.CurrentStock),
				strconv.Itoa(p.MinStockLevel),
				p.Status(),
			})
		}
		return true
	})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report csv: %w", err)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the suggested download name for the report's CSV export.
func FileName(r *Report) string {
	return fmt.Sprintf("warehouse-report-%s-%s.csv",
		whitespace.ReplaceAllString(r.Warehouse.Name, "-"),
		r.GeneratedAt.Format("2006-01-02"))
}
