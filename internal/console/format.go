package console

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"inventory-management/internal/domain"

	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

func (c *Console) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func (c *Console) section(title string) {
	c.printf("\n--- %s ---\n", title)
}

func (c *Console) supplierTable(suppliers []domain.Supplier) {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.CompanyName,
			s.ContactPerson.OrElse(notAvailable),
			s.Phone.OrElse(notAvailable),
			s.Email.OrElse(notAvailable),
			rating(s.Rating),
		})
	}
	c.table([]string{"ID", "Company", "Contact", "Phone", "Email", "Rating"}, rows)
}

func (c *Console) supplierDetails(s domain.Supplier) {
	c.printf("ID:             %d\n", s.ID)
	c.printf("Company Name:   %s\n", s.CompanyName)
	c.printf("Contact Person: %s\n", s.ContactPerson.OrElse(notAvailable))
	c.printf("Phone:          %s\n", s.Phone.OrElse(notAvailable))
	c.printf("Email:          %s\n", s.Email.OrElse(notAvailable))
	c.printf("Address:        %s\n", s.Address.OrElse(notAvailable))
	c.printf("Rating:         %s\n", rating(s.Rating))
}

func (c *Console) productTable(products []domain.ProductView) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Code.OrElse(notAvailable),
			p.Category,
			money(p.UnitPrice),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.ReorderLevel),
			string(p.StockStatus()),
			p.SupplierName.OrElse(notAvailable),
		})
	}
	c.table([]string{"ID", "Name", "Code", "Category", "Price", "Stock", "Reorder", "Status", "Supplier"}, rows)
}

func (c *Console) productDetails(p domain.ProductView) {
	c.printf("ID:             %d\n", p.ID)
	c.printf("Name:           %s\n", p.Name)
	c.printf("Code:           %s\n", p.Code.OrElse(notAvailable))
	c.printf("Category:       %s\n", p.Category)
	c.printf("Description:    %s\n", p.Description.OrElse(notAvailable))
	c.printf("Unit Price:     %s\n", money(p.UnitPrice))
	c.printf("Stock Quantity: %d\n", p.StockQuantity)
	c.printf("Reorder Level:  %d\n", p.ReorderLevel)
	c.printf("Status:         %s\n", p.StockStatus())
	c.printf("Supplier:       %s (ID: %d)\n", p.SupplierName.OrElse(notAvailable), p.SupplierID)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func rating(r decimal.NullDecimal) string {
	if !r.Valid {
		return notAvailable
	}
	return r.Decimal.StringFixed(1)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
