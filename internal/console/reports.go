package console

import (
	"context"
	"strconv"
)

func (c *Console) reportMenu(ctx context.Context) error {
	return c.submenu(ctx, "REPORTS & ANALYTICS", []string{
		"Stock Summary",
		"Low Stock Report",
		"Category Breakdown",
		"Supplier Performance",
		"Inventory Valuation",
	}, map[int]func(context.Context) error{
		1: c.stockSummary,
		2: c.lowStockAlerts,
		3: c.categoryBreakdown,
		4: c.supplierPerformance,
		5: c.valuation,
	})
}

func (c *Console) stockMenu(ctx context.Context) error {
	return c.submenu(ctx, "STOCK MANAGEMENT", []string{
		"View Current Stock Levels",
		"Low Stock Alerts",
		"Reorder List",
		"Update Stock Quantity",
	}, map[int]func(context.Context) error{
		1: c.stockLevels,
		2: c.lowStockAlerts,
		3: c.reorderList,
		4: c.updateStock,
	})
}

func (c *Console) settingsMenu(ctx context.Context) error {
	return c.submenu(ctx, "SYSTEM SETTINGS", []string{
		"Test Database Connection",
		"System Statistics",
	}, map[int]func(context.Context) error{
		1: c.testConnection,
		2: c.statistics,
	})
}

func (c *Console) stockSummary(ctx context.Context) error {
	c.section("Stock Summary")
	report, err := c.svc.Reports.StockSummary(ctx)
	if err != nil {
		return err
	}
	c.printf("Total products:   %d\n", report.TotalProducts)
	c.printf("Total units:      %d\n", report.TotalUnits)
	c.printf("Total value:      %s\n", money(report.TotalValue))
	c.printf("Low stock:        %d\n", report.LowStockCount)
	c.printf("Out of stock:     %d\n", report.OutOfStockCount)
	return nil
}

func (c *Console) stockLevels(ctx context.Context) error {
	c.section("Current Stock Levels")
	products, err := c.svc.Products.StockSummary(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.printf("No products found.\n")
		return nil
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.DisplayName(),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.ReorderLevel),
			string(p.StockStatus()),
			money(p.StockValue()),
		})
	}
	c.table([]string{"ID", "Product", "Stock", "Reorder", "Status", "Value"}, rows)
	return nil
}

func (c *Console) lowStockAlerts(ctx context.Context) error {
	c.section("Low Stock Alerts")
	products, err := c.svc.Products.LowStockProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.printf("✅ All products are above their reorder level.\n")
		return nil
	}
	rows := make([][]string, 0, len(products))
	out := 0
	for _, p := range products {
		if p.IsOutOfStock() {
			out++
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.DisplayName(),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.ReorderLevel),
			strconv.Itoa(p.Shortage()),
			string(p.StockStatus()),
		})
	}
	c.table([]string{"ID", "Product", "Stock", "Reorder", "Shortage", "Status"}, rows)
	c.printf("\n⚠️  %s at or below reorder level, %d out of stock\n", plural(len(products), "product"), out)
	return nil
}

func (c *Console) reorderList(ctx context.Context) error {
	c.section("Reorder List")
	lines, err := c.svc.Reports.ReorderList(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		c.printf("Nothing to reorder.\n")
		return nil
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			strconv.FormatInt(l.Product.ID, 10),
			l.Product.DisplayName(),
			strconv.Itoa(l.Product.StockQuantity),
			strconv.Itoa(l.Product.ReorderLevel),
			strconv.Itoa(l.SuggestedOrder),
			l.Product.SupplierName.OrElse(notAvailable),
		})
	}
	c.table([]string{"ID", "Product", "Stock", "Reorder", "Order", "Supplier"}, rows)
	return nil
}

func (c *Console) categoryBreakdown(ctx context.Context) error {
	c.section("Category Breakdown")
	categories, err := c.svc.Reports.CategoryBreakdown(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		c.printf("No products found.\n")
		return nil
	}
	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, []string{
			cat.Category,
			strconv.Itoa(cat.ProductCount),
			strconv.Itoa(cat.TotalUnits),
			money(cat.TotalValue),
		})
	}
	c.table([]string{"Category", "Products", "Units", "Value"}, rows)
	return nil
}

func (c *Console) supplierPerformance(ctx context.Context) error {
	c.section("Supplier Performance")
	report, err := c.svc.Reports.SupplierPerformance(ctx)
	if err != nil {
		return err
	}
	if len(report.Suppliers) == 0 {
		c.printf("No suppliers found.\n")
		return nil
	}
	rows := make([][]string, 0, len(report.Suppliers))
	for i, s := range report.Suppliers {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.CompanyName, rating(s.Rating)})
	}
	c.table([]string{"Rank", "Supplier", "Rating"}, rows)
	avg := notAvailable
	if report.AverageRating.Valid {
		avg = report.AverageRating.Decimal.StringFixed(2)
	}
	c.printf("\nRated suppliers: %d, average rating: %s\n", report.RatedCount, avg)
	return nil
}

func (c *Console) valuation(ctx context.Context) error {
	c.section("Inventory Valuation")
	v, err := c.svc.Reports.Valuation(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(v.Categories))
	for _, cat := range v.Categories {
		rows = append(rows, []string{cat.Category, money(cat.TotalValue)})
	}
	c.table([]string{"Category", "Value"}, rows)
	c.printf("\nTotal inventory value: %s\n", money(v.TotalValue))
	return nil
}

func (c *Console) updateStock(ctx context.Context) error {
	c.section("Update Stock Quantity")
	product, ok, err := c.findProduct(ctx)
	if err != nil || !ok {
		return err
	}

	raw, err := c.prompt(ctx, "New quantity: ")
	if err != nil {
		return err
	}
	quantity, err := parseInt(raw, "quantity")
	if err != nil {
		return err
	}
	n, ok := quantity.Get()
	if !ok {
		return inputError("Quantity is required")
	}

	updated, err := c.svc.Products.UpdateStockQuantity(ctx, product.ID, n)
	if err != nil {
		return err
	}
	if !updated {
		c.printf("❌ Product not found with ID: %d\n", product.ID)
		return nil
	}
	c.printf("✅ Stock updated: %s now has %d units\n", product.DisplayName(), n)
	if n <= product.ReorderLevel {
		c.printf("⚠️  Stock is at or below the reorder level (%d)\n", product.ReorderLevel)
	}
	return nil
}

func (c *Console) testConnection(ctx context.Context) error {
	c.section("Database Connection")
	if c.svc.DB.TestConnection(ctx) {
		c.printf("✅ Database connection OK\n")
		return nil
	}
	c.logger.Warn("Database connection test failed")
	c.printf("❌ Database connection failed\n")
	return nil
}

func (c *Console) statistics(ctx context.Context) error {
	c.section("System Statistics")
	suppliers, err := c.svc.Suppliers.SupplierCount(ctx)
	if err != nil {
		return err
	}
	products, err := c.svc.Products.ProductCount(ctx)
	if err != nil {
		return err
	}
	categories, err := c.svc.Products.DistinctCategories(ctx)
	if err != nil {
		return err
	}
	c.printf("Active suppliers:  %d\n", suppliers)
	c.printf("Active products:   %d\n", products)
	c.printf("Categories:        %d\n", len(categories))
	return nil
}
