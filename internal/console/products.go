package console

import (
	"context"
	"strconv"
	"strings"

	"inventory-management/internal/domain"
	"inventory-management/internal/service"
)

func (c *Console) productMenu(ctx context.Context) error {
	return c.submenu(ctx, "PRODUCT MANAGEMENT", []string{
		"Add New Product",
		"View All Products",
		"Search Products",
		"Update Product",
		"Delete Product",
		"View Categories",
	}, map[int]func(context.Context) error{
		1: c.addProduct,
		2: c.listProducts,
		3: c.searchProducts,
		4: c.updateProduct,
		5: c.deleteProduct,
		6: c.listCategories,
	})
}

func (c *Console) addProduct(ctx context.Context) error {
	c.section("Add New Product")

	var in service.ProductInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Product Name: ", &in.Name},
		{"Product Code (optional): ", &in.Code},
		{"Category: ", &in.Category},
		{"Description (optional): ", &in.Description},
	}
	for _, f := range fields {
		v, err := c.prompt(ctx, f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	raw, err := c.prompt(ctx, "Unit Price: ")
	if err != nil {
		return err
	}
	if in.UnitPrice, err = parseDecimal(raw, "price"); err != nil {
		return err
	}

	// blank stock fields take the bracketed default
	defaults := []struct {
		label string
		def   int
		dst   *domain.Optional[int]
	}{
		{"Stock Quantity", domain.DefaultStockQuantity, &in.StockQuantity},
		{"Reorder Level", domain.DefaultReorderLevel, &in.ReorderLevel},
	}
	for _, f := range defaults {
		raw, err := c.prompt(ctx, f.label + " [" + strconv.Itoa(f.def) + "]: ")
		if err != nil {
			return err
		}
		n, err := parseInt(raw, strings.ToLower(f.label))
		if err != nil {
			return err
		}
		*f.dst = domain.Some(n.OrElse(f.def))
	}

	if err := c.showSupplierChoices(ctx); err != nil {
		return err
	}
	raw, err = c.prompt(ctx, "Supplier ID: ")
	if err != nil {
		return err
	}
	if in.SupplierID, err = parseID(raw, "supplier ID"); err != nil {
		return err
	}

	saved, err := c.svc.Products.CreateProduct(ctx, in)
	if err != nil {
		return err
	}
	c.printf("✅ Product added successfully! (ID: %d)\n", saved.ID)
	return nil
}

func (c *Console) showSupplierChoices(ctx context.Context) error {
	suppliers, err := c.svc.Products.AllSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) == 0 {
		c.printf("No suppliers available. Add a supplier first.\n")
		return nil
	}
	c.printf("\nAvailable suppliers:\n")
	for _, s := range suppliers {
		c.printf("  %d. %s\n", s.ID, s.DisplayName())
	}
	return nil
}

func (c *Console) listProducts(ctx context.Context) error {
	c.section("All Products")
	products, err := c.svc.Products.FindAllProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.printf("No products found.\n")
		return nil
	}
	c.productTable(products)
	c.printf("\nTotal products: %d\n", len(products))
	return nil
}

func (c *Console) searchProducts(ctx context.Context) error {
	c.section("Search Products")
	c.printf("1. By name\n2. By category\n3. By product code\n")
	mode, err := c.prompt(ctx, "Search by: ")
	if err != nil {
		return err
	}

	var found []domain.ProductView
	switch mode {
	case "1":
		name, err := c.prompt(ctx, "Product name contains: ")
		if err != nil {
			return err
		}
		if found, err = c.svc.Products.SearchProductsByName(ctx, name); err != nil {
			return err
		}
	case "2":
		category, err := c.prompt(ctx, "Category: ")
		if err != nil {
			return err
		}
		if found, err = c.svc.Products.FindProductsByCategory(ctx, category); err != nil {
			return err
		}
	case "3":
		code, err := c.prompt(ctx, "Product code: ")
		if err != nil {
			return err
		}
		match, err := c.svc.Products.FindProductByCode(ctx, code)
		if err != nil {
			return err
		}
		if p, ok := match.Get(); ok {
			found = []domain.ProductView{p}
		}
	default:
		return inputError("Invalid search option: " + mode)
	}

	if len(found) == 0 {
		c.printf("No products match.\n")
		return nil
	}
	c.productTable(found)
	c.printf("\nFound %s\n", plural(len(found), "product"))
	return nil
}

func (c *Console) findProduct(ctx context.Context) (domain.ProductView, bool, error) {
	id, err := c.promptID(ctx, "Product ID: ")
	if err != nil {
		return domain.ProductView{}, false, err
	}
	found, err := c.svc.Products.FindProductByID(ctx, id)
	if err != nil {
		return domain.ProductView{}, false, err
	}
	product, ok := found.Get()
	if !ok {
		c.printf("❌ Product not found with ID: %d\n", id)
		return domain.ProductView{}, false, nil
	}
	c.productDetails(product)
	return product, true, nil
}

func (c *Console) updateProduct(ctx context.Context) error {
	c.section("Update Product")
	current, ok, err := c.findProduct(ctx)
	if err != nil || !ok {
		return err
	}

	c.printf("\nEnter new values (press Enter to keep current value, %q to clear):\n", clearMarker)
	in := service.ProductInput{
		UnitPrice:     domain.Some(current.UnitPrice),
		StockQuantity: domain.Some(current.StockQuantity),
		ReorderLevel:  domain.Some(current.ReorderLevel),
		SupplierID:    domain.Some(current.SupplierID),
	}

	raw, err := c.prompt(ctx, "Name [" + current.Name + "]: ")
	if err != nil {
		return err
	}
	in.Name = keep(raw, current.Name)

	if raw, err = c.prompt(ctx, "Code [" + current.Code.OrElse("") + "]: "); err != nil {
		return err
	}
	in.Code = keepOptional(raw, current.Code)

	if raw, err = c.prompt(ctx, "Category [" + current.Category + "]: "); err != nil {
		return err
	}
	in.Category = keep(raw, current.Category)

	if raw, err = c.prompt(ctx, "Description [" + current.Description.OrElse("") + "]: "); err != nil {
		return err
	}
	in.Description = keepOptional(raw, current.Description)

	if raw, err = c.prompt(ctx, "Unit Price [" + current.UnitPrice.StringFixed(2) + "]: "); err != nil {
		return err
	}
	if raw != "" {
		if in.UnitPrice, err = parseDecimal(raw, "price"); err != nil {
			return err
		}
	}

	numbers := []struct {
		label   string
		current int
		dst     *domain.Optional[int]
	}{
		{"Stock Quantity", current.StockQuantity, &in.StockQuantity},
		{"Reorder Level", current.ReorderLevel, &in.ReorderLevel},
	}
	for _, f := range numbers {
		raw, err := c.prompt(ctx, f.label + " [" + strconv.Itoa(f.current) + "]: ")
		if err != nil {
			return err
		}
		if raw == "" {
			continue
		}
		if *f.dst, err = parseInt(raw, strings.ToLower(f.label)); err != nil {
			return err
		}
	}

	if raw, err = c.prompt(ctx, "Supplier ID [" + strconv.FormatInt(current.SupplierID, 10) + "]: "); err != nil {
		return err
	}
	if raw != "" {
		if in.SupplierID, err = parseID(raw, "supplier ID"); err != nil {
			return err
		}
	}

	if _, err := c.svc.Products.UpdateProduct(ctx, current.ID, in); err != nil {
		return err
	}
	c.printf("✅ Product updated successfully!\n")
	return nil
}

func (c *Console) deleteProduct(ctx context.Context) error {
	c.section("Delete Product")
	product, ok, err := c.findProduct(ctx)
	if err != nil || !ok {
		return err
	}

	sure, err := c.confirm(ctx, "Are you sure you want to delete " + product.DisplayName() + "? (y/N): ")
	if err != nil {
		return err
	}
	if !sure {
		c.printf("Delete operation cancelled.\n")
		return nil
	}

	if _, err := c.svc.Products.DeleteProduct(ctx, product.ID); err != nil {
		return err
	}
	c.printf("✅ Product deleted successfully!\n")
	return nil
}

func (c *Console) listCategories(ctx context.Context) error {
	c.section("Product Categories")
	categories, err := c.svc.Products.DistinctCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		c.printf("No categories yet.\n")
		return nil
	}
	for _, category := range categories {
		c.printf("  - %s\n", category)
	}
	return nil
}
