package console

import (
	"context"
	"strconv"

	"inventory-management/internal/domain"
	"inventory-management/internal/service"

	"github.com/shopspring/decimal"
)

const defaultTopSuppliers = 5

func (c *Console) supplierMenu(ctx context.Context) error {
	return c.submenu(ctx, "SUPPLIER MANAGEMENT", []string{
		"Add New Supplier",
		"View All Suppliers",
		"Search Suppliers",
		"Update Supplier",
		"Delete Supplier",
		"Top Rated Suppliers",
	}, map[int]func(context.Context) error{
		1: c.addSupplier,
		2: c.listSuppliers,
		3: c.searchSuppliers,
		4: c.updateSupplier,
		5: c.deleteSupplier,
		6: c.topSuppliers,
	})
}

func (c *Console) addSupplier(ctx context.Context) error {
	c.section("Add New Supplier")

	var in service.SupplierInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Company Name: ", &in.CompanyName},
		{"Contact Person: ", &in.ContactPerson},
		{"Phone: ", &in.Phone},
		{"Email: ", &in.Email},
		{"Address: ", &in.Address},
	}
	for _, f := range fields {
		v, err := c.prompt(ctx, f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	raw, err := c.prompt(ctx, "Rating (1.0-5.0, blank for none): ")
	if err != nil {
		return err
	}
	if in.Rating, err = parseDecimal(raw, "rating"); err != nil {
		return err
	}

	saved, err := c.svc.Suppliers.CreateSupplier(ctx, in)
	if err != nil {
		return err
	}
	c.printf("✅ Supplier added successfully! (ID: %d)\n", saved.ID)
	return nil
}

func (c *Console) listSuppliers(ctx context.Context) error {
	c.section("All Suppliers")
	suppliers, err := c.svc.Suppliers.FindAllSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) == 0 {
		c.printf("No suppliers found.\n")
		return nil
	}
	c.supplierTable(suppliers)
	c.printf("\nTotal suppliers: %d\n", len(suppliers))
	return nil
}

func (c *Console) searchSuppliers(ctx context.Context) error {
	c.section("Search Suppliers")
	c.printf("1. By company name\n2. By rating range\n")
	mode, err := c.prompt(ctx, "Search by: ")
	if err != nil {
		return err
	}

	var found []domain.Supplier
	switch mode {
	case "1":
		name, err := c.prompt(ctx, "Company name contains: ")
		if err != nil {
			return err
		}
		if found, err = c.svc.Suppliers.SearchSuppliersByName(ctx, name); err != nil {
			return err
		}
	case "2":
		minRating, err := c.promptRating(ctx, "Minimum rating: ")
		if err != nil {
			return err
		}
		maxRating, err := c.promptRating(ctx, "Maximum rating: ")
		if err != nil {
			return err
		}
		if found, err = c.svc.Suppliers.FindSuppliersByRatingRange(ctx, minRating, maxRating); err != nil {
			return err
		}
	default:
		return inputError("Invalid search option: " + mode)
	}

	if len(found) == 0 {
		c.printf("No suppliers match.\n")
		return nil
	}
	c.supplierTable(found)
	c.printf("\nFound %s\n", plural(len(found), "supplier"))
	return nil
}

func (c *Console) promptRating(ctx context.Context, label string) (decimal.Decimal, error) {
	raw, err := c.prompt(ctx, label)
	if err != nil {
		return decimal.Zero, err
	}
	r, err := parseDecimal(raw, "rating")
	if err != nil {
		return decimal.Zero, err
	}
	v, ok := r.Get()
	if !ok {
		return decimal.Zero, inputError("Rating is required")
	}
	return v, nil
}

// findSupplier prompts for an ID and prints the supplier. ok is false when
// nothing matched; the miss has already been reported.
func (c *Console) findSupplier(ctx context.Context) (domain.Supplier, bool, error) {
	id, err := c.promptID(ctx, "Supplier ID: ")
	if err != nil {
		return domain.Supplier{}, false, err
	}
	found, err := c.svc.Suppliers.FindSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, false, err
	}
	supplier, ok := found.Get()
	if !ok {
		c.printf("❌ Supplier not found with ID: %d\n", id)
		return domain.Supplier{}, false, nil
	}
	c.supplierDetails(supplier)
	return supplier, true, nil
}

func (c *Console) updateSupplier(ctx context.Context) error {
	c.section("Update Supplier")
	current, ok, err := c.findSupplier(ctx)
	if err != nil || !ok {
		return err
	}

	c.printf("\nEnter new values (press Enter to keep current value, %q to clear):\n", clearMarker)
	var in service.SupplierInput

	raw, err := c.prompt(ctx, "Company Name [" + current.CompanyName + "]: ")
	if err != nil {
		return err
	}
	in.CompanyName = keep(raw, current.CompanyName)

	optional := []struct {
		label   string
		current domain.Optional[string]
		dst     *string
	}{
		{"Contact Person", current.ContactPerson, &in.ContactPerson},
		{"Phone", current.Phone, &in.Phone},
		{"Email", current.Email, &in.Email},
		{"Address", current.Address, &in.Address},
	}
	for _, f := range optional {
		raw, err := c.prompt(ctx, f.label + " [" + f.current.OrElse("") + "]: ")
		if err != nil {
			return err
		}
		*f.dst = keepOptional(raw, f.current)
	}

	raw, err = c.prompt(ctx, "Rating [" + rating(current.Rating) + "]: ")
	if err != nil {
		return err
	}
	switch raw {
	case "":
		if current.Rating.Valid {
			in.Rating = domain.Some(current.Rating.Decimal)
		}
	case clearMarker:
		in.Rating = domain.None[decimal.Decimal]()
	default:
		if in.Rating, err = parseDecimal(raw, "rating"); err != nil {
			return err
		}
	}

	if _, err := c.svc.Suppliers.UpdateSupplier(ctx, current.ID, in); err != nil {
		return err
	}
	c.printf("✅ Supplier updated successfully!\n")
	return nil
}

func (c *Console) deleteSupplier(ctx context.Context) error {
	c.section("Delete Supplier")
	supplier, ok, err := c.findSupplier(ctx)
	if err != nil || !ok {
		return err
	}

	hasProducts, err := c.svc.Suppliers.SupplierHasProducts(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if hasProducts {
		c.printf("\n⚠️  Warning: This supplier has products associated with it.\n")
		c.printf("The products will keep referring to the deleted supplier.\n")
	}

	sure, err := c.confirm(ctx, "Are you sure you want to delete " + supplier.CompanyName + "? (y/N): ")
	if err != nil {
		return err
	}
	if !sure {
		c.printf("Delete operation cancelled.\n")
		return nil
	}

	outcome, err := c.svc.Suppliers.DeleteSupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if !outcome.Deleted {
		c.printf("❌ Supplier could not be deleted.\n")
		return nil
	}
	c.printf("✅ Supplier deleted successfully!\n")
	return nil
}

func (c *Console) topSuppliers(ctx context.Context) error {
	c.section("Top Rated Suppliers")
	raw, err := c.prompt(ctx, "How many suppliers [" + strconv.Itoa(defaultTopSuppliers) + "]: ")
	if err != nil {
		return err
	}
	limit, err := parseInt(raw, "number")
	if err != nil {
		return err
	}

	top, err := c.svc.Suppliers.TopSuppliers(ctx, limit.OrElse(defaultTopSuppliers))
	if err != nil {
		return err
	}
	if len(top) == 0 {
		c.printf("No rated suppliers yet.\n")
		return nil
	}
	c.supplierTable(top)
	return nil
}
