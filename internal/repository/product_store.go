package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-management/internal/database"
	"inventory-management/internal/domain"
	"inventory-management/internal/metrics"
	apperrors "inventory-management/pkg/errors"

	"go.uber.org/zap"
)

const productSelect = `SELECT p.product_id, p.product_name, p.product_code, p.category, p.description, p.unit_price,
	p.stock_quantity, p.reorder_level, p.supplier_id, p.is_active, p.created_date, p.updated_date,
	s.company_name AS supplier_name, s.rating AS supplier_rating
	FROM products p LEFT JOIN suppliers s ON p.supplier_id = s.supplier_id`

// ProductStore is the SQL implementation of ProductRepository
type ProductStore struct {
	sqlStore
}

var _ ProductRepository = (*ProductStore)(nil)

func NewProductStore(db *database.DB, logger *zap.Logger, m *metrics.Metrics) *ProductStore {
	return &ProductStore{sqlStore{db: db, logger: logger, metrics: m, entity: "product"}}
}

func scanProductView(row rowScanner) (domain.ProductView, error) {
	var v domain.ProductView
	p := &v.Product
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Category, &p.Description, &p.UnitPrice,
		&p.StockQuantity, &p.ReorderLevel, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&v.SupplierName, &v.SupplierRating)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return v, err
}

func activeProducts() *activeQuery {
	return selectActive(productSelect, "p")
}

func (r *ProductStore) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	r.logger.Debug("Saving new product", zap.String("product_name", p.Name))

	ts := now()
	err := r.withConn(ctx, "save", func(conn *sql.Conn) error {
		query := r.db.Rebind(`INSERT INTO products (product_name, product_code, category, description, unit_price,
			stock_quantity, reorder_level, supplier_id, is_active, created_date, updated_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?) RETURNING product_id`)

		var id int64
		err := conn.QueryRowContext(ctx, query, p.Name, p.Code, p.Category, p.Description, p.UnitPrice,
			p.StockQuantity, p.ReorderLevel, p.SupplierID, ts, ts).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return apperrors.NewPersistenceError("Creating product failed, no rows affected.", ErrNoRowsAffected)
		case err != nil:
			return err
		case id <= 0:
			return apperrors.NewPersistenceError("Creating product failed, no ID obtained.", ErrNoGeneratedID)
		}
		p.ID = id
		return nil
	})
	if err != nil {
		r.logger.Error("Error saving product", zap.String("product_name", p.Name), zap.Error(err))
		return nil, persistenceError(fmt.Sprintf("failed to save product %q", p.Name), err)
	}

	p.AuditInfo = domain.AuditInfo{IsActive: true, CreatedAt: ts, UpdatedAt: ts}
	r.logger.Info("Product saved successfully", zap.Int64("product_id", p.ID))
	return p, nil
}

func (r *ProductStore) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	r.logger.Debug("Updating product", zap.Int64("product_id", p.ID))

	ts := now()
	err := r.withConn(ctx, "update", func(conn *sql.Conn) error {
		affected, err := r.exec(ctx, conn, `UPDATE products SET product_name = ?, product_code = ?, category = ?,
			description = ?, unit_price = ?, stock_quantity = ?, reorder_level = ?, supplier_id = ?, updated_date = ?
			WHERE product_id = ? AND is_active = TRUE`,
			p.Name, p.Code, p.Category, p.Description, p.UnitPrice, p.StockQuantity, p.ReorderLevel, p.SupplierID, ts, p.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.NewPersistenceError(
				fmt.Sprintf("Updating product failed, product not found: %d", p.ID), ErrNoRowsAffected)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Error updating product", zap.Int64("product_id", p.ID), zap.Error(err))
		return nil, persistenceError(fmt.Sprintf("failed to update product %d", p.ID), err)
	}

	p.UpdatedAt = ts
	r.logger.Info("Product updated successfully", zap.Int64("product_id", p.ID))
	return p, nil
}

func (r *ProductStore) FindByID(ctx context.Context, id int64) (domain.Optional[domain.ProductView], error) {
	r.logger.Debug("Finding product by ID", zap.Int64("product_id", id))
	return r.one(ctx, "find_by_id", activeProducts().Where("p.product_id = ?", id),
		fmt.Sprintf("failed to find product %d", id))
}

func (r *ProductStore) FindByCode(ctx context.Context, code string) (domain.Optional[domain.ProductView], error) {
	r.logger.Debug("Finding product by code", zap.String("product_code", code))
	return r.one(ctx, "find_by_code", activeProducts().Where("p.product_code = ?", code),
		fmt.Sprintf("failed to find product by code %q", code))
}

func (r *ProductStore) FindAll(ctx context.Context) ([]domain.ProductView, error) {
	return r.list(ctx, "find_all", activeProducts().OrderBy("p.product_name"), "failed to find products")
}

func (r *ProductStore) FindByName(ctx context.Context, name string) ([]domain.ProductView, error) {
	r.logger.Debug("Finding products by name", zap.String("name", name))
	return r.list(ctx, "find_by_name",
		activeProducts().
			Where(`LOWER(p.product_name) LIKE LOWER(?) ESCAPE '\'`, containsPattern(name)).
			OrderBy("p.product_name"),
		fmt.Sprintf("failed to find products by name %q", name))
}

func (r *ProductStore) FindByCategory(ctx context.Context, category string) ([]domain.ProductView, error) {
	r.logger.Debug("Finding products by category", zap.String("category", category))
	return r.list(ctx, "find_by_category",
		activeProducts().Where("p.category = ?", category).OrderBy("p.product_name"),
		fmt.Sprintf("failed to find products by category %q", category))
}

func (r *ProductStore) FindBySupplier(ctx context.Context, supplierID int64) ([]domain.ProductView, error) {
	r.logger.Debug("Finding products by supplier", zap.Int64("supplier_id", supplierID))
	return r.list(ctx, "find_by_supplier",
		activeProducts().Where("p.supplier_id = ?", supplierID).OrderBy("p.product_name"),
		fmt.Sprintf("failed to find products of supplier %d", supplierID))
}

// LowStock lists products at or below their reorder level, largest shortage first.
func (r *ProductStore) LowStock(ctx context.Context) ([]domain.ProductView, error) {
	return r.list(ctx, "low_stock",
		activeProducts().
			Where("p.stock_quantity <= p.reorder_level").
			OrderBy("(p.reorder_level - p.stock_quantity) DESC, p.product_name"),
		"failed to find low stock products")
}

func (r *ProductStore) OutOfStock(ctx context.Context) ([]domain.ProductView, error) {
	return r.list(ctx, "out_of_stock",
		activeProducts().Where("p.stock_quantity = 0").OrderBy("p.product_name"),
		"failed to find out of stock products")
}

// StockSummary returns every active product with its supplier details.
func (r *ProductStore) StockSummary(ctx context.Context) ([]domain.ProductView, error) {
	r.logger.Debug("Getting stock summary")
	return r.FindAll(ctx)
}

func (r *ProductStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.withConn(ctx, "categories", func(conn *sql.Conn) (err error) {
		categories, err = queryList(ctx, &r.sqlStore, conn,
			selectActive("SELECT DISTINCT category FROM products", "").OrderBy("category"),
			func(row rowScanner) (string, error) {
				var c string
				return c, row.Scan(&c)
			})
		return err
	})
	if err != nil {
		r.logger.Error("Error getting distinct categories", zap.Error(err))
		return nil, persistenceError("failed to get product categories", err)
	}
	return categories, nil
}

// UpdateStockQuantity overwrites the quantity on hand and nothing else.
func (r *ProductStore) UpdateStockQuantity(ctx context.Context, productID int64, quantity int) (bool, error) {
	r.logger.Debug("Updating stock quantity", zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	var affected int64
	err := r.withConn(ctx, "update_stock", func(conn *sql.Conn) (err error) {
		affected, err = r.exec(ctx, conn,
			`UPDATE products SET stock_quantity = ?, updated_date = ? WHERE product_id = ? AND is_active = TRUE`,
			quantity, now(), productID)
		return err
	})
	if err != nil {
		r.logger.Error("Error updating stock quantity", zap.Int64("product_id", productID), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to update stock of product %d", productID), err)
	}

	if affected == 0 {
		r.logger.Warn("No product found to update stock", zap.Int64("product_id", productID))
		return false, nil
	}
	r.logger.Info("Stock quantity updated", zap.Int64("product_id", productID), zap.Int("quantity", quantity))
	return true, nil
}

func (r *ProductStore) Delete(ctx context.Context, id int64) (bool, error) {
	r.logger.Debug("Soft deleting product", zap.Int64("product_id", id))

	var affected int64
	err := r.withConn(ctx, "delete", func(conn *sql.Conn) (err error) {
		affected, err = r.exec(ctx, conn,
			`UPDATE products SET is_active = FALSE, updated_date = ? WHERE product_id = ? AND is_active = TRUE`, now(), id)
		return err
	})
	if err != nil {
		r.logger.Error("Error deleting product", zap.Int64("product_id", id), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to delete product %d", id), err)
	}

	if affected == 0 {
		r.logger.Warn("No product found to delete", zap.Int64("product_id", id))
		return false, nil
	}
	r.logger.Info("Product soft deleted successfully", zap.Int64("product_id", id))
	return true, nil
}

func (r *ProductStore) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.withConn(ctx, "exists", func(conn *sql.Conn) (err error) {
		n, err = r.count(ctx, conn, selectActive("SELECT COUNT(*) FROM products", "").Where("product_id = ?", id))
		return err
	})
	if err != nil {
		r.logger.Error("Error checking if product exists", zap.Int64("product_id", id), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to check product %d", id), err)
	}
	return n > 0, nil
}

func (r *ProductStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.withConn(ctx, "count", func(conn *sql.Conn) (err error) {
		n, err = r.count(ctx, conn, selectActive("SELECT COUNT(*) FROM products", ""))
		return err
	})
	if err != nil {
		r.logger.Error("Error counting products", zap.Error(err))
		return 0, persistenceError("failed to count products", err)
	}
	return n, nil
}

func (r *ProductStore) one(ctx context.Context, operation string, q *activeQuery, failure string) (domain.Optional[domain.ProductView], error) {
	var found domain.Optional[domain.ProductView]
	err := r.withConn(ctx, operation, func(conn *sql.Conn) (err error) {
		found, err = queryOne(ctx, &r.sqlStore, conn, q, scanProductView)
		return err
	})
	if err != nil {
		r.logger.Error("Error finding product", zap.String("operation", operation), zap.Error(err))
		return domain.None[domain.ProductView](), persistenceError(failure, err)
	}
	return found, nil
}

func (r *ProductStore) list(ctx context.Context, operation string, q *activeQuery, failure string) ([]domain.ProductView, error) {
	var products []domain.ProductView
	err := r.withConn(ctx, operation, func(conn *sql.Conn) (err error) {
		products, err = queryList(ctx, &r.sqlStore, conn, q, scanProductView)
		return err
	})
	if err != nil {
		r.logger.Error("Error listing products", zap.String("operation", operation), zap.Error(err))
		return nil, persistenceError(failure, err)
	}
	r.logger.Debug("Found products", zap.String("operation", operation), zap.Int("count", len(products)))
	return products, nil
}
