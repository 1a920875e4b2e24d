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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const supplierSelect = `SELECT supplier_id, company_name, contact_person, phone, email, address, rating,
	is_active, created_date, updated_date FROM suppliers`

// SupplierStore is the SQL implementation of SupplierRepository
type SupplierStore struct {
	sqlStore
}

var _ SupplierRepository = (*SupplierStore)(nil)

func NewSupplierStore(db *database.DB, logger *zap.Logger, m *metrics.Metrics) *SupplierStore {
	return &SupplierStore{sqlStore{db: db, logger: logger, metrics: m, entity: "supplier"}}
}

func scanSupplier(row rowScanner) (domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.Phone, &s.Email, &s.Address, &s.Rating,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, err
}

func (r *SupplierStore) Save(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	r.logger.Debug("Saving new supplier", zap.String("company_name", s.CompanyName))

	ts := now()
	err := r.withConn(ctx, "save", func(conn *sql.Conn) error {
		query := r.db.Rebind(`INSERT INTO suppliers (company_name, contact_person, phone, email, address, rating,
			is_active, created_date, updated_date) VALUES (?, ?, ?, ?, ?, ?, TRUE, ?, ?) RETURNING supplier_id`)

		var id int64
		err := conn.QueryRowContext(ctx, query, s.CompanyName, s.ContactPerson, s.Phone, s.Email, s.Address, s.Rating, ts, ts).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return apperrors.NewPersistenceError("Creating supplier failed, no rows affected.", ErrNoRowsAffected)
		case err != nil:
			return err
		case id <= 0:
			return apperrors.NewPersistenceError("Creating supplier failed, no ID obtained.", ErrNoGeneratedID)
		}
		s.ID = id
		return nil
	})
	if err != nil {
		r.logger.Error("Error saving supplier", zap.String("company_name", s.CompanyName), zap.Error(err))
		return nil, persistenceError(fmt.Sprintf("failed to save supplier %q", s.CompanyName), err)
	}

	s.AuditInfo = domain.AuditInfo{IsActive: true, CreatedAt: ts, UpdatedAt: ts}
	r.logger.Info("Supplier saved successfully", zap.Int64("supplier_id", s.ID))
	return s, nil
}

func (r *SupplierStore) Update(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	r.logger.Debug("Updating supplier", zap.Int64("supplier_id", s.ID))

	ts := now()
	err := r.withConn(ctx, "update", func(conn *sql.Conn) error {
		affected, err := r.exec(ctx, conn, `UPDATE suppliers SET company_name = ?, contact_person = ?, phone = ?, email = ?,
			address = ?, rating = ?, updated_date = ? WHERE supplier_id = ? AND is_active = TRUE`,
			s.CompanyName, s.ContactPerson, s.Phone, s.Email, s.Address, s.Rating, ts, s.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.NewPersistenceError("Updating supplier failed, no rows affected.", ErrNoRowsAffected)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Error updating supplier", zap.Int64("supplier_id", s.ID), zap.Error(err))
		return nil, persistenceError(fmt.Sprintf("failed to update supplier %d", s.ID), err)
	}

	s.UpdatedAt = ts
	r.logger.Info("Supplier updated successfully", zap.Int64("supplier_id", s.ID))
	return s, nil
}

func (r *SupplierStore) FindByID(ctx context.Context, id int64) (domain.Optional[domain.Supplier], error) {
	r.logger.Debug("Finding supplier by ID", zap.Int64("supplier_id", id))

	var found domain.Optional[domain.Supplier]
	err := r.withConn(ctx, "find_by_id", func(conn *sql.Conn) (err error) {
		found, err = queryOne(ctx, &r.sqlStore, conn,
			selectActive(supplierSelect, "").Where("supplier_id = ?", id), scanSupplier)
		return err
	})
	if err != nil {
		r.logger.Error("Error finding supplier by ID", zap.Int64("supplier_id", id), zap.Error(err))
		return domain.None[domain.Supplier](), persistenceError(fmt.Sprintf("failed to find supplier %d", id), err)
	}
	return found, nil
}

func (r *SupplierStore) FindAll(ctx context.Context) ([]domain.Supplier, error) {
	return r.list(ctx, "find_all", selectActive(supplierSelect, "").OrderBy("company_name"),
		"failed to find suppliers")
}

func (r *SupplierStore) FindByName(ctx context.Context, name string) ([]domain.Supplier, error) {
	r.logger.Debug("Finding suppliers by name", zap.String("name", name))
	return r.list(ctx, "find_by_name",
		selectActive(supplierSelect, "").
			Where(`LOWER(company_name) LIKE LOWER(?) ESCAPE '\'`, containsPattern(name)).
			OrderBy("company_name"),
		fmt.Sprintf("failed to find suppliers by name %q", name))
}

func (r *SupplierStore) FindByEmail(ctx context.Context, email string) (domain.Optional[domain.Supplier], error) {
	r.logger.Debug("Finding supplier by email", zap.String("email", email))

	var found domain.Optional[domain.Supplier]
	err := r.withConn(ctx, "find_by_email", func(conn *sql.Conn) (err error) {
		found, err = queryOne(ctx, &r.sqlStore, conn,
			selectActive(supplierSelect, "").Where("email = ?", email), scanSupplier)
		return err
	})
	if err != nil {
		r.logger.Error("Error finding supplier by email", zap.String("email", email), zap.Error(err))
		return domain.None[domain.Supplier](), persistenceError(fmt.Sprintf("failed to find supplier by email %q", email), err)
	}
	return found, nil
}

func (r *SupplierStore) FindByRatingRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Supplier, error) {
	r.logger.Debug("Finding suppliers by rating range", zap.String("min", min.String()), zap.String("max", max.String()))
	return r.list(ctx, "find_by_rating_range",
		selectActive(supplierSelect, "").
			Where("rating BETWEEN ? AND ?", min, max).
			OrderBy("rating DESC, company_name"),
		fmt.Sprintf("failed to find suppliers by rating range %s - %s", min, max))
}

func (r *SupplierStore) TopSuppliers(ctx context.Context, limit int) ([]domain.Supplier, error) {
	r.logger.Debug("Getting top suppliers", zap.Int("limit", limit))
	return r.list(ctx, "top_suppliers",
		selectActive(supplierSelect, "").
			OrderBy("rating DESC NULLS LAST, company_name").
			Limit(limit),
		"failed to get top suppliers")
}

func (r *SupplierStore) HasProducts(ctx context.Context, supplierID int64) (bool, error) {
	var n int64
	err := r.withConn(ctx, "has_products", func(conn *sql.Conn) (err error) {
		n, err = r.count(ctx, conn, selectActive("SELECT COUNT(*) FROM products", "").Where("supplier_id = ?", supplierID))
		return err
	})
	if err != nil {
		r.logger.Error("Error checking if supplier has products", zap.Int64("supplier_id", supplierID), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to check products of supplier %d", supplierID), err)
	}
	return n > 0, nil
}

func (r *SupplierStore) Delete(ctx context.Context, id int64) (bool, error) {
	r.logger.Debug("Soft deleting supplier", zap.Int64("supplier_id", id))

	var affected int64
	err := r.withConn(ctx, "delete", func(conn *sql.Conn) (err error) {
		affected, err = r.exec(ctx, conn,
			`UPDATE suppliers SET is_active = FALSE, updated_date = ? WHERE supplier_id = ? AND is_active = TRUE`, now(), id)
		return err
	})
	if err != nil {
		r.logger.Error("Error deleting supplier", zap.Int64("supplier_id", id), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to delete supplier %d", id), err)
	}

	if affected == 0 {
		r.logger.Warn("Supplier not found for deletion", zap.Int64("supplier_id", id))
		return false, nil
	}
	r.logger.Info("Supplier soft deleted successfully", zap.Int64("supplier_id", id))
	return true, nil
}

func (r *SupplierStore) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.withConn(ctx, "exists", func(conn *sql.Conn) (err error) {
		n, err = r.count(ctx, conn, selectActive("SELECT COUNT(*) FROM suppliers", "").Where("supplier_id = ?", id))
		return err
	})
	if err != nil {
		r.logger.Error("Error checking if supplier exists", zap.Int64("supplier_id", id), zap.Error(err))
		return false, persistenceError(fmt.Sprintf("failed to check supplier %d", id), err)
	}
	return n > 0, nil
}

func (r *SupplierStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.withConn(ctx, "count", func(conn *sql.Conn) (err error) {
		n, err = r.count(ctx, conn, selectActive("SELECT COUNT(*) FROM suppliers", ""))
		return err
	})
	if err != nil {
		r.logger.Error("Error counting suppliers", zap.Error(err))
		return 0, persistenceError("failed to count suppliers", err)
	}
	return n, nil
}

func (r *SupplierStore) list(ctx context.Context, operation string, q *activeQuery, failure string) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.withConn(ctx, operation, func(conn *sql.Conn) (err error) {
		suppliers, err = queryList(ctx, &r.sqlStore, conn, q, scanSupplier)
		return err
	})
	if err != nil {
		r.logger.Error("Error listing suppliers", zap.String("operation", operation), zap.Error(err))
		return nil, persistenceError(failure, err)
	}
	r.logger.Debug("Found suppliers", zap.String("operation", operation), zap.Int("count", len(suppliers)))
	return suppliers, nil
}
