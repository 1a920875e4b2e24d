package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement
type TransactionType string

const (
	TransactionPurchase   TransactionType = "PURCHASE"
	TransactionSale       TransactionType = "SALE"
	TransactionReturnIn   TransactionType = "RETURN_IN"
	TransactionReturnOut  TransactionType = "RETURN_OUT"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

var transactionTypeLabels = map[TransactionType][2]string{
	TransactionPurchase:   {"Purchase", "Stock increase from supplier"},
	TransactionSale:       {"Sale", "Stock decrease due to sale"},
	TransactionReturnIn:   {"Return In", "Stock increase due to return from customer"},
	TransactionReturnOut:  {"Return Out", "Stock decrease due to return to supplier"},
	TransactionAdjustment: {"Adjustment", "Stock adjustment for correction"},
}

// ParseTransactionType accepts the stored name, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transactionTypeLabels[t]; !ok {
		return "", ErrUnknownTransactionType
	}
	return t, nil
}

func (t TransactionType) DisplayName() string {
	return transactionTypeLabels[t][0]
}

func (t TransactionType) Description() string {
	return transactionTypeLabels[t][1]
}

func (t TransactionType) IncreasesStock() bool {
	return t == TransactionPurchase || t == TransactionReturnIn
}

func (t TransactionType) DecreasesStock() bool {
	return t == TransactionSale || t == TransactionReturnOut
}

func (t TransactionType) IsAdjustment() bool {
	return t == TransactionAdjustment
}

// Transaction records one stock movement. It is a model only; nothing persists it yet.
type Transaction struct {
	ID              int64
	Type            TransactionType
	ProductID       int64
	TransactionDate time.Time
	CreatedBy       Optional[int64]
	ReferenceNumber Optional[string]
	Notes           Optional[string]

	// display fields, filled by joins
	ProductName   Optional[string]
	ProductCode   Optional[string]
	CreatedByName Optional[string]

	quantity    int
	unitPrice   decimal.Decimal
	totalAmount decimal.Decimal
}

// NewTransaction creates a movement dated now with its total computed
func NewTransaction(txType TransactionType, productID int64, quantity int, unitPrice decimal.Decimal) *Transaction {
	t := &Transaction{
		Type:            txType,
		ProductID:       productID,
		TransactionDate: time.Now().UTC(),
		quantity:        quantity,
		unitPrice:       unitPrice,
	}
	t.recalculate()
	return t
}

func (t *Transaction) Quantity() int                { return t.quantity }
func (t *Transaction) UnitPrice() decimal.Decimal   { return t.unitPrice }
func (t *Transaction) TotalAmount() decimal.Decimal { return t.totalAmount }

func (t *Transaction) SetQuantity(quantity int) {
	t.quantity = quantity
	t.recalculate()
}

func (t *Transaction) SetUnitPrice(price decimal.Decimal) {
	t.unitPrice = price
	t.recalculate()
}

func (t *Transaction) recalculate() {
	t.totalAmount = t.unitPrice.Mul(decimal.NewFromInt(int64(t.quantity)))
}

// SignedQuantity is the effect on stock on hand. Adjustments carry their own sign.
func (t *Transaction) SignedQuantity() int {
	if t.Type.DecreasesStock() {
		return -t.quantity
	}
	return t.quantity
}

// DisplayReference returns the reference number or a generated TXN-000123 label.
func (t *Transaction) DisplayReference() string {
	if ref, ok := t.ReferenceNumber.Get(); ok {
		return ref
	}
	return fmt.Sprintf("TXN-%06d", t.ID)
}

func (t *Transaction) DisplayProductName() string {
	name := t.ProductName.OrElse("Unknown Product")
	if code, ok := t.ProductCode.Get(); ok {
		return name + " (" + code + ")"
	}
	return name
}

func (t *Transaction) DisplayNotes() string {
	return t.Notes.OrElse("No notes")
}
