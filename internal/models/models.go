package models

import (
	"time"
)

// Collection names as they exist in the document store.
const (
	UsersCollection        = "users"
	StocksCollection       = "stocks"
	PricingCollection      = "pricing"
	ItemRefsCollection     = "itemReferences"
	InvoicesCollection     = "invoices"
	ServiceTasksCollection = "serviceTasks"
	ExpensesCollection     = "expenses"
	ExpenseCatsCollection  = "expensesCat"
	CountersCollection     = "counters"
)

// User - keyed by username. The bcrypt hash never leaves the server.
type User struct {
	Username     string `bson:"_id" json:"username"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Role         string `bson:"role" json:"role"` // 'user' or 'admin'
}

// StockEntry - one intake of goods from a supplier. Keyed by the generated
// stock ID (e.g. "BM48213"). Immutable except for deletion.
type StockEntry struct {
	StockID       string  `bson:"_id" json:"stockId"`
	Maker         string  `bson:"maker" json:"maker"`
	Type          string  `bson:"type" json:"type"`
	Item          string  `bson:"item" json:"item"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	SupplierName  string  `bson:"supplierName" json:"supplierName"`
	SupplierPhone string  `bson:"supplierPhone" json:"supplierPhone"`
	UnitPrice     float64 `bson:"unitPrice" json:"unitPrice"` // buying price
	Date          string  `bson:"date" json:"date"`           // intake date, YYYY-MM-DD
	EnteredBy     string  `bson:"user" json:"user"`
}

// PricingRecord - the selling price for a stock entry, keyed by the same
// stock ID. Deleted when the last stock entry for its item key is removed.
type PricingRecord struct {
	StockID   string    `bson:"_id" json:"stockId"`
	Maker     string    `bson:"maker" json:"maker"`
	Type      string    `bson:"type" json:"type"`
	Item      string    `bson:"item" json:"item"`
	Price     float64   `bson:"price" json:"price"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Customer details embedded in an invoice.
type Customer struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

// InvoiceLineItem - one product line inside an invoice. The price actually
// charged is kept alongside the catalog price at sale time, so a later
// pricing change never rewrites history.
type InvoiceLineItem struct {
	Maker         string  `bson:"maker" json:"maker"`
	Type          string  `bson:"type" json:"type"`
	Item          string  `bson:"item" json:"item"`
	StockID       string  `bson:"stockId" json:"stockId"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	Price         float64 `bson:"price" json:"price"`
	OriginalPrice float64 `bson:"originalPrice" json:"originalPrice"`
	ChangedPrice  int     `bson:"changed_price" json:"changed_price"` // 0/1
}

// Invoice - created once at save time, immutable thereafter (delete only).
type Invoice struct {
	ID               string            `bson:"_id" json:"id"`
	Number           string            `bson:"number" json:"number"` // zero-padded sequential
	Customer         Customer          `bson:"customer" json:"customer"`
	Reference        string            `bson:"reference" json:"reference"`
	Items            []InvoiceLineItem `bson:"items" json:"items"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	CreatedBy        string            `bson:"createdBy" json:"createdBy"`
	HasChangedPrices int               `bson:"has_changed_prices" json:"has_changed_prices"`
}

// Total sums price*quantity over the invoice's lines.
func (inv Invoice) Total() float64 {
	var sum float64
	for _, li := range inv.Items {
		sum += li.Price * float64(li.Quantity)
	}
	return sum
}

// ServiceTask - a device repair job. Mutated only to extend the handover
// date or to mark completion.
type ServiceTask struct {
	ID                 string     `bson:"_id" json:"id"`
	InvoiceNumber      int        `bson:"invoiceNumber" json:"invoiceNumber"`
	CustomerName       string     `bson:"customerName" json:"customerName"`
	CustomerPhone      string     `bson:"customerPhone" json:"customerPhone"`
	Address            string     `bson:"address" json:"address"`
	Maker              string     `bson:"maker" json:"maker"`
	Model              string     `bson:"model" json:"model"`
	IMEI               string     `bson:"imei" json:"imei"`
	Remarks            string     `bson:"remarks" json:"remarks"`
	Malfunction        string     `bson:"malfunction" json:"malfunction"`
	StartDate          time.Time  `bson:"startDate" json:"startDate"`
	HandoverDate       time.Time  `bson:"handoverDate" json:"handoverDate"`
	AdvanceAmount      float64    `bson:"advanceAmount" json:"advanceAmount"`
	TotalPayment       float64    `bson:"totalPayment" json:"totalPayment"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	CreatedBy          string     `bson:"createdBy" json:"createdBy"`
	AssignedTechnician string     `bson:"assignedTechnician" json:"assignedTechnician"`
	TaskCompleted      int        `bson:"taskCompleted" json:"taskCompleted"` // 0/1
	TaskCompletedAt    *time.Time `bson:"taskCompletedAt,omitempty" json:"taskCompletedAt,omitempty"`
}

// Counter - one per numbering domain ("invoiceCounter", "serviceJobCounter").
type Counter struct {
	ID      string `bson:"_id" json:"id"`
	Current int    `bson:"current" json:"current"`
}

// ItemReference - the catalog document for one maker: type name -> item names.
type ItemReference struct {
	Maker string              `bson:"_id" json:"maker"`
	Types map[string][]string `bson:"types" json:"types"`
}

// Expense - a single outgoing payment recorded under a category.
type Expense struct {
	ID          string    `bson:"_id" json:"id"`
	Category    string    `bson:"category" json:"category"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
}

// ExpenseCategory - a named bucket for expenses.
type ExpenseCategory struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}
