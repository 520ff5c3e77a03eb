package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesTransaction is one row of the sales fact table. The analyzer only ever
// reads it through aggregation queries; rows flagged deleted or excluded never
// qualify.
type SalesTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	SalesTxnNumber string    `gorm:"type:text;not null;index" json:"sales_txn_number"`
	TxnDate        time.Time `gorm:"type:date;not null;index" json:"txn_date"`

	// Measures
	NetSalesAmount   float64 `gorm:"type:decimal(14,2);not null" json:"net_sales_amount"`
	NetSalesQuantity float64 `gorm:"type:decimal(14,2);not null" json:"net_sales_quantity"`
	CostAmount       float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cost_amount"`
	CurrencyCode     string  `gorm:"type:text;default:'USD'" json:"currency_code"`

	// Breakdown dimensions
	ItemKey                   string `gorm:"type:text;index" json:"item_key"`
	ItemNumber                string `gorm:"type:text" json:"item_number"`
	ItemCategoryHrchyKey      string `gorm:"type:text;index" json:"item_category_hrchy_key"`
	ProductPostingGroup       string `gorm:"type:text" json:"product_posting_group"`
	SalesOrganizationKey      string `gorm:"type:text;index" json:"sales_organization_key"`
	BusinessUnitKey           string `gorm:"type:text" json:"business_unit_key"`
	CustomerGeographyHrchyKey string `gorm:"type:text;index" json:"customer_geography_hrchy_key"`
	CustomerKey               string `gorm:"type:text;index" json:"customer_key"`

	// Row state
	DeletedFlag  bool `gorm:"not null;default:false" json:"deleted_flag"`
	ExcludedFlag bool `gorm:"not null;default:false" json:"excluded_flag"`

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// BeforeCreate sets UUID before creating
func (t *SalesTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
