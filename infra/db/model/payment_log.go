package model

// PaymentLog is one entry of the dedup ledger: an invoice row accepted as new
// in some prior run. Append-only; the (invoice_num, total_with_vat) pairs
// across all entries form the dedup key space.
type PaymentLog struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	InvoiceNum   string `gorm:"size:100;not null;index" json:"invoice_num"`
	TotalWithVAT string `gorm:"size:100;not null" json:"total_with_vat"`
	CreateTime   int64  `gorm:"not null" json:"create_time"`
}
