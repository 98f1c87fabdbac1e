package model

// StatusUpdateLog is a write-only audit record of one successful reservation
// status transition.
type StatusUpdateLog struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingNum     string `gorm:"size:100;not null" json:"booking_num"`
	InvoiceNum     string `gorm:"size:100" json:"invoice_num"`
	PreviousStatus string `gorm:"size:100" json:"previous_status"`
	CurrentStatus  string `gorm:"size:100;not null" json:"current_status"`
	PageURL        string `gorm:"size:255" json:"page_url"`
	CreateTime     int64  `gorm:"not null" json:"create_time"`
}
