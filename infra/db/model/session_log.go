package model

// SessionLog is the persisted form of one session report. AbsentInvoices is
// the unresolved rows serialized as JSON.
type SessionLog struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime      string `gorm:"size:100;not null" json:"start_time"`
	EndTime        string `gorm:"size:100;not null" json:"end_time"`
	PdfCount       int64  `gorm:"not null" json:"pdf_count"`
	RowsExtracted  int64  `gorm:"not null" json:"invoices_extracted"`
	PagesUpdated   int64  `gorm:"not null" json:"pages_updated"`
	AbsentInvoices string `gorm:"type:text" json:"absent_invoices"`
	CreateTime     int64  `gorm:"not null" json:"create_time"`
}
