package model

// EmailLog records a source document already downloaded, so the mailbox
// fetch skips it on later runs.
type EmailLog struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	EmailDate  string `gorm:"size:100" json:"email_date"`
	FileName   string `gorm:"size:255;not null;index" json:"filename"`
	CreateTime int64  `gorm:"not null" json:"create_time"`
}
