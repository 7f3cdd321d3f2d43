package models

import "time"

// Session is the audit row recorded for each issued access token. The token
// column is unique and indexed so logout can revoke by value. Invalidation is
// one-way: once is_active drops to false the row never reactivates.
type Session struct {
	BaseModel
	UserID     string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Token      string     `gorm:"size:500;not null;uniqueIndex" json:"-"`
	IPAddress  string     `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  string     `gorm:"type:text" json:"-"`
	DeviceInfo string     `gorm:"size:200" json:"device_info,omitempty"`
	LoginTime  time.Time  `gorm:"default:now()" json:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
}
