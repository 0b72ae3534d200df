package models

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry is a contact form submission.
type Inquiry struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string `gorm:"type:varchar(120);not null" json:"name"`
	Email     string `gorm:"type:varchar(254);not null;index" json:"email"`
	Company   string `gorm:"type:varchar(160)" json:"company"`
	Subject   string `gorm:"type:varchar(200)" json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Locale    string `gorm:"type:varchar(16);not null" json:"locale"`
	IP        string `gorm:"type:varchar(64)" json:"-"`
	RequestID string `gorm:"type:varchar(64)" json:"-"`
}

// ContactRequest is the contact form as posted by the browser.
type ContactRequest struct {
	Name    string `form:"name" json:"name" validate:"required,max=120,no_html"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Company string `form:"company" json:"company" validate:"max=160,no_html"`
	Subject string `form:"subject" json:"subject" validate:"max=200,no_html"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

// InquiryMeta describes the request a contact form arrived with.
type InquiryMeta struct {
	Locale    string
	IP        string
	RequestID string
}
