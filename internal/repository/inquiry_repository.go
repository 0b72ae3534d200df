package repository

import (
	"context"

	"ekoi-website/internal/models"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}
