package service

import "errors"

var (
	ErrInvalidInquiry          = errors.New("invalid inquiry")
	ErrInquiryStoreUnavailable = errors.New("no inquiry store or mailer configured")
)
