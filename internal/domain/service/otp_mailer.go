package service

import "context"

// OTPMailer delivers one-time codes to an email address.
type OTPMailer interface {
	SendOTPEmail(ctx context.Context, address, code string, ttlMinutes int) error
}
