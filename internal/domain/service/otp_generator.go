package service

// OTPGenerator produces numeric one-time codes.
type OTPGenerator interface {
	Generate() (string, error)
}
