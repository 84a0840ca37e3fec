package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"homeserve/config"
	"homeserve/internal/domain/service"
	"homeserve/internal/errors"
)

// maxOTPLength keeps 10^length inside int64.
const maxOTPLength = 18

// numericOTPGenerator draws codes uniformly from [0, 10^length).
type numericOTPGenerator struct {
	length int
	limit  *big.Int
}

// NewOTPGenerator builds a generator for codes of cfg.OTP.Length digits.
func NewOTPGenerator(cfg *config.Config) service.OTPGenerator {
	length := 6
	if cfg != nil && cfg.OTP != nil && cfg.OTP.Length > 0 && cfg.OTP.Length <= maxOTPLength {
		length = cfg.OTP.Length
	}

	return &numericOTPGenerator{
		length: length,
		limit:  new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil),
	}
}

// Generate returns a zero-padded numeric code.
func (g *numericOTPGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.limit)
	if err != nil {
		return "", errors.Wrap(err, "failed to read random source")
	}

	return fmt.Sprintf("%0*d", g.length, n.Int64()), nil
}
