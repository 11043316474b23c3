package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const verificationCodePrefix = "BKG"

// VerificationCode is scanned or typed at the counter. It carries the
// creation time and the beneficiary so a shopkeeper can read it, and a random
// suffix so two codes minted in the same nanosecond still differ.
type VerificationCode struct {
	value string
}

func NewVerificationCode(now time.Time, beneficiaryID uuid.UUID) (VerificationCode, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return VerificationCode{}, fmt.Errorf("generate verification code: %w", err)
	}
	short := strings.ReplaceAll(beneficiaryID.String(), "-", "")[:8]
	return VerificationCode{
		value: fmt.Sprintf("%s-%d-%s-%s", verificationCodePrefix, now.UnixNano(), short, hex.EncodeToString(buf[:])),
	}, nil
}

func ReconstructVerificationCode(s string) VerificationCode {
	return VerificationCode{value: s}
}

func (c VerificationCode) String() string {
	return c.value
}

// Party is a denormalized reference to a beneficiary or shop.
type Party struct {
	ID   uuid.UUID
	Name string
}
