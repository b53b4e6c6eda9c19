package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"asdcare/models"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomBase36(n int) string {
	var b strings.Builder
	limit := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(err)
		}
		b.WriteByte(base36[idx.Int64()])
	}
	return b.String()
}

// GenerateRoleID builds a public role identifier such as "THR-1718000000000-4K2Q9Z".
func GenerateRoleID(role models.Role, now time.Time) (string, error) {
	prefix, ok := role.IDPrefix()
	if !ok {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), randomBase36(6)), nil
}

// GeneratePatientID builds the public identifier of a child record.
func GeneratePatientID(now time.Time) string {
	return fmt.Sprintf("PAT-%d-%s", now.UnixMilli(), randomBase36(6))
}
