package testdata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

func RandomName() string {
	return gofakeit.Name()
}

func RandomDescription() string {
	return gofakeit.Sentence(8)
}

func RandomEmail() string {
	return strings.ToLower(gofakeit.Email())
}

// RandomEmailAt builds an address under the given domain, handy for minting
// admin addresses against a configured admin domain.
func RandomEmailAt(domain string) string {
	return fmt.Sprintf("%s@%s", strings.ToLower(gofakeit.Username()), domain)
}

func RandomPrompt() string {
	return gofakeit.Question()
}
