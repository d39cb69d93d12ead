package account

import (
	"strings"
	"time"
)

// Account is a registered shopper. Email is stored lower-cased.
type Account struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Birth        string    `json:"birth"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	Cologne      string    `json:"cologne"`
	Address      string    `json:"address"`
	ZipCode      string    `json:"zip_code"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// StorageKey is the shared store key holding the account for email.
func StorageKey(email string) string {
	return "account:" + NormalizeEmail(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// WelcomeName is the part of the email before the @.
func WelcomeName(email string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return name
}
