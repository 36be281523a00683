package access

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewAccountRepository creates a repository for accounts.
func NewAccountRepository(db *bun.DB) repository.Repository[*Account] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Account]{
		NewRecord:          func() *Account { return &Account{} },
		GetID:              func(account *Account) uuid.UUID { return account.ID },
		SetID:              func(account *Account, id uuid.UUID) { account.ID = id },
		GetIdentifier:      func() string { return "external_id" },
		GetIdentifierValue: func(account *Account) string { return account.ExternalID },
	})
}
