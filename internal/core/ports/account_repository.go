package ports

import (
	"context"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

// AccountRepository is the persistence contract for the account record.
// Uniqueness of username/email/phone is enforced by the store on Create.
// Read paths return the full record including the secret hash; callers are
// responsible for sanitising before anything leaves the core.
type AccountRepository interface {
	// FindByIdentifier resolves an account by username, email or phone.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// SetRefreshToken overwrites the single refresh-token slot. An empty
	// token clears the slot.
	SetRefreshToken(ctx context.Context, id, token string) error
	SetSecretHash(ctx context.Context, id, hash string) error
}
