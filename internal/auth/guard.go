package auth

import (
	"github.com/sandro63/musicdb/internal/models"
)

// Guard classifies an identity against the minimum tier an operation
// requires, before any operation logic runs.
//
// Authentication is checked strictly before authorization: an anonymous
// caller gets an authentication-required outcome regardless of how far below
// the required tier they are, and only an authenticated caller below the
// required tier gets forbidden.
func Guard(id Identity, min Tier) models.Outcome {
	switch {
	case id.Tier.AtLeast(min):
		return models.Outcome{Kind: models.Success}
	case id.Tier == TierAnonymous:
		return models.Outcome{
			Kind:    models.AuthenticationRequired,
			Message: "Please sign in to access this page.",
		}
	default:
		return models.Outcome{
			Kind:    models.Forbidden,
			Message: "Only the superuser can delete records.",
		}
	}
}
