package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// CreateProducerTokenRequest issues an API credential for one upstream module.
type CreateProducerTokenRequest struct {
	SourceModule string `json:"sourceModule" binding:"required,sourcemodule"`
	Label        string `json:"label" binding:"max=200"`
}

// ProducerTokenResponse returns the issued token. The plain Token value is
// only present at issuance; it cannot be recovered afterwards.
type ProducerTokenResponse struct {
	TokenID      string    `json:"tokenID"`
	SourceModule string    `json:"sourceModule"`
	Label        string    `json:"label"`
	Token        string    `json:"token,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToProducerTokenResponse converts a domain token plus its one-time plain value.
func ToProducerTokenResponse(t *domain.ProducerToken, plainToken string) ProducerTokenResponse {
	return ProducerTokenResponse{
		TokenID:      t.TokenID,
		SourceModule: string(t.SourceModule),
		Label:        t.Label,
		Token:        plainToken,
		CreatedAt:    t.CreatedAt,
	}
}
