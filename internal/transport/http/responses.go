package httptransport

import (
	"time"

	"didpool/internal/pool"
	"didpool/internal/resolution/models"
)

type DidResponse struct {
	DID           string `json:"did"`
	Verkey        string `json:"verkey"`
	Role          string `json:"role,omitempty"`
	SelfCertified bool   `json:"self_certified"`
	PoolID        string `json:"pool_id"`
}

type PoolResponse struct {
	ID           string             `json:"id"`
	Namespace    string             `json:"namespace,omitempty"`
	IsProduction bool               `json:"is_production"`
	Connected    bool               `json:"connected"`
	TAA          *AgreementResponse `json:"taa,omitempty"`
}

// AgreementResponse describes a pool's agreement. Present is false for
// pools that enforce none.
type AgreementResponse struct {
	Present              bool       `json:"present"`
	Version              string     `json:"version,omitempty"`
	Digest               string     `json:"digest,omitempty"`
	AcceptanceMechanisms []string   `json:"acceptance_mechanisms,omitempty"`
	RatifiedAt           *time.Time `json:"ratified_at,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Pools  map[string]string `json:"pools"`
}

func toDidResponse(r models.DidRecord) DidResponse {
	return DidResponse{
		DID:           r.DID,
		Verkey:        r.Verkey,
		Role:          r.Role,
		SelfCertified: r.SelfCertified,
		PoolID:        r.PoolID,
	}
}

// toPoolResponse includes the agreement only when it has already been
// fetched; listing pools never queries the ledger.
func toPoolResponse(p *pool.Pool) PoolResponse {
	resp := PoolResponse{
		ID:           p.ID(),
		Namespace:    p.Namespace(),
		IsProduction: p.IsProduction(),
		Connected:    p.Connected(),
	}
	if snapshot, present, fetched := p.CachedTAA(); fetched {
		agreement := toAgreementResponse(snapshot, present)
		resp.TAA = &agreement
	}
	return resp
}

func toAgreementResponse(s pool.TAASnapshot, present bool) AgreementResponse {
	if !present {
		return AgreementResponse{}
	}
	resp := AgreementResponse{
		Present:              true,
		Version:              s.Version,
		Digest:               s.Digest,
		AcceptanceMechanisms: s.AcceptanceMechanisms,
	}
	if !s.RatifiedAt.IsZero() {
		ratified := s.RatifiedAt
		resp.RatifiedAt = &ratified
	}
	return resp
}
