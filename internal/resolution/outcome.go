package resolution

import (
	"fmt"

	"didpool/internal/pool"
	"didpool/internal/resolution/models"
	dErrors "didpool/pkg/domain-errors"
)

type outcomeKind int

const (
	outcomeFound outcomeKind = iota
	outcomeNotFound
	outcomeFailed
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeFound:
		return "found"
	case outcomeNotFound:
		return "not_found"
	case outcomeFailed:
		return "failed"
	}
	return "unknown"
}

// poolOutcome is the settled result of querying one pool.
type poolOutcome struct {
	pool   *pool.Pool
	kind   outcomeKind
	record models.DidRecord
	err    error
}

type selectionReason string

const (
	reasonSelfCertified selectionReason = "self_certified"
	reasonProduction    selectionReason = "production"
	reasonNonProduction selectionReason = "non_production"
)

// choose applies the preference rules to outcomes, which are in configured
// pool order. ok is false when no pool found the identifier.
//
//  1. the first self-certified record wins outright
//  2. otherwise production pools win over non-production pools
//  3. ties go to the earlier configured pool
func choose(outcomes []poolOutcome) (winner poolOutcome, reason selectionReason, ok bool) {
	var production, nonProduction []poolOutcome
	for _, o := range outcomes {
		if o.kind != outcomeFound {
			continue
		}
		if o.record.SelfCertified {
			return o, reasonSelfCertified, true
		}
		if o.pool.IsProduction() {
			production = append(production, o)
		} else {
			nonProduction = append(nonProduction, o)
		}
	}
	if len(production) > 0 {
		return production[0], reasonProduction, true
	}
	if len(nonProduction) > 0 {
		return nonProduction[0], reasonNonProduction, true
	}
	return poolOutcome{}, "", false
}

// failure turns an outcome set without any success into the single error
// reported to the caller.
func failure(did string, outcomes []poolOutcome) error {
	for _, o := range outcomes {
		switch o.kind {
		case outcomeFailed:
			return dErrors.Wrap(o.err, dErrors.CodeResolution,
				fmt.Sprintf("resolve %s: pool %s failed", did, o.pool.ID()))
		case outcomeNotFound, outcomeFound:
		}
	}
	return dErrors.Newf(dErrors.CodeDidNotFound,
		"did %s not found on any of the %d configured ledger pools", did, len(outcomes))
}
