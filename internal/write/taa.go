package write

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"didpool/internal/ledger"
	"didpool/internal/pool"
	dErrors "didpool/pkg/domain-errors"
)

// TAADigest is the ledger's agreement digest: hex(sha256(version || text)).
func TAADigest(version, text string) string {
	sum := sha256.Sum256([]byte(version + text))
	return hex.EncodeToString(sum[:])
}

// TAASnapshot returns the agreement p enforces, fetching it on first use.
// The bool is false when the pool has no agreement. Failed fetches are not
// memoized.
func (s *Service) TAASnapshot(ctx context.Context, p *pool.Pool) (pool.TAASnapshot, bool, error) {
	if snapshot, present, fetched := p.CachedTAA(); fetched {
		return snapshot, present, nil
	}

	snapshot, err := s.fetchTAA(ctx, p)
	if err != nil {
		s.metrics.RecordTAAFetch(p.ID(), "failed")
		return pool.TAASnapshot{}, false, err
	}
	p.StoreTAA(snapshot)
	if snapshot == nil {
		s.metrics.RecordTAAFetch(p.ID(), "absent")
		s.logger.InfoContext(ctx, "pool enforces no transaction author agreement", "pool_id", p.ID())
		return pool.TAASnapshot{}, false, nil
	}
	s.metrics.RecordTAAFetch(p.ID(), "present")
	s.logger.InfoContext(ctx, "fetched transaction author agreement",
		"pool_id", p.ID(),
		"version", snapshot.Version,
		"mechanisms", snapshot.AcceptanceMechanisms,
	)
	return *snapshot, true, nil
}

// fetchTAA reads the agreement and the acceptance mechanism list together.
// A nil snapshot means the pool has no agreement.
func (s *Service) fetchTAA(ctx context.Context, p *pool.Pool) (*pool.TAASnapshot, error) {
	h, err := s.pools.Handle(ctx, p)
	if err != nil {
		return nil, err
	}
	taaReq, err := s.client.BuildGetTAARequest()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, "build agreement request")
	}
	amlReq, err := s.client.BuildGetAcceptanceMechanismsRequest()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, "build acceptance mechanisms request")
	}

	var (
		agreement *ledger.Agreement
		aml       ledger.AcceptanceMechanisms
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reply, err := s.client.SubmitRead(gctx, h, taaReq)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeLedgerClient, "read agreement from pool "+p.ID())
		}
		if agreement, err = s.client.ParseTAAReply(reply); err != nil {
			return dErrors.Wrap(err, dErrors.CodeLedgerClient, "parse agreement reply")
		}
		return nil
	})
	g.Go(func() error {
		reply, err := s.client.SubmitRead(gctx, h, amlReq)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeLedgerClient, "read acceptance mechanisms from pool "+p.ID())
		}
		if aml, err = s.client.ParseAcceptanceMechanismsReply(reply); err != nil {
			return dErrors.Wrap(err, dErrors.CodeLedgerClient, "parse acceptance mechanisms reply")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if agreement == nil || (agreement.Text == "" && agreement.Version == "") {
		return nil, nil
	}
	digest := agreement.Digest
	if digest == "" {
		digest = TAADigest(agreement.Version, agreement.Text)
	}
	return &pool.TAASnapshot{
		Text:                 agreement.Text,
		Version:              agreement.Version,
		Digest:               digest,
		AcceptanceMechanisms: slices.Sorted(maps.Keys(aml.Mechanisms)),
		RatifiedAt:           agreement.RatifiedAt,
	}, nil
}
