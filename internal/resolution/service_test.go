package resolution

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Cache,Pools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mr-tron/base58/base58"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"didpool/internal/ledger"
	ledgermocks "didpool/internal/ledger/mocks"
	"didpool/internal/pool"
	"didpool/internal/resolution/metrics"
	"didpool/internal/resolution/mocks"
	"didpool/internal/resolution/models"
	"didpool/internal/resolution/store"
	dErrors "didpool/pkg/domain-errors"
	"didpool/pkg/platform/sentinel"
)

// =============================================================================
// Resolution Service Test Suite
// =============================================================================
// The ledger client is mocked per pool: each pool's connection handle is its
// id, and a response table decides what that pool answers.

type poolResponse struct {
	identifier ledger.Identifier
	notFound   bool
	err        error
	block      bool
	barrier    *barrier
}

// barrier releases its callers only once all of them have arrived.
type barrier struct {
	remaining atomic.Int32
	release   chan struct{}
}

func newBarrier(n int32) *barrier {
	b := &barrier{release: make(chan struct{})}
	b.remaining.Store(n)
	return b
}

func (b *barrier) await(ctx context.Context) error {
	if b.remaining.Add(-1) == 0 {
		close(b.release)
	}
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type ResolutionSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	client    *ledgermocks.MockClient
	registry  *pool.Registry
	cache     *store.MemoryCache
	metrics   *metrics.Metrics
	service   *Service
	responses map[string]poolResponse
}

func TestResolutionSuite(t *testing.T) {
	suite.Run(t, new(ResolutionSuite))
}

func (s *ResolutionSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = ledgermocks.NewMockClient(s.ctrl)
	s.responses = map[string]poolResponse{}
	s.cache = store.NewMemoryCache(0)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.registry, err = pool.NewRegistry(s.client, pool.WithLogger(logger))
	s.Require().NoError(err)

	s.service, err = New(s.registry, s.client,
		WithCache(s.cache),
		WithLogger(logger),
		WithMetrics(s.metrics),
		WithQueryTimeout(50*time.Millisecond),
	)
	s.Require().NoError(err)
}

func (s *ResolutionSuite) TearDownTest() {
	s.ctrl.Finish()
}

// configure installs pools and wires the mocked client so each pool answers
// from s.responses. It returns the matcher-friendly SubmitRead call so tests
// can pin how many network queries happen.
func (s *ResolutionSuite) configure(configs ...pool.Config) *gomock.Call {
	s.Require().NoError(s.registry.Configure(configs))

	s.client.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, poolID string, _ ledger.ConnectionParams) (ledger.Handle, error) {
			return poolID, nil
		}).AnyTimes()
	s.client.EXPECT().BuildGetIdentifierRequest(gomock.Any()).
		DoAndReturn(func(d string) (ledger.Request, error) {
			return ledger.Request("GET_NYM " + d), nil
		}).AnyTimes()
	s.client.EXPECT().ParseIdentifierReply(gomock.Any()).
		DoAndReturn(func(reply ledger.Reply) (ledger.Identifier, error) {
			resp := s.responses[string(reply)]
			if resp.notFound {
				return ledger.Identifier{}, ledger.ErrIdentifierNotFound
			}
			return resp.identifier, nil
		}).AnyTimes()

	return s.client.EXPECT().SubmitRead(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, h ledger.Handle, _ ledger.Request) (ledger.Reply, error) {
			poolID := h.(string)
			resp := s.responses[poolID]
			if resp.barrier != nil {
				if err := resp.barrier.await(ctx); err != nil {
					return nil, err
				}
			}
			if resp.block {
				<-ctx.Done()
				return nil, ctx.Err()
			}
			if resp.err != nil {
				return nil, resp.err
			}
			return ledger.Reply(poolID), nil
		})
}

func keyPair(seed byte) (id, verkey string) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed + byte(i)*3
	}
	return base58.Encode(key[:16]), base58.Encode(key)
}

const subject = "did:sov:Th7MpTaRZVRYnPiabds81Y"

func otherVerkey() string {
	_, verkey := keyPair(101)
	return verkey
}

func (s *ResolutionSuite) TestNew() {
	s.Run("nil registry returns error", func() {
		_, err := New(nil, s.client)
		s.Error(err)
		s.Contains(err.Error(), "pool registry is required")
	})

	s.Run("nil client returns error", func() {
		_, err := New(s.registry, nil)
		s.Error(err)
		s.Contains(err.Error(), "ledger client is required")
	})
}

func (s *ResolutionSuite) TestNoPoolsConfigured() {
	_, _, err := s.service.Resolve(context.Background(), subject)
	s.True(dErrors.HasCode(err, dErrors.CodePoolNotConfigured))
}

func (s *ResolutionSuite) TestFoundOnSinglePoolPopulatesCache() {
	ctx := context.Background()
	s.configure(pool.Config{ID: "a"}, pool.Config{ID: "b"}).Times(2)
	s.responses["a"] = poolResponse{notFound: true}
	s.responses["b"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}

	record, p, err := s.service.Resolve(ctx, subject)
	s.Require().NoError(err)
	s.Equal("b", p.ID())
	s.Equal("b", record.PoolID)
	s.Equal(subject, record.DID)
	s.False(record.SelfCertified)

	entry, err := s.cache.Get(ctx, models.CacheKey(subject))
	s.Require().NoError(err)
	s.Equal("b", entry.PoolID)
	s.Equal(record, entry.Record)
}

func (s *ResolutionSuite) TestProductionPreferredOverEarlierTestPool() {
	s.configure(
		pool.Config{ID: "test-net"},
		pool.Config{ID: "main-net", IsProduction: true},
	).Times(2)
	s.responses["test-net"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}
	s.responses["main-net"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}

	_, p, err := s.service.Resolve(context.Background(), subject)
	s.Require().NoError(err)
	s.Equal("main-net", p.ID())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Selections.WithLabelValues("production")))
}

func (s *ResolutionSuite) TestSelfCertifiedAlwaysWins() {
	id, verkey := keyPair(7)
	selfCertified := "did:sov:" + id

	s.configure(
		pool.Config{ID: "test-net"},
		pool.Config{ID: "main-net", IsProduction: true},
	).Times(2)
	s.responses["test-net"] = poolResponse{identifier: ledger.Identifier{DID: selfCertified, Verkey: verkey}}
	s.responses["main-net"] = poolResponse{identifier: ledger.Identifier{DID: selfCertified, Verkey: otherVerkey()}}

	record, p, err := s.service.Resolve(context.Background(), selfCertified)
	s.Require().NoError(err)
	s.Equal("test-net", p.ID())
	s.True(record.SelfCertified)
}

func (s *ResolutionSuite) TestFirstConfiguredPoolBreaksTies() {
	s.configure(
		pool.Config{ID: "first"},
		pool.Config{ID: "second"},
		pool.Config{ID: "third"},
	).Times(3)
	for _, id := range []string{"first", "second", "third"} {
		s.responses[id] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}
	}

	_, p, err := s.service.Resolve(context.Background(), subject)
	s.Require().NoError(err)
	s.Equal("first", p.ID())
}

func (s *ResolutionSuite) TestAllPoolsReportNotFound() {
	s.configure(pool.Config{ID: "a"}, pool.Config{ID: "b"}).Times(2)
	s.responses["a"] = poolResponse{notFound: true}
	s.responses["b"] = poolResponse{notFound: true}

	_, _, err := s.service.Resolve(context.Background(), subject)
	s.True(dErrors.HasCode(err, dErrors.CodeDidNotFound))
	s.True(dErrors.HasCode(err, dErrors.CodePoolNotFound))
	s.Contains(err.Error(), subject)
	s.Contains(err.Error(), "2 configured")

	_, cacheErr := s.cache.Get(context.Background(), models.CacheKey(subject))
	s.ErrorIs(cacheErr, sentinel.ErrNotFound)
}

func (s *ResolutionSuite) TestTransportFailureIsNotReportedAsNotFound() {
	transport := errors.New("pool ledger timed out")
	s.configure(pool.Config{ID: "a"}, pool.Config{ID: "b"}).Times(2)
	s.responses["a"] = poolResponse{notFound: true}
	s.responses["b"] = poolResponse{err: transport}

	_, _, err := s.service.Resolve(context.Background(), subject)
	s.True(dErrors.HasCode(err, dErrors.CodeResolution))
	s.False(dErrors.HasCode(err, dErrors.CodeDidNotFound))
	s.ErrorIs(err, transport)
}

func (s *ResolutionSuite) TestFirstFailureInPoolOrderIsWrapped() {
	first := errors.New("first failure")
	second := errors.New("second failure")
	s.configure(pool.Config{ID: "a"}, pool.Config{ID: "b"}, pool.Config{ID: "c"}).Times(3)
	s.responses["a"] = poolResponse{notFound: true}
	s.responses["b"] = poolResponse{err: first}
	s.responses["c"] = poolResponse{err: second}

	_, _, err := s.service.Resolve(context.Background(), subject)
	s.ErrorIs(err, first)
	s.NotErrorIs(err, second)
}

func (s *ResolutionSuite) TestSecondResolutionIsServedFromCache() {
	ctx := context.Background()
	// Exactly one query per pool across both resolutions.
	s.configure(pool.Config{ID: "a"}, pool.Config{ID: "b", IsProduction: true}).Times(2)
	s.responses["a"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}
	s.responses["b"] = poolResponse{notFound: true}

	first, firstPool, err := s.service.Resolve(ctx, subject)
	s.Require().NoError(err)

	second, secondPool, err := s.service.Resolve(ctx, subject)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Same(firstPool, secondPool)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Outcomes.WithLabelValues("cache_hit")))
}

func (s *ResolutionSuite) TestCacheEntryForRemovedPoolIsIgnored() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, models.CacheKey(subject), models.CacheEntry{
		Record: models.DidRecord{DID: subject, PoolID: "decommissioned"},
		PoolID: "decommissioned",
	}))
	s.configure(pool.Config{ID: "a"}).Times(1)
	s.responses["a"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}

	_, p, err := s.service.Resolve(ctx, subject)
	s.Require().NoError(err)
	s.Equal("a", p.ID())

	entry, err := s.cache.Get(ctx, models.CacheKey(subject))
	s.Require().NoError(err)
	s.Equal("a", entry.PoolID)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues("stale")))
}

func (s *ResolutionSuite) TestSlowPoolTimesOutWithoutBlockingTheAnswer() {
	s.configure(pool.Config{ID: "slow", IsProduction: true}, pool.Config{ID: "fast"}).Times(2)
	s.responses["slow"] = poolResponse{block: true}
	s.responses["fast"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}

	_, p, err := s.service.Resolve(context.Background(), subject)
	s.Require().NoError(err)
	s.Equal("fast", p.ID())
}

func (s *ResolutionSuite) TestPoolsAreQueriedConcurrently() {
	s.configure(
		pool.Config{ID: "a"},
		pool.Config{ID: "b", IsProduction: true},
		pool.Config{ID: "c"},
	).Times(3)
	// Every query blocks until all three are in flight; queried one at a
	// time, each would hit the query deadline instead.
	gate := newBarrier(3)
	for _, id := range []string{"a", "b", "c"} {
		s.responses[id] = poolResponse{
			identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()},
			barrier:    gate,
		}
	}

	record, p, err := s.service.Resolve(context.Background(), subject)
	s.Require().NoError(err)
	s.Equal("b", p.ID())
	s.Equal("b", record.PoolID)
}

func (s *ResolutionSuite) TestCacheFailuresDegradeToNetwork() {
	ctx := context.Background()
	cache := mocks.NewMockCache(s.ctrl)
	svc, err := New(s.registry, s.client, WithCache(cache))
	s.Require().NoError(err)

	s.configure(pool.Config{ID: "a"}).Times(1)
	s.responses["a"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}
	cache.EXPECT().Get(gomock.Any(), models.CacheKey(subject)).Return(models.CacheEntry{}, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), models.CacheKey(subject), gomock.Any()).Return(errors.New("redis down"))

	record, p, err := svc.Resolve(ctx, subject)
	s.Require().NoError(err)
	s.Equal("a", p.ID())
	s.Equal("a", record.PoolID)
}

func (s *ResolutionSuite) TestWithoutCacheEveryResolutionQueries() {
	svc, err := New(s.registry, s.client)
	s.Require().NoError(err)
	s.configure(pool.Config{ID: "a"}).Times(2)
	s.responses["a"] = poolResponse{identifier: ledger.Identifier{DID: subject, Verkey: otherVerkey()}}

	for range 2 {
		_, _, err := svc.Resolve(context.Background(), subject)
		s.Require().NoError(err)
	}
}
