package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"didpool/internal/ledger"
	ledgermocks "didpool/internal/ledger/mocks"
	"didpool/internal/pool"
	"didpool/internal/resolution"
	resolutionmetrics "didpool/internal/resolution/metrics"
	"didpool/internal/resolution/store"
	"didpool/internal/write"
)

// HandlerSuite drives the real registry and services; only the ledger
// client is mocked. Replies are "<pool id>|<request>" so the parser can tell
// which pool answered.
type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	client   *ledgermocks.MockClient
	registry *pool.Registry
	router   http.Handler
	nyms     map[string]ledger.Identifier
	taa      *ledger.Agreement
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = ledgermocks.NewMockClient(s.ctrl)
	s.nyms = map[string]ledger.Identifier{}
	s.taa = nil
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.client.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, poolID string, _ ledger.ConnectionParams) (ledger.Handle, error) {
			return poolID, nil
		}).AnyTimes()
	s.client.EXPECT().BuildGetIdentifierRequest(gomock.Any()).Return(ledger.Request("GET_NYM"), nil).AnyTimes()
	s.client.EXPECT().BuildGetTAARequest().Return(ledger.Request("GET_TAA"), nil).AnyTimes()
	s.client.EXPECT().BuildGetAcceptanceMechanismsRequest().Return(ledger.Request("GET_TAA_AML"), nil).AnyTimes()
	s.client.EXPECT().SubmitRead(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h ledger.Handle, req ledger.Request) (ledger.Reply, error) {
			return ledger.Reply(h.(string) + "|" + string(req)), nil
		}).AnyTimes()
	s.client.EXPECT().ParseIdentifierReply(gomock.Any()).
		DoAndReturn(func(reply ledger.Reply) (ledger.Identifier, error) {
			poolID, _, _ := strings.Cut(string(reply), "|")
			identifier, ok := s.nyms[poolID]
			if !ok {
				return ledger.Identifier{}, ledger.ErrIdentifierNotFound
			}
			return identifier, nil
		}).AnyTimes()
	s.client.EXPECT().ParseTAAReply(gomock.Any()).
		DoAndReturn(func(ledger.Reply) (*ledger.Agreement, error) { return s.taa, nil }).AnyTimes()
	s.client.EXPECT().ParseAcceptanceMechanismsReply(gomock.Any()).
		Return(ledger.AcceptanceMechanisms{Mechanisms: map[string]string{"wallet_agreement": "", "on_file": ""}}, nil).AnyTimes()

	var err error
	s.registry, err = pool.NewRegistry(s.client, pool.WithLogger(logger))
	s.Require().NoError(err)
	s.Require().NoError(s.registry.Configure([]pool.Config{
		{ID: "bcovrin", Namespace: "bcovrin:test"},
		{ID: "sovrin", IsProduction: true, Namespace: "sovrin"},
	}))

	reg := prometheus.NewRegistry()
	resolver, err := resolution.New(s.registry, s.client,
		resolution.WithCache(store.NewMemoryCache(0)),
		resolution.WithMetrics(resolutionmetrics.NewWithRegisterer(reg)),
	)
	s.Require().NoError(err)
	writer, err := write.New(s.registry, s.client, ledgermocks.NewMockSigner(s.ctrl))
	s.Require().NoError(err)

	s.router = NewRouter(New(resolver, writer, s.registry, logger), reg)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func (s *HandlerSuite) TestResolve_Found() {
	s.nyms["sovrin"] = ledger.Identifier{
		DID:    "did:sov:VsKV7grR1BUE29mG2Fm2kX",
		Verkey: "~HFPBKRTMeVcVmw5oeHRwCn",
		Role:   "101",
	}

	rec := s.get("/dids/did:sov:VsKV7grR1BUE29mG2Fm2kX")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("Content-Type"))
	var resp DidResponse
	s.decode(rec, &resp)
	s.Equal("sovrin", resp.PoolID)
	s.Equal("did:sov:VsKV7grR1BUE29mG2Fm2kX", resp.DID)
	s.True(resp.SelfCertified)
	s.Equal("101", resp.Role)
}

func (s *HandlerSuite) TestResolve_NotFound() {
	rec := s.get("/dids/did:sov:VsKV7grR1BUE29mG2Fm2kX")

	s.Equal(http.StatusNotFound, rec.Code)
	var body map[string]string
	s.decode(rec, &body)
	s.Equal("did_not_found", body["error"])
}

func (s *HandlerSuite) TestListPools() {
	s.registry.ConnectAll(context.Background())

	rec := s.get("/pools")

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp []PoolResponse
	s.decode(rec, &resp)
	s.Require().Len(resp, 2)
	s.Equal("bcovrin", resp[0].ID)
	s.Equal("sovrin", resp[1].ID)
	s.True(resp[1].IsProduction)
	s.True(resp[1].Connected)
	s.Nil(resp[1].TAA)
}

func (s *HandlerSuite) TestPoolAgreement() {
	s.taa = &ledger.Agreement{Text: "terms", Version: "2.0", Digest: "abc"}

	rec := s.get("/pools/sovrin/taa")

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp AgreementResponse
	s.decode(rec, &resp)
	s.True(resp.Present)
	s.Equal("2.0", resp.Version)
	s.Equal([]string{"on_file", "wallet_agreement"}, resp.AcceptanceMechanisms)
	s.Nil(resp.RatifiedAt)

	var pools []PoolResponse
	s.decode(s.get("/pools"), &pools)
	s.Require().NotNil(pools[1].TAA)
	s.Equal("2.0", pools[1].TAA.Version)
	s.Nil(pools[0].TAA)
}

func (s *HandlerSuite) TestPoolAgreement_Absent() {
	rec := s.get("/pools/bcovrin/taa")

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp AgreementResponse
	s.decode(rec, &resp)
	s.False(resp.Present)
}

func (s *HandlerSuite) TestPoolAgreement_UnknownPool() {
	rec := s.get("/pools/indicio/taa")

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestHealth() {
	s.Run("unavailable before any pool connects", func() {
		rec := s.get("/healthz")

		s.Equal(http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		s.decode(rec, &resp)
		s.Equal("unavailable", resp.Status)
		s.Len(resp.Pools, 2)
	})

	s.Run("ok once pools connect", func() {
		s.registry.ConnectAll(context.Background())

		rec := s.get("/healthz")

		s.Equal(http.StatusOK, rec.Code)
		var resp HealthResponse
		s.decode(rec, &resp)
		s.Equal("ok", resp.Status)
		s.Equal("connected", resp.Pools["sovrin"])
	})
}

func (s *HandlerSuite) TestMetrics() {
	s.get("/dids/did:sov:VsKV7grR1BUE29mG2Fm2kX")

	rec := s.get("/metrics")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "didpool_resolution_outcomes_total")
}
