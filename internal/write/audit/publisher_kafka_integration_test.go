//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"didpool/internal/platform/config"
	"didpool/internal/platform/kafka"
	"didpool/internal/write/audit"
	"didpool/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
	topic    string
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	ctx := context.Background()
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	s.topic = "didpool.taa-acceptances.test"

	var err error
	s.client, err = kafka.New(ctx, config.KafkaConfig{Brokers: s.redpanda.Brokers})
	s.Require().NoError(err)
	s.Require().NotNil(s.client)
	s.Require().NoError(kafka.EnsureTopic(ctx, s.client, s.topic, 1, 1))
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaPublisherSuite) TestEnsureTopicIsIdempotent() {
	s.NoError(kafka.EnsureTopic(context.Background(), s.client, s.topic, 1, 1))
}

func (s *KafkaPublisherSuite) TestPublishedEventIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pub, err := audit.NewKafkaPublisher(s.client, audit.WithTopic(s.topic))
	s.Require().NoError(err)

	event := audit.Event{
		ID:           "4d6b5c1e-3f0a-4f0e-9a59-2b3c4d5e6f70",
		Action:       audit.ActionTAAAccepted,
		Timestamp:    time.Now().UTC().Truncate(time.Second),
		SubmissionID: "b8d2e3f4-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
		PoolID:       "sovrin",
		SignerDID:    "did:sov:Th7MpTaRZVRYnPiabds81Y",
		TAAVersion:   "2.0",
		Mechanism:    "wallet_agreement",
		Digest:       "8cee5d7a573e4893b08ff53a0761a22a1607df3b3fcd7e75b98696c92879641f",
		AcceptedAt:   time.Now().Unix(),
	}
	s.Require().NoError(pub.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var got *kgo.Record
	for got == nil {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for audit record")
		fetches.EachRecord(func(r *kgo.Record) {
			if got == nil && string(r.Key) == "sovrin" {
				got = r
			}
		})
	}

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(got.Value, &decoded))
	s.Equal(event.ID, decoded.ID)
	s.Equal(event.AcceptedAt, decoded.AcceptedAt)
	s.True(event.Timestamp.Equal(decoded.Timestamp))
}
