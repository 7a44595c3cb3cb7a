package events_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekleptocracy/campaign-agent/internal/events"
	"github.com/dekleptocracy/campaign-agent/internal/llm"
	"github.com/dekleptocracy/campaign-agent/internal/pipeline"
	"github.com/dekleptocracy/campaign-agent/internal/store"
)

func TestKafkaPublishUnreachableBrokerHonorsDeadline(t *testing.T) {
	p, err := events.NewKafkaPublisher([]string{"127.0.0.1:1"}, "")
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = p.Publish(ctx, events.New(events.TypeMemoryReset))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestInvestigateWithUnreachableBrokerReturns(t *testing.T) {
	pub, err := events.NewKafkaPublisher([]string{"127.0.0.1:1"}, "")
	require.NoError(t, err)
	defer pub.Close()

	s := store.NewFileStore(filepath.Join(t.TempDir(), "companies.txt"))
	p := pipeline.New(s, llm.NewMockGenerator("findings"), pub, nil, pipeline.Options{PublishTimeout: 200 * time.Millisecond})

	start := time.Now()
	out, err := p.Investigate(context.Background(), "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "findings", out)
	assert.Less(t, time.Since(start), 3*time.Second)

	names, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Corp"}, names)
}
