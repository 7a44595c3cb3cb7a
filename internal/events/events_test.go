package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsSortableIDs(t *testing.T) {
	a := New(TypeCompanyInvestigated)
	b := New(TypeCompanyInvestigated)

	assert.Len(t, a.ID, 26)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID, b.ID)
	assert.False(t, a.At.IsZero())
}

func TestKey(t *testing.T) {
	e := New(TypeMemoryReset)
	assert.Equal(t, TypeMemoryReset, e.Key())

	e.Company = "Acme Corp"
	assert.Equal(t, "Acme Corp", e.Key())
}

func TestMarshal(t *testing.T) {
	e := New(TypeCampaignGenerated)
	e.Company = "Acme Corp"
	e.Market = "Denmark"

	b, err := e.Marshal()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "campaign.generated", got["type"])
	assert.Equal(t, "Denmark", got["market"])
	assert.NotContains(t, got, "count")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()
	r.Publish(ctx, New(TypeCandidatesListed))
	r.Publish(ctx, New(TypeMemoryReset))

	assert.Equal(t, []string{TypeCandidatesListed, TypeMemoryReset}, r.Types())
	assert.Len(t, r.Events(), 2)
	assert.NoError(t, r.Close())
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Publish(context.Background(), New(TypeMemoryReset)))
	assert.NoError(t, Discard.Close())
}

func TestKafkaPublisherRequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "")
	assert.Error(t, err)
}

func TestKafkaPublisherClosed(t *testing.T) {
	// kgo does not dial until the first produce, so no broker is needed here.
	p, err := NewKafkaPublisher([]string{"127.0.0.1:1"}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.Topic())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Error(t, p.Publish(context.Background(), New(TypeMemoryReset)))
}
