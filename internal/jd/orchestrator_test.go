package jd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdparse/jdparse/internal/llm"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubProvider) Extract(ctx context.Context, jobText string) (llm.Response, error) {
	s.calls++
	if s.err != nil {
		return llm.Response{}, s.err
	}
	return llm.Response{Text: s.text}, nil
}

func (s *stubProvider) Healthy(ctx context.Context) bool { return s.err == nil }
func (s *stubProvider) Name() string                     { return s.name }
func (s *stubProvider) Kind() llm.Kind                   { return llm.KindLocal }

type captureSink struct {
	attempts []Attempt
}

func (c *captureSink) Emit(a Attempt) error {
	c.attempts = append(c.attempts, a)
	return nil
}

const goodResponse = `{"bill_rate": "$75 MAX", "requisition_id": "10126990", "duration": "6 months", "location": "Remote", "contact": "William Bristol"}`

func TestExtract_FirstSuccessWins(t *testing.T) {
	first := &stubProvider{name: "alpha", text: goodResponse}
	second := &stubProvider{name: "beta", text: goodResponse}
	sink := &captureSink{}

	orch := NewOrchestrator([]llm.Provider{first, second}, sink)
	rec, err := orch.Extract(context.Background(), "some posting", "job-1")
	require.NoError(t, err)

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later providers must not be consulted after a success")
	assert.Equal(t, "alpha", rec.Provider)
	assert.Equal(t, StatusSuccess, rec.Status)

	require.Len(t, sink.attempts, 1)
	assert.Equal(t, OutcomeSuccess, sink.attempts[0].Outcome)
}

func TestExtract_FallsThroughOnProviderError(t *testing.T) {
	first := &stubProvider{name: "alpha", err: errors.New("connection refused")}
	second := &stubProvider{name: "beta", text: goodResponse}
	third := &stubProvider{name: "gamma", text: goodResponse}
	sink := &captureSink{}

	orch := NewOrchestrator([]llm.Provider{first, second, third}, sink)
	rec, err := orch.Extract(context.Background(), "some posting", "job-2")
	require.NoError(t, err)

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
	assert.Equal(t, "beta", rec.Provider)

	require.Len(t, sink.attempts, 2)
	assert.Equal(t, OutcomeFailure, sink.attempts[0].Outcome)
	assert.Equal(t, "alpha", sink.attempts[0].Provider)
	assert.Equal(t, OutcomeSuccess, sink.attempts[1].Outcome)
	assert.Equal(t, "beta", sink.attempts[1].Provider)
}

func TestExtract_FallsThroughOnMalformedResponse(t *testing.T) {
	first := &stubProvider{name: "alpha", text: "I cannot help with that."}
	second := &stubProvider{name: "beta", text: goodResponse}
	sink := &captureSink{}

	orch := NewOrchestrator([]llm.Provider{first, second}, sink)
	rec, err := orch.Extract(context.Background(), "some posting", "job-3")
	require.NoError(t, err)

	assert.Equal(t, "beta", rec.Provider)
	require.Len(t, sink.attempts, 2)
	assert.Equal(t, OutcomeFailure, sink.attempts[0].Outcome)
	assert.Contains(t, sink.attempts[0].Error, "no JSON object")
}

func TestExtract_AllProvidersFail(t *testing.T) {
	lastErr := errors.New("quota exhausted")
	first := &stubProvider{name: "alpha", err: errors.New("connection refused")}
	second := &stubProvider{name: "beta", err: lastErr}
	sink := &captureSink{}

	orch := NewOrchestrator([]llm.Provider{first, second}, sink)
	rec, err := orch.Extract(context.Background(), "some posting", "job-4")
	require.Nil(t, rec)

	var unavailable *AllProvidersUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 2, unavailable.Attempts)
	assert.ErrorIs(t, err, lastErr)

	require.Len(t, sink.attempts, 2)
	for _, a := range sink.attempts {
		assert.Equal(t, OutcomeFailure, a.Outcome)
	}
}

func TestExtract_FallbackFillsMissingFields(t *testing.T) {
	jobText := "GBAMS Req ID: 10381263\nBill Rate: $70-85\nDuration: 6 months\nLocation: Remote\nMSP Owner: Jane Ortiz"
	provider := &stubProvider{name: "alpha", text: `{"summary": "A role."}`}

	orch := NewOrchestrator([]llm.Provider{provider}, nil)
	rec, err := orch.Extract(context.Background(), jobText, "job-5")
	require.NoError(t, err)

	assert.Equal(t, "$70-85", rec.Rate)
	assert.Equal(t, "10381263", rec.ExternalID)
	assert.Equal(t, "6 months", rec.Duration)
	assert.Equal(t, "Remote", rec.Location)
	assert.Equal(t, "Jane Ortiz", rec.Contact)
	assert.Equal(t, StatusSuccess, rec.Status)
}

func TestExtract_PartialWhenCriticalFieldMissing(t *testing.T) {
	provider := &stubProvider{name: "alpha", text: `{"bill_rate": "$75"}`}

	orch := NewOrchestrator([]llm.Provider{provider}, nil)
	rec, err := orch.Extract(context.Background(), "nothing recoverable here", "job-6")
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, rec.Status)
	assert.Equal(t, "$75", rec.Rate)
	assert.Empty(t, rec.ExternalID)
}

func TestExtract_RateSplitIntoBounds(t *testing.T) {
	provider := &stubProvider{name: "alpha", text: `{"bill_rate": "$80 MAX"}`}

	orch := NewOrchestrator([]llm.Provider{provider}, nil)
	rec, err := orch.Extract(context.Background(), "", "job-7")
	require.NoError(t, err)

	assert.Nil(t, rec.RateMin)
	require.NotNil(t, rec.RateMax)
	assert.Equal(t, 80.0, *rec.RateMax)
}

type faultySink struct {
	panics bool
}

func (f *faultySink) Emit(Attempt) error {
	if f.panics {
		panic("sink exploded")
	}
	return errors.New("sink unavailable")
}

func TestExtract_AuditFailuresNeverSurface(t *testing.T) {
	provider := &stubProvider{name: "alpha", text: goodResponse}

	for _, sink := range []*faultySink{{panics: false}, {panics: true}} {
		orch := NewOrchestrator([]llm.Provider{provider}, sink)
		rec, err := orch.Extract(context.Background(), "some posting", "job-8")
		require.NoError(t, err)
		require.NotNil(t, rec)
	}
}

func TestHealthCheck(t *testing.T) {
	up := &stubProvider{name: "alpha", text: goodResponse}
	down := &stubProvider{name: "beta", err: errors.New("unreachable")}

	orch := NewOrchestrator([]llm.Provider{up, down}, nil)
	health := orch.HealthCheck(context.Background())

	assert.Equal(t, map[string]bool{"alpha": true, "beta": false}, health)
}
