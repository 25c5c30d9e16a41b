package pos_test

import (
	. "github.com/sunitsen/flame/internal/adapter/pos"

	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

func TestSimulatedSinkDelivers(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	sink := NewSimulatedSink(clk, WithSinkFailureRate(0))

	if err := sink.Deliver(context.Background(), &model.POSEvent{ID: "e1"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
}

func TestSimulatedSinkFails(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	sink := NewSimulatedSink(clk, WithSinkFailureRate(1))

	if err := sink.Deliver(context.Background(), &model.POSEvent{ID: "e1"}); !errors.Is(err, ErrWebhookUnavailable) {
		t.Fatalf("expected ErrWebhookUnavailable, got %v", err)
	}
}

func TestSimulatedSinkFailureRateIsApproximate(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	sink := NewSimulatedSink(clk,
		WithSinkFailureRate(0.05),
		WithSinkRand(rand.New(rand.NewSource(3))),
	)

	const trials = 1000
	failures := 0
	for i := 0; i < trials; i++ {
		if err := sink.Deliver(context.Background(), &model.POSEvent{}); err != nil {
			failures++
		}
	}

	rate := float64(failures) / trials
	if rate < 0.01 || rate > 0.10 {
		t.Fatalf("failure rate %.3f outside expected band around 0.05", rate)
	}
}

func TestWebhookSinkRejectsRelativeURL(t *testing.T) {
	if _, err := NewWebhookSink("/hook", time.Second, discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestWebhookSinkDelivers(t *testing.T) {
	var gotKey string
	var gotEvent model.POSEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotEvent)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink, err := NewWebhookSink(server.URL, time.Second, discardLogger())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	event := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated}
	if err := sink.Deliver(context.Background(), event); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if gotKey != "e1" {
		t.Errorf("expected idempotency key e1, got %q", gotKey)
	}
	if gotEvent.OrderID != "o1" || gotEvent.EventType != model.POSEventOrderCreated {
		t.Errorf("unexpected delivered event: %+v", gotEvent)
	}
}

func TestWebhookSinkTreatsNon2xxAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	sink, err := NewWebhookSink(server.URL, time.Second, discardLogger())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	if err := sink.Deliver(context.Background(), &model.POSEvent{ID: "e1"}); err == nil {
		t.Fatal("expected delivery failure for 502")
	}
}

func TestWebhookSinkRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise Close blocks forever.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	sink, err := NewWebhookSink(server.URL, time.Minute, discardLogger())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := sink.Deliver(ctx, &model.POSEvent{ID: "e1"}); err == nil {
		t.Fatal("expected context deadline error")
	}
}
