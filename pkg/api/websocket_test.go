package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// -----------------------------------------------------------------------------
// Hub and Client Tests
// -----------------------------------------------------------------------------

func TestHub_RunAndStop(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	hub.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Hub.Run did not stop after Stop was called")
	}
}

func TestClient_Subscriptions(t *testing.T) {
	client := NewClient(NewHub(), nil)

	client.handleSubscribe(WSMessage{Type: EventTypeSubscribe, Channels: []string{ChannelProgress, "bogus"}})
	if !client.IsSubscribed(ChannelProgress) {
		t.Error("Expected progress subscription")
	}
	if client.IsSubscribed("bogus") {
		t.Error("Expected unknown channel to be ignored")
	}

	client.handleSubscribe(WSMessage{Type: EventTypeUnsubscribe, Channels: []string{ChannelProgress}})
	if client.IsSubscribed(ChannelProgress) {
		t.Error("Expected progress to be unsubscribed")
	}

	client.handleSubscribe(WSMessage{Type: EventTypeSubscribe})
	select {
	case raw := <-client.send:
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != EventTypeError {
			t.Errorf("Expected error frame, got %s", raw)
		}
	default:
		t.Error("Expected an error frame for an empty subscribe")
	}
}

func TestClient_Ping(t *testing.T) {
	client := NewClient(NewHub(), nil)
	client.handleMessage([]byte(`{"type":"ping"}`))

	raw := <-client.send
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != EventTypePong || msg.Timestamp == "" {
		t.Errorf("Expected pong with timestamp, got %+v", msg)
	}
}

func TestProgressEvent_Type(t *testing.T) {
	if (&ProgressEvent{Percent: 40}).Type() != EventTypeTrainingProgress {
		t.Error("Expected training_progress")
	}
	if (&ProgressEvent{Percent: 100, Complete: true}).Type() != EventTypeTrainingComplete {
		t.Error("Expected training_complete")
	}
}

// -----------------------------------------------------------------------------
// End-to-end WebSocket Tests
// -----------------------------------------------------------------------------

func startHubServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	srv := NewServer(&ServerConfig{CORSOrigins: []string{"*"}})
	RegisterRoutes(srv.Router(), Services{
		Evaluator: evaluator.New(nil, evaluator.Config{Threshold: *metrics.DefaultThreshold()}),
		History:   history.NewStaticStore(),
		Renderer:  NewRenderer(report.DefaultConfig(), 1, nil),
		Threshold: *metrics.DefaultThreshold(),
		Hub:       hub,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, hub
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// readType reads frames until one of the wanted type arrives. Batched
// frames are newline separated.
func readType(t *testing.T, conn *websocket.Conn, want string) WSMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			var msg WSMessage
			if err := json.Unmarshal([]byte(line), &msg); err != nil {
				t.Fatalf("decode %q: %v", line, err)
			}
			if msg.Type == want {
				return msg
			}
		}
	}
}

func TestWebSocket_ReportGenerated(t *testing.T) {
	ts, hub := startHubServer(t)
	conn := dial(t, ts, "?channels=reports")
	waitForClients(t, hub, 1)

	resp, err := http.Post(ts.URL+"/api/report", "application/json", strings.NewReader(testReportBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	msg := readType(t, conn, EventTypeReportGenerated)
	data, _ := json.Marshal(msg.Data)
	var event ReportEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.ModelName != "Test Model" || event.Fingerprint != resp.Header.Get(HeaderFingerprint) {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestWebSocket_TrainingProgress(t *testing.T) {
	ts, hub := startHubServer(t)
	conn := dial(t, ts, "")
	waitForClients(t, hub, 1)

	body := `{"datasetChoice":"separate","trainFile":"train.csv","testFile":"test.csv"}`
	resp, err := http.Post(ts.URL+"/api/training?runId=ws-run", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	msg := readType(t, conn, EventTypeTrainingComplete)
	data, _ := json.Marshal(msg.Data)
	var event ProgressEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.RunID != "ws-run" || event.Percent != 100 {
		t.Errorf("Unexpected completion %+v", event)
	}
}

func TestWebSocket_Ping(t *testing.T) {
	ts, hub := startHubServer(t)
	conn := dial(t, ts, "")
	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(WSMessage{Type: EventTypePing}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readType(t, conn, EventTypePong)
}
