package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/session"
	pkgLog "resume-optimizer/pkg/log"
)

// mockClient keeps values in a map.
type mockClient struct {
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func newMockClient() *mockClient { return &mockClient{data: map[string]string{}} }

func (m *mockClient) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cli := newMockClient()
	st := New(pkgLog.NewNop(), cli, time.Hour)

	s, created, err := st.GetOrCreate(ctx, "abc")
	if err != nil || !created {
		t.Fatalf("GetOrCreate = %v, %v", created, err)
	}
	s.SetContext(agent.SessionContext{
		Resume:         "r",
		JobDescription: "j",
		ResumeFileName: "cv.pdf",
		Profile:        agent.ProfileURLs{GitHub: "https://github.com/x"},
	})
	s.Append(
		agent.UserTurn("optimize"),
		agent.AssistantTurn("", []agent.ToolCall{{ID: "c1", Name: agent.ToolWebSearch, Args: map[string]interface{}{"query": "go"}}}),
		agent.ToolResultTurn(agent.ToolResult{CallID: "c1", Name: agent.ToolWebSearch, Payload: map[string]interface{}{"provider": "x"}}),
		agent.AssistantTurn("done", nil),
	)
	s.SetContext(agent.SessionContext{Resume: "r2"})
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	if cli.ttl != time.Hour {
		t.Errorf("ttl = %v", cli.ttl)
	}
	if _, ok := cli.data["resume-optimizer:session:abc"]; !ok {
		t.Fatalf("unexpected keys: %v", cli.data)
	}

	got, created, err := st.GetOrCreate(ctx, "abc")
	if err != nil || created {
		t.Fatalf("reload = %v, %v", created, err)
	}
	if got.Resume != "r2" || got.ContextFrom != 4 || got.ResumeFileName != "cv.pdf" || got.Profile.GitHub != "https://github.com/x" {
		t.Errorf("context lost: %+v", got)
	}
	if len(got.Turns) != 4 {
		t.Fatalf("turns = %d", len(got.Turns))
	}
	if got.Turns[1].ToolCalls[0].Args["query"] != "go" {
		t.Errorf("call args lost: %+v", got.Turns[1])
	}
	if r := got.Turns[2].Result; r == nil || r.CallID != "c1" || r.Payload.(map[string]interface{})["provider"] != "x" {
		t.Errorf("tool result lost: %+v", got.Turns[2])
	}
	if err := agent.ValidateTranscript(got.Turns); err != nil {
		t.Errorf("reloaded transcript invalid: %v", err)
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	cli := newMockClient()
	st := New(pkgLog.NewNop(), cli, 0)

	cli.data["resume-optimizer:session:bad"] = "{not json"
	if _, _, err := st.GetOrCreate(ctx, "bad"); !errors.Is(err, session.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}

	cli.getErr = errors.New("connection refused")
	if _, _, err := st.GetOrCreate(ctx, "x"); err == nil {
		t.Error("expected error")
	}

	if err := st.Save(ctx, nil); !errors.Is(err, session.ErrInvalidState) {
		t.Errorf("err = %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	cli := newMockClient()
	st := New(pkgLog.NewNop(), cli, time.Minute)
	_ = st.Save(ctx, agent.NewSession("x"))
	if err := st.Delete(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if len(cli.data) != 0 {
		t.Errorf("data = %v", cli.data)
	}
}

func TestLocker_UnreachableServerFailsFast(t *testing.T) {
	cli := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 10 * time.Millisecond, MaxRetries: -1})
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	_, err := NewLocker(pkgLog.NewNop(), cli, time.Second).Lock(ctx, "s")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, session.ErrSessionBusy) {
		t.Errorf("transport failure must not look like contention: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("lock should fail without waiting for ctx, took %v", elapsed)
	}
}
