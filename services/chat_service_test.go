package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"chatproxy/models"
)

type fakeGenerator struct {
	answers []string
	err     error
	prompts [][]models.Message
	block   bool
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt []models.Message) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if g.err != nil {
		return "", g.err
	}
	if len(g.answers) == 0 {
		return "ok", nil
	}
	answer := g.answers[0]
	g.answers = g.answers[1:]
	return answer, nil
}

func TestChatService_AskRecordsPair(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	gen := &fakeGenerator{answers: []string{"4"}}
	svc := NewChatService(store, gen, time.Second)

	result, err := svc.Ask(context.Background(), "c1", "What is 2+2?")
	if err != nil {
		t.Fatal(err)
	}
	if result.Answer != "4" {
		t.Errorf("expected answer 4, got %q", result.Answer)
	}
	want := []models.Turn{models.UserTurn("What is 2+2?"), models.AssistantTurn("4")}
	if !reflect.DeepEqual(result.History, want) {
		t.Errorf("history = %+v, want %+v", result.History, want)
	}
	if !reflect.DeepEqual(store.Get("c1"), want) {
		t.Errorf("stored history = %+v, want %+v", store.Get("c1"), want)
	}
	if len(gen.prompts[0]) != 2 {
		t.Errorf("first prompt should be system + question, got %d entries", len(gen.prompts[0]))
	}
}

func TestChatService_HistoryCapsAtWindow(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	gen := &fakeGenerator{answers: []string{"4", "a2", "a3", "a4"}}
	svc := NewChatService(store, gen, time.Second)

	questions := []string{"What is 2+2?", "q2", "q3", "q4"}
	var result *AskResult
	for _, q := range questions {
		var err error
		result, err = svc.Ask(context.Background(), "c1", q)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.History) > DefaultHistoryWindow {
			t.Fatalf("history exceeded window: %d", len(result.History))
		}
	}

	want := []models.Turn{
		models.UserTurn("q2"), models.AssistantTurn("a2"),
		models.UserTurn("q3"), models.AssistantTurn("a3"),
		models.UserTurn("q4"), models.AssistantTurn("a4"),
	}
	if !reflect.DeepEqual(result.History, want) {
		t.Errorf("history = %+v, want %+v", result.History, want)
	}
	// Fourth prompt replays the three stored pairs before eviction.
	if got := len(gen.prompts[3]); got != 8 {
		t.Errorf("expected 8 prompt entries on the fourth ask, got %d", got)
	}
}

func TestChatService_BackendFailureLeavesHistory(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	store.Append("c1", models.UserTurn("q1"), models.AssistantTurn("a1"))
	before := store.Get("c1")

	gen := &fakeGenerator{err: fmt.Errorf("%w: status 500", ErrBackendStatus)}
	svc := NewChatService(store, gen, time.Second)

	_, err := svc.Ask(context.Background(), "c1", "q2")
	if !errors.Is(err, ErrBackendStatus) {
		t.Fatalf("expected backend status error, got %v", err)
	}
	if !reflect.DeepEqual(store.Get("c1"), before) {
		t.Errorf("history changed after failure: %+v", store.Get("c1"))
	}
}

func TestChatService_BackendFailureDoesNotCreateEntry(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	svc := NewChatService(store, &fakeGenerator{err: errors.New("connection refused")}, time.Second)

	_, err := svc.Ask(context.Background(), "new", "hello")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if _, ok := store.Lookup("new"); ok {
		t.Error("failed ask must not create a conversation")
	}
}

func TestChatService_Timeout(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	svc := NewChatService(store, &fakeGenerator{block: true}, 20*time.Millisecond)

	_, err := svc.Ask(context.Background(), "c1", "slow?")
	if !errors.Is(err, ErrBackendTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if errors.Is(err, ErrBackendUnavailable) {
		t.Error("timeout must be distinct from connection failure")
	}
}

func TestChatService_EmptyQuestion(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewChatService(NewConversationStore(DefaultHistoryWindow), gen, time.Second)

	if _, err := svc.Ask(context.Background(), "c1", "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Error("backend must not be called for an empty question")
	}
}

func TestChatService_DeleteThenLookup(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	svc := NewChatService(store, &fakeGenerator{}, time.Second)
	if _, err := svc.Ask(context.Background(), "c1", "hi"); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteConversation("c1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteConversation("c1"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
	if _, err := svc.Conversation("c1"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected not found on lookup, got %v", err)
	}
}

func TestChatService_StartConversation(t *testing.T) {
	store := NewConversationStore(DefaultHistoryWindow)
	svc := NewChatService(store, &fakeGenerator{}, time.Second)

	id := svc.StartConversation()
	if id == "" {
		t.Fatal("expected an identifier")
	}
	turns, err := svc.Conversation(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 0 {
		t.Errorf("expected empty history, got %+v", turns)
	}
	if other := svc.StartConversation(); other == id {
		t.Error("expected distinct identifiers")
	}
}
