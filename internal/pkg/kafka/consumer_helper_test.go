package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/IBM/sarama"
)

type stubSession struct {
	ctx     context.Context
	marked  []*sarama.ConsumerMessage
	commits int
}

func newStubSession() *stubSession {
	return &stubSession{ctx: context.Background()}
}

func (s *stubSession) Claims() map[string][]int32 { return nil }

func (s *stubSession) MemberID() string { return "test-member" }

func (s *stubSession) GenerationID() int32 { return 1 }

func (s *stubSession) MarkOffset(string, int32, int64, string) {}

func (s *stubSession) Commit() { s.commits++ }

func (s *stubSession) ResetOffset(string, int32, int64, string) {}

func (s *stubSession) Context() context.Context { return s.ctx }

func (s *stubSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg)
}

func batchOf(offsets ...int64) []*sarama.ConsumerMessage {
	messages := make([]*sarama.ConsumerMessage, 0, len(offsets))
	for _, offset := range offsets {
		messages = append(messages, &sarama.ConsumerMessage{
			Topic:     "fluxo-notifications",
			Partition: 0,
			Offset:    offset,
		})
	}
	return messages
}

// 处理成功后必须标记并显式提交位点，否则重启会重复消费整批消息
func TestProcessBatchCommitsMarkedOffsets(t *testing.T) {
	session := newStubSession()
	messages := batchOf(10, 11, 12)

	processBatch(session, messages, func(_ context.Context, _ *sarama.ConsumerMessage) error {
		return nil
	})

	if len(session.marked) != 1 || session.marked[0].Offset != 12 {
		t.Fatalf("Expected last offset 12 marked once, got %+v", session.marked)
	}
	if session.commits != 1 {
		t.Errorf("Expected 1 commit, got %d", session.commits)
	}
}

// 毒消息重试到上限后放弃，批次照常提交，不能卡死分区
func TestProcessBatchDropsPoisonMessage(t *testing.T) {
	session := newStubSession()
	messages := batchOf(20)

	var attempts int64
	processBatch(session, messages, func(_ context.Context, _ *sarama.ConsumerMessage) error {
		atomic.AddInt64(&attempts, 1)
		return errors.New("db unavailable")
	})

	if got := atomic.LoadInt64(&attempts); got != maxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", maxRetries+1, got)
	}
	if len(session.marked) != 1 {
		t.Fatalf("Batch must still be marked after dropping, got %d marks", len(session.marked))
	}
	if session.commits != 1 {
		t.Errorf("Expected 1 commit, got %d", session.commits)
	}
}
