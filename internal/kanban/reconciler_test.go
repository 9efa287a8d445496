package kanban

import (
	"context"
	"testing"

	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender 记录提交并按脚本返回错误
type fakeSender struct {
	calls []string
	err   error
}

func (f *fakeSender) SendTransition(_ context.Context, requestID string, target workflow.Status, _ TransitionInput) error {
	f.calls = append(f.calls, requestID+"->"+string(target))
	return f.err
}

// fakeFetcher 返回固定的权威看板数据
type fakeFetcher struct {
	calls   int
	grouped map[workflow.Status][]*Card
	err     error
	onFetch func()
}

func (f *fakeFetcher) FetchBoard(_ context.Context) (map[workflow.Status][]*Card, error) {
	f.calls++
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.grouped, f.err
}

func card(id string, status workflow.Status, hasTech, hasStarted bool) *Card {
	return &Card{
		ID:            id,
		Subject:       "工单 " + id,
		Priority:      "Medium",
		Status:        string(status),
		HasTechnician: hasTech,
		HasStartedAt:  hasStarted,
	}
}

func newTestBoard(cards ...*Card) *Board {
	grouped := make(map[workflow.Status][]*Card)
	for _, c := range cards {
		s := workflow.Status(c.Status)
		grouped[s] = append(grouped[s], c)
	}
	b := NewBoard()
	b.Load(grouped)
	return b
}

func hours(v float64) *float64 {
	return &v
}

func TestDrop_LegalMoveUpdatesBoard(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusNew, true, false))
	sender := &fakeSender{}
	fetcher := &fakeFetcher{}
	rec := NewReconciler(board, sender, fetcher)

	err := rec.Drop(context.Background(), "req-1", workflow.StatusInProgress, TransitionInput{})
	require.NoError(t, err)

	assert.Empty(t, board.Column(workflow.StatusNew))
	require.Len(t, board.Column(workflow.StatusInProgress), 1)
	assert.Equal(t, string(workflow.StatusInProgress), board.Column(workflow.StatusInProgress)[0].Status)
	assert.Equal(t, []string{"req-1->In Progress"}, sender.calls)
	assert.Zero(t, fetcher.calls) // 成功路径不需要刷新
}

func TestDrop_SameColumnIsNoop(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusNew, true, false))
	sender := &fakeSender{}
	rec := NewReconciler(board, sender, &fakeFetcher{})

	err := rec.Drop(context.Background(), "req-1", workflow.StatusNew, TransitionInput{})
	require.NoError(t, err)
	assert.Empty(t, sender.calls)
	require.Len(t, board.Column(workflow.StatusNew), 1)
}

func TestDrop_UnknownCard(t *testing.T) {
	rec := NewReconciler(NewBoard(), &fakeSender{}, &fakeFetcher{})

	err := rec.Drop(context.Background(), "ghost", workflow.StatusInProgress, TransitionInput{})
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))
}

func TestDrop_TerminalSourceRejected(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusRepaired, true, true))
	sender := &fakeSender{}
	rec := NewReconciler(board, sender, &fakeFetcher{})

	err := rec.Drop(context.Background(), "req-1", workflow.StatusInProgress, TransitionInput{})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))
	// 本地拒绝,从未提交
	assert.Empty(t, sender.calls)
	require.Len(t, board.Column(workflow.StatusRepaired), 1)
}

func TestDrop_LocalPrecheckBlocksSubmit(t *testing.T) {
	// 没有技术员的 New 卡片不能拖进 In Progress
	board := newTestBoard(card("req-1", workflow.StatusNew, false, false))
	sender := &fakeSender{}
	rec := NewReconciler(board, sender, &fakeFetcher{})

	err := rec.Drop(context.Background(), "req-1", workflow.StatusInProgress, TransitionInput{})
	require.Error(t, err)
	assert.Equal(t, workflow.KindMissingTechnician, workflow.KindOf(err))
	assert.Empty(t, sender.calls)
	require.Len(t, board.Column(workflow.StatusNew), 1)

	// 进终态列缺工时同样本地拦截
	board2 := newTestBoard(card("req-2", workflow.StatusInProgress, true, true))
	rec2 := NewReconciler(board2, sender, &fakeFetcher{})
	err = rec2.Drop(context.Background(), "req-2", workflow.StatusRepaired, TransitionInput{})
	require.Error(t, err)
	assert.Equal(t, workflow.KindMissingDuration, workflow.KindOf(err))
	assert.Empty(t, sender.calls)
}

func TestDrop_ServerRejectionRevertsAndRefreshes(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusInProgress, true, true))

	// 服务端权威状态: 并发赢家已把工单推进到 Scrap
	authoritative := map[workflow.Status][]*Card{
		workflow.StatusScrap: {card("req-1", workflow.StatusScrap, true, true)},
	}
	sender := &fakeSender{err: workflow.ErrConflict("req-1")}
	fetcher := &fakeFetcher{grouped: authoritative}
	rec := NewReconciler(board, sender, fetcher)

	err := rec.Drop(context.Background(), "req-1", workflow.StatusRepaired, TransitionInput{
		DurationHours: hours(1.5),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindConflict, workflow.KindOf(err))

	// 提交过一次,拒绝后刷新为权威状态
	assert.Equal(t, 1, len(sender.calls))
	assert.Equal(t, 1, fetcher.calls)
	assert.Empty(t, board.Column(workflow.StatusInProgress))
	assert.Empty(t, board.Column(workflow.StatusRepaired))
	require.Len(t, board.Column(workflow.StatusScrap), 1)
}

func TestDrop_ServerRejectionWithFailedRefreshKeepsRevert(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusInProgress, true, true))
	sender := &fakeSender{err: workflow.ErrConflict("req-1")}
	fetcher := &fakeFetcher{err: context.DeadlineExceeded}
	rec := NewReconciler(board, sender, fetcher)

	err := rec.Drop(context.Background(), "req-1", workflow.StatusRepaired, TransitionInput{
		DurationHours: hours(1),
	})
	require.Error(t, err)

	// 刷新失败时保持回滚后的本地状态,不应用任何数据
	require.Len(t, board.Column(workflow.StatusInProgress), 1)
	assert.Equal(t, string(workflow.StatusInProgress), board.Column(workflow.StatusInProgress)[0].Status)
}

func TestRefresh_StaleFetchDiscarded(t *testing.T) {
	board := newTestBoard(card("req-1", workflow.StatusNew, true, false))
	fetcher := &fakeFetcher{grouped: map[workflow.Status][]*Card{
		workflow.StatusScrap: {card("req-9", workflow.StatusScrap, true, true)},
	}}
	rec := NewReconciler(board, &fakeSender{}, fetcher)

	// 拉取在途时又有一次新的拉取启动,序号前移,本次结果作废
	raced := false
	fetcher.onFetch = func() {
		if !raced {
			raced = true
			rec.fetchSeq.Add(1)
		}
	}
	rec.Refresh(context.Background())

	// 过期响应被丢弃,看板保持原状
	require.Len(t, board.Column(workflow.StatusNew), 1)
	assert.Empty(t, board.Column(workflow.StatusScrap))

	// 无竞争的 Refresh 正常应用最新数据
	rec.Refresh(context.Background())
	assert.Empty(t, board.Column(workflow.StatusNew))
	require.Len(t, board.Column(workflow.StatusScrap), 1)
}
