package kanban

import (
	"context"
	"sync/atomic"

	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
)

// TransitionSender 状态转换提交接口
// 由 HTTP 客户端实现,把已通过本地校验的转换提交给服务端
type TransitionSender interface {
	SendTransition(ctx context.Context, requestID string, target workflow.Status, input TransitionInput) error
}

// BoardFetcher 看板数据拉取接口
type BoardFetcher interface {
	FetchBoard(ctx context.Context) (map[workflow.Status][]*Card, error)
}

// TransitionInput 转换附带的结构化输入
// 完工工时和备注由表单收集后一并传入,而不是在拖拽途中弹窗阻塞
type TransitionInput struct {
	DurationHours   *float64
	CompletionNotes string
}

// Reconciler 看板拖拽协调器
// 用与服务端相同的转换表做本地预检,先乐观移动再提交,
// 服务端拒绝(包括并发竞争)时回滚并重新拉取权威看板状态。
type Reconciler struct {
	board   *Board
	sender  TransitionSender
	fetcher BoardFetcher

	// fetchSeq 单调递增的拉取序号,后发的拉取作废先发的(latest wins)
	fetchSeq atomic.Uint64
}

// NewReconciler 创建协调器
func NewReconciler(board *Board, sender TransitionSender, fetcher BoardFetcher) *Reconciler {
	return &Reconciler{
		board:   board,
		sender:  sender,
		fetcher: fetcher,
	}
}

// Board 返回注入的看板状态
func (r *Reconciler) Board() *Board {
	return r.board
}

// Drop 处理一次拖拽落下
// 返回 nil 表示卡片已落位(本地与服务端一致);
// 返回 *workflow.Error 表示拖拽被拒,卡片已恢复原位。
func (r *Reconciler) Drop(ctx context.Context, cardID string, target workflow.Status, input TransitionInput) error {
	card, source, ok := r.board.Find(cardID)
	if !ok {
		return workflow.ErrNotFound(cardID)
	}

	// 同列落下不是转换
	if source == target {
		return nil
	}

	// 终态列不接受任何落下,在落点一级就拒绝
	if source.IsTerminal() {
		return workflow.ErrInvalidTransition(source, target)
	}

	// 本地预检: 与服务端状态机同一张转换表、同一组前置条件
	if _, err := workflow.Decide(workflow.Input{
		From:            source,
		To:              target,
		HasTechnician:   card.HasTechnician,
		HasStartedAt:    card.HasStartedAt,
		DurationHours:   input.DurationHours,
		CompletionNotes: input.CompletionNotes,
	}); err != nil {
		return err
	}

	// 乐观移动,先让 UI 立即响应
	r.board.move(cardID, source, target)

	if err := r.sender.SendTransition(ctx, cardID, target, input); err != nil {
		// 服务端拒绝(含 4.2 的并发竞争): 回滚乐观移动并刷新权威状态
		r.board.move(cardID, target, source)
		r.Refresh(ctx)
		return err
	}

	return nil
}

// Refresh 重新拉取权威看板状态
// 可被后续用户操作取消: 只有最新一次拉取的结果会被应用,过期响应直接丢弃
func (r *Reconciler) Refresh(ctx context.Context) {
	seq := r.fetchSeq.Add(1)

	grouped, err := r.fetcher.FetchBoard(ctx)
	if err != nil {
		return
	}
	if r.fetchSeq.Load() != seq {
		// 已有更新的拉取在途,本次响应过期
		return
	}
	r.board.Load(grouped)
}
