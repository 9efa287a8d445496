package workflow

// Input 状态机决策输入
// 纯数据,由网关从工单当前快照和请求参数组装
type Input struct {
	From           Status   // 当前状态
	To             Status   // 请求的目标状态
	HasTechnician  bool     // 当前是否已指派技术员
	HasStartedAt   bool     // started_at 是否已设置(重复进入 In Progress 时不覆盖)
	DurationHours  *float64 // 请求提供的工时,终态必填且必须为正
	CompletionNotes string  // 完工备注,可选
}

// Decision 已批准的转换描述
// 只描述应落库的派生字段,由网关负责原子应用
type Decision struct {
	To              Status
	SetStartedAt    bool    // 首次进入 In Progress 时置 started_at = now
	SetCompletedAt  bool    // 进入终态时置 completed_at = now
	DurationHours   float64 // SetCompletedAt 为 true 时有效
	CompletionNotes string  // 仅在提供时落库
}

// Decide 评估一次状态转换请求
// 确定性纯函数:相同输入永远得到相同结论,不做任何 I/O
func Decide(in Input) (*Decision, error) {
	if !CanTransition(in.From, in.To) {
		return nil, ErrInvalidTransition(in.From, in.To)
	}

	switch in.To {
	case StatusInProgress:
		if !in.HasTechnician {
			return nil, ErrMissingTechnician()
		}
		return &Decision{
			To:           in.To,
			SetStartedAt: !in.HasStartedAt,
		}, nil

	case StatusRepaired, StatusScrap:
		if in.DurationHours == nil || *in.DurationHours <= 0 {
			return nil, ErrMissingDuration()
		}
		return &Decision{
			To:              in.To,
			SetCompletedAt:  true,
			DurationHours:   *in.DurationHours,
			CompletionNotes: in.CompletionNotes,
		}, nil
	}

	// 转换表里不会出现其他目标,防御性兜底
	return nil, ErrInvalidTransition(in.From, in.To)
}
