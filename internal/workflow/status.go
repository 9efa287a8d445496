package workflow

// Status 维修工单状态
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusRepaired   Status = "Repaired"
	StatusScrap      Status = "Scrap"
)

// transitions 状态转换表,工单状态只能沿这些边流转
// Repaired 和 Scrap 是终态,没有出边
var transitions = map[Status][]Status{
	StatusNew:        {StatusInProgress},
	StatusInProgress: {StatusRepaired, StatusScrap},
	StatusRepaired:   {},
	StatusScrap:      {},
}

// AllStatuses 返回所有合法状态(按看板列顺序)
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusRepaired, StatusScrap}
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusRepaired, StatusScrap:
		return Status(s), true
	}
	return "", false
}

// IsValid 判断状态是否合法
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal 判断是否为终态
// 终态工单不可再变更(包括自环),只能被软删除
func (s Status) IsTerminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// AllowedTargets 返回从当前状态出发的合法目标状态集合
// 未知状态返回空集合
func AllowedTargets(from Status) []Status {
	targets := transitions[from]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition 判断 from -> to 是否在转换表中
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
