package workflow_test

import (
	"testing"

	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/stretchr/testify/assert"
)

// TestParseStatus 测试状态解析
func TestParseStatus(t *testing.T) {
	for _, s := range []string{"New", "In Progress", "Repaired", "Scrap"} {
		parsed, ok := workflow.ParseStatus(s)
		assert.True(t, ok)
		assert.Equal(t, s, string(parsed))
	}

	_, ok := workflow.ParseStatus("Done")
	assert.False(t, ok)
	_, ok = workflow.ParseStatus("new")
	assert.False(t, ok)
	_, ok = workflow.ParseStatus("")
	assert.False(t, ok)
}

// TestCanTransition 测试转换表的全部边
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    workflow.Status
		to      workflow.Status
		allowed bool
	}{
		{workflow.StatusNew, workflow.StatusInProgress, true},
		{workflow.StatusInProgress, workflow.StatusRepaired, true},
		{workflow.StatusInProgress, workflow.StatusScrap, true},

		// New 不能跳级或后退
		{workflow.StatusNew, workflow.StatusRepaired, false},
		{workflow.StatusNew, workflow.StatusScrap, false},
		{workflow.StatusNew, workflow.StatusNew, false},

		// In Progress 不能后退或自环
		{workflow.StatusInProgress, workflow.StatusNew, false},
		{workflow.StatusInProgress, workflow.StatusInProgress, false},

		// 终态没有出边,自环也不允许
		{workflow.StatusRepaired, workflow.StatusNew, false},
		{workflow.StatusRepaired, workflow.StatusInProgress, false},
		{workflow.StatusRepaired, workflow.StatusRepaired, false},
		{workflow.StatusRepaired, workflow.StatusScrap, false},
		{workflow.StatusScrap, workflow.StatusNew, false},
		{workflow.StatusScrap, workflow.StatusInProgress, false},
		{workflow.StatusScrap, workflow.StatusRepaired, false},
		{workflow.StatusScrap, workflow.StatusScrap, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.allowed, workflow.CanTransition(c.from, c.to),
			"%s -> %s", c.from, c.to)
	}
}

// TestIsTerminal 测试终态判断
func TestIsTerminal(t *testing.T) {
	assert.False(t, workflow.StatusNew.IsTerminal())
	assert.False(t, workflow.StatusInProgress.IsTerminal())
	assert.True(t, workflow.StatusRepaired.IsTerminal())
	assert.True(t, workflow.StatusScrap.IsTerminal())

	// 未知状态既不合法也不是终态
	assert.False(t, workflow.Status("Done").IsValid())
	assert.False(t, workflow.Status("Done").IsTerminal())
}

// TestAllowedTargets 测试合法目标集合
func TestAllowedTargets(t *testing.T) {
	assert.Equal(t, []workflow.Status{workflow.StatusInProgress}, workflow.AllowedTargets(workflow.StatusNew))
	assert.ElementsMatch(t,
		[]workflow.Status{workflow.StatusRepaired, workflow.StatusScrap},
		workflow.AllowedTargets(workflow.StatusInProgress))
	assert.Empty(t, workflow.AllowedTargets(workflow.StatusRepaired))
	assert.Empty(t, workflow.AllowedTargets(workflow.StatusScrap))
	assert.Empty(t, workflow.AllowedTargets(workflow.Status("Done")))
}
