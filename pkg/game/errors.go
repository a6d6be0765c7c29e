package game

import "fmt"

// ValidationError 进入目标状态的前置条件不满足，状态保持不变
type ValidationError struct {
	From   ViewState
	To     ViewState
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot switch from %s to %s: %s", e.From, e.To, e.Reason)
}

// IndexError 焦点下标越界，状态保持不变
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid card index %d (have %d cards)", e.Index, e.Count)
}

// TransitionFailure 进入动作执行失败，状态已回滚到 From
type TransitionFailure struct {
	From  ViewState
	To    ViewState
	Cause error
}

func (e *TransitionFailure) Error() string {
	return fmt.Sprintf("transition to %s failed, back in %s: %v", e.To, e.From, e.Cause)
}

func (e *TransitionFailure) Unwrap() error {
	return e.Cause
}

// RecoverableInconsistency 当前状态的前置条件已失效，已强制恢复到安全状态
type RecoverableInconsistency struct {
	State       ViewState
	RecoveredTo ViewState
	Reason      string
}

func (e *RecoverableInconsistency) Error() string {
	return fmt.Sprintf("state %s became invalid (%s), recovered to %s", e.State, e.Reason, e.RecoveredTo)
}
