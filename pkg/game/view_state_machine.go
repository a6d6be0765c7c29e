package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/logging"
)

// Choreographer 布局过渡编排（由 systems.ChoreographySystem 实现）
//
// done 在该过渡调度的最后一个插值任务完成后恰好调用一次
type Choreographer interface {
	ToTable(done func())
	ToSphere(done func())
	ToCardFocus(index int, done func())
	ToCardFixed(index int, done func())
}

// Rotator 环境旋转控制（由 systems.RotationSystem 实现）
type Rotator interface {
	Start(initialSpeed float64, accelerate bool)
	Stop(immediate bool)
	SetWobble(enabled bool)
	// SetExcludedIndex 设置不参与旋转的卡片下标，-1 表示全部参与
	SetExcludedIndex(index int)
}

// Presenter 界面层的显示开关
type Presenter interface {
	ShowUpload(visible bool)
	ShowTable(visible bool)
	SetInstruction(text string)
}

// TableContent 表格渲染器是否已生成内容
type TableContent interface {
	HasContent() bool
}

// StateListener 状态切换通知
type StateListener func(from, to ViewState)

// SetStateOptions SetState 选项
type SetStateOptions struct {
	// Force 目标状态与当前状态相同时也重新执行进入动作
	Force bool
}

// ViewStateMachine 画廊视图状态机
//
// 职责：
//   - 按固定循环顺序推进状态，并在切换前校验前置条件
//   - 执行目标状态的进入动作（界面开关、旋转控制、布局过渡）
//   - 进入动作失败时回滚状态，保证状态与其进入动作的结果一致
//   - 前置条件失效时强制恢复到 Table 或 Upload
//
// 单线程使用，所有方法都在渲染循环中调用。
type ViewStateMachine struct {
	session      *Session
	choreography Choreographer
	rotation     Rotator
	presenter    Presenter
	table        TableContent

	current   ViewState
	listeners []StateListener

	// generation 每次成功切换递增，过期的过渡完成回调据此忽略
	generation uint64

	// RotationInitialSpeed 进入旋转状态时的初始速度
	RotationInitialSpeed float64

	// RotationAccelerate 进入旋转状态时是否加速到最大速度
	RotationAccelerate bool

	logger *log.Logger
}

// NewViewStateMachine 创建状态机，初始状态为 Upload（不执行进入动作）
func NewViewStateMachine(session *Session, choreography Choreographer, rotation Rotator, presenter Presenter, table TableContent) *ViewStateMachine {
	return &ViewStateMachine{
		session:              session,
		choreography:         choreography,
		rotation:             rotation,
		presenter:            presenter,
		table:                table,
		current:              StateUpload,
		RotationInitialSpeed: config.RotationMinSpeed,
		RotationAccelerate:   true,
		logger:               logging.For("ViewStateMachine"),
	}
}

// State 当前状态
func (m *ViewStateMachine) State() ViewState {
	return m.current
}

// Session 状态机持有的会话
func (m *ViewStateMachine) Session() *Session {
	return m.session
}

// OnStateChanged 注册状态切换监听器（仅在切换成功后调用）
func (m *ViewStateMachine) OnStateChanged(listener StateListener) {
	m.listeners = append(m.listeners, listener)
}

// RequestAdvance 推进到循环中的下一个状态
func (m *ViewStateMachine) RequestAdvance() error {
	next := m.current.Next()
	if err := m.ValidateTransition(m.current, next); err != nil {
		m.logger.Warn("transition rejected", "from", m.current, "to", next, "err", err)
		return err
	}
	return m.SetState(next, SetStateOptions{})
}

// ValidateTransition 检查进入 to 的前置条件
func (m *ViewStateMachine) ValidateTransition(from, to ViewState) error {
	req, ok := requirements[to]
	if !ok {
		return &ValidationError{From: from, To: to, Reason: "unknown state"}
	}

	if req.RequiresData && !m.session.HasData() {
		return &ValidationError{From: from, To: to, Reason: "no data loaded, upload a file first"}
	}
	if req.MinObjects > 0 && m.session.CardCount() < req.MinObjects {
		return &ValidationError{From: from, To: to, Reason: fmt.Sprintf("at least %d card(s) required", req.MinObjects)}
	}
	if req.RequiresTableContent && (m.table == nil || !m.table.HasContent()) {
		return &ValidationError{From: from, To: to, Reason: "table has no rows to show"}
	}
	if req.RequiresFocus && !m.session.ValidIndex(m.session.FocusedIndex) {
		return &IndexError{Index: m.session.FocusedIndex, Count: len(m.session.Cards)}
	}
	return nil
}

// SetState 切换到指定状态
//
// 目标与当前状态相同时不做任何事（除非 opts.Force）。
// 先校验再修改；进入动作失败时回滚并返回 *TransitionFailure，监听器不会收到通知。
func (m *ViewStateMachine) SetState(to ViewState, opts SetStateOptions) error {
	if to == m.current && !opts.Force {
		return nil
	}
	if err := m.ValidateTransition(m.current, to); err != nil {
		return err
	}
	return m.transition(to)
}

// transition 不做校验地切换并执行进入动作
func (m *ViewStateMachine) transition(to ViewState) error {
	from := m.current
	m.current = to
	m.generation++

	if err := m.runEnter(to); err != nil {
		m.current = from
		m.generation++
		m.logger.Error("enter action failed, state rolled back", "from", from, "to", to, "err", err)
		return &TransitionFailure{From: from, To: to, Cause: err}
	}

	m.logger.Info("state changed", "from", from, "to", to, "session", m.session.ID)
	for _, l := range m.listeners {
		l(from, to)
	}
	return nil
}

// runEnter 执行进入动作，panic 转换为错误
func (m *ViewStateMachine) runEnter(to ViewState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enter action panicked: %v", r)
		}
	}()
	return m.enter(to)
}

func (m *ViewStateMachine) enter(to ViewState) error {
	gen := m.generation
	// stillIn 过渡完成回调只在状态未被再次切换时生效
	stillIn := func() bool { return m.generation == gen && m.current == to }

	switch to {
	case StateUpload:
		m.presenter.ShowTable(false)
		m.presenter.ShowUpload(true)
		m.rotation.Stop(true)

	case StateTable:
		m.presenter.ShowUpload(false)
		m.presenter.ShowTable(true)
		m.rotation.Stop(true)
		m.rotation.SetExcludedIndex(-1)
		m.choreography.ToTable(nil)

	case StateSphere:
		m.presenter.ShowUpload(false)
		m.presenter.ShowTable(false)
		m.choreography.ToSphere(func() {
			if !stillIn() {
				return
			}
			m.rotation.SetExcludedIndex(-1)
			m.rotation.SetWobble(true)
			m.rotation.Start(m.RotationInitialSpeed, m.RotationAccelerate)
		})

	case StateCardFocus:
		index := m.session.FocusedIndex
		m.presenter.ShowUpload(false)
		m.presenter.ShowTable(false)
		m.rotation.Stop(true)
		m.choreography.ToCardFocus(index, nil)

	case StateCardFixed:
		index := m.session.FocusedIndex
		m.presenter.ShowUpload(false)
		m.presenter.ShowTable(false)
		m.rotation.SetExcludedIndex(index)
		m.choreography.ToCardFixed(index, func() {
			if !stillIn() {
				return
			}
			m.rotation.SetWobble(false)
			m.rotation.Start(m.RotationInitialSpeed, m.RotationAccelerate)
		})

	default:
		return fmt.Errorf("unknown state %d", int(to))
	}

	m.presenter.SetInstruction(to.Instruction())
	return nil
}

// Recover 检查当前状态的前置条件，失效时强制切换到安全状态
//
// 有数据时恢复到 Table，否则恢复到 Upload；跳过常规校验。
// 返回 nil 表示无需恢复；恢复成功返回 *RecoverableInconsistency 供上层提示。
func (m *ViewStateMachine) Recover() error {
	reason := m.currentInvalidReason()
	if reason == "" {
		return nil
	}

	from := m.current
	target := StateUpload
	if m.session.HasData() && m.session.CardCount() > 0 {
		target = StateTable
	}

	m.logger.Warn("current state is invalid, forcing recovery", "state", from, "reason", reason, "to", target)
	if err := m.transition(target); err != nil {
		if target == StateUpload {
			return err
		}
		// Table 进入失败时退回 Upload
		if err := m.transition(StateUpload); err != nil {
			return err
		}
		target = StateUpload
	}
	return &RecoverableInconsistency{State: from, RecoveredTo: target, Reason: reason}
}

// currentInvalidReason 当前状态不再满足前置条件的原因，满足时返回空串
//
// Table 的表格内容检查只在进入时有意义，恢复时不再要求
func (m *ViewStateMachine) currentInvalidReason() string {
	req := requirements[m.current]
	switch {
	case req.RequiresData && !m.session.HasData():
		return "dataset is empty"
	case req.MinObjects > 0 && m.session.CardCount() < req.MinObjects:
		return "not enough cards"
	case req.RequiresFocus && !m.session.ValidIndex(m.session.FocusedIndex):
		return "focused card is gone"
	}
	return ""
}

// FocusOnCard 聚焦指定卡片
//
//   - CardFocus 中：切换焦点并重新执行聚焦过渡
//   - Sphere 中：设置焦点并前进到 CardFocus
//   - 其他状态：拒绝，避免跳过中间状态
func (m *ViewStateMachine) FocusOnCard(index int) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}
	switch m.current {
	case StateCardFocus:
		return m.retarget(index, StateCardFocus)
	case StateSphere:
		return m.retarget(index, StateCardFocus)
	default:
		return &ValidationError{From: m.current, To: StateCardFocus, Reason: "only reachable from Sphere or CardFocus"}
	}
}

// FixCard 固定指定卡片
//
//   - CardFixed 中：切换固定卡片并重新执行固定过渡
//   - CardFocus 中：设置焦点并前进到 CardFixed
//   - 其他状态：拒绝
func (m *ViewStateMachine) FixCard(index int) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}
	switch m.current {
	case StateCardFixed, StateCardFocus:
		return m.retarget(index, StateCardFixed)
	default:
		return &ValidationError{From: m.current, To: StateCardFixed, Reason: "only reachable from CardFocus or CardFixed"}
	}
}

// retarget 修改焦点后切换到 to；失败时恢复原焦点
func (m *ViewStateMachine) retarget(index int, to ViewState) error {
	prev := m.session.FocusedIndex
	m.session.FocusedIndex = index
	if err := m.SetState(to, SetStateOptions{Force: true}); err != nil {
		m.session.FocusedIndex = prev
		return err
	}
	return nil
}

// FocusNext 焦点移到下一张卡片（循环）
func (m *ViewStateMachine) FocusNext() error {
	return m.stepFocus(1)
}

// FocusPrevious 焦点移到上一张卡片（循环）
func (m *ViewStateMachine) FocusPrevious() error {
	return m.stepFocus(-1)
}

// stepFocus 在聚焦/固定状态下留在原状态重新编排，其他状态只移动焦点下标
func (m *ViewStateMachine) stepFocus(delta int) error {
	n := len(m.session.Cards)
	if !m.session.HasData() || n == 0 {
		return &ValidationError{From: m.current, To: m.current, Reason: "no cards to browse"}
	}

	cur := m.session.FocusedIndex
	if cur < 0 || cur >= n {
		cur = 0
		if delta > 0 {
			cur = n - 1
		}
	}
	next := ((cur+delta)%n + n) % n

	switch m.current {
	case StateCardFocus:
		return m.FocusOnCard(next)
	case StateCardFixed:
		return m.FixCard(next)
	default:
		if err := m.checkIndex(next); err != nil {
			return err
		}
		m.session.FocusedIndex = next
		return nil
	}
}

func (m *ViewStateMachine) checkIndex(index int) error {
	if !m.session.ValidIndex(index) {
		return &IndexError{Index: index, Count: len(m.session.Cards)}
	}
	return nil
}
