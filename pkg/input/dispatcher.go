// Package input 把键盘和触摸输入转换为画廊导航动作
//
// EbitenSource 每帧采集原始输入并给出 Action，
// Dispatcher 负责节流（防抖、状态切换冷却、动画进行中）后调用导航接口。
package input

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/logging"
)

// Action 导航动作
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionNext
	ActionPrevious
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "Advance"
	case ActionNext:
		return "Next"
	case ActionPrevious:
		return "Previous"
	default:
		return "None"
	}
}

// Navigator 导航目标（由 game.ViewStateMachine 实现）
type Navigator interface {
	RequestAdvance() error
	FocusNext() error
	FocusPrevious() error
}

// AnimationMonitor 报告是否仍有过渡动画在进行
type AnimationMonitor interface {
	Busy() bool
}

// Outcome 一次分发的结果
type Outcome int

const (
	// Dispatched 已调用导航接口（可能仍返回错误）
	Dispatched Outcome = iota
	// Ignored 无动作
	Ignored
	// RejectedCooldown 状态切换后的冷却期内
	RejectedCooldown
	// RejectedDebounce 距上次输入不足防抖间隔
	RejectedDebounce
	// RejectedBusy 过渡动画进行中
	RejectedBusy
)

func (o Outcome) String() string {
	switch o {
	case Dispatched:
		return "Dispatched"
	case Ignored:
		return "Ignored"
	case RejectedCooldown:
		return "RejectedCooldown"
	case RejectedDebounce:
		return "RejectedDebounce"
	case RejectedBusy:
		return "RejectedBusy"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Dispatcher 输入节流和分发
//
// 依次检查：状态切换冷却、防抖间隔、动画是否进行中。
// 通过防抖检查的输入即刷新防抖计时，即使随后因动画进行中被拒绝。
type Dispatcher struct {
	nav     Navigator
	monitor AnimationMonitor

	debounce time.Duration
	cooldown time.Duration

	lastInput       time.Time
	lastStateChange time.Time

	logger *log.Logger
}

// NewDispatcher 创建分发器，monitor 可为 nil
func NewDispatcher(nav Navigator, monitor AnimationMonitor) *Dispatcher {
	return &Dispatcher{
		nav:      nav,
		monitor:  monitor,
		debounce: config.InputDebounce,
		cooldown: config.StateChangeCooldown,
		logger:   logging.For("Input"),
	}
}

// NotifyStateChanged 记录状态切换时间，冷却期从此开始
func (d *Dispatcher) NotifyStateChanged(now time.Time) {
	d.lastStateChange = now
}

// Dispatch 节流后执行动作
//
// 导航接口返回的错误原样返回；导航过程中的 panic 转为错误，不会中断主循环。
func (d *Dispatcher) Dispatch(action Action, now time.Time) (outcome Outcome, err error) {
	if action == ActionNone {
		return Ignored, nil
	}

	if !d.lastStateChange.IsZero() && now.Sub(d.lastStateChange) < d.cooldown {
		d.logger.Debug("state change cooldown, input ignored", "action", action)
		return RejectedCooldown, nil
	}
	if !d.lastInput.IsZero() && now.Sub(d.lastInput) < d.debounce {
		d.logger.Debug("input too frequent, ignored", "action", action)
		return RejectedDebounce, nil
	}
	d.lastInput = now

	if d.monitor != nil && d.monitor.Busy() {
		d.logger.Debug("animation in progress, input ignored", "action", action)
		return RejectedBusy, nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("navigation panicked", "action", action, "panic", r)
			err = fmt.Errorf("input handling failed: %v", r)
		}
	}()

	switch action {
	case ActionAdvance:
		err = d.nav.RequestAdvance()
	case ActionNext:
		err = d.nav.FocusNext()
	case ActionPrevious:
		err = d.nav.FocusPrevious()
	default:
		return Ignored, nil
	}
	return Dispatched, err
}
