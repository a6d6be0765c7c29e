package tween

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/cardgallery/pkg/logging"
)

// Manager 全局插值任务调度器
//
// 渲染循环每帧调用一次 Update(dt)。单线程使用，不需要加锁。
// 单个任务的回调 panic 会被捕获并记录，该任务视为已完成，其余任务继续推进。
type Manager struct {
	tweens   []*Tween
	incoming []*Tween
	updating bool
	cleared  bool
	logger   *log.Logger
}

// NewManager 创建调度器
func NewManager() *Manager {
	return &Manager{
		tweens:   make([]*Tween, 0, 64),
		incoming: make([]*Tween, 0, 16),
		logger:   logging.For("Tween"),
	}
}

// Add 加入任务，下一次 Update 开始推进
func (m *Manager) Add(tweens ...*Tween) {
	for _, tw := range tweens {
		if tw == nil || tw.finished {
			continue
		}
		m.incoming = append(m.incoming, tw)
	}
}

// Update 推进所有任务 dt 时间
func (m *Manager) Update(dt time.Duration) {
	m.tweens = append(m.tweens, m.incoming...)
	m.incoming = m.incoming[:0]

	m.updating = true
	alive := m.tweens[:0]
	for _, tw := range m.tweens {
		if m.advance(tw, dt) {
			m.complete(tw)
			continue
		}
		if !tw.finished {
			alive = append(alive, tw)
		}
	}
	for i := len(alive); i < len(m.tweens); i++ {
		m.tweens[i] = nil
	}
	m.tweens = alive
	m.updating = false

	if m.cleared {
		m.cleared = false
		m.Clear()
	}
}

// advance 推进单个任务，panic 时把任务标记为完成
func (m *Manager) advance(tw *Tween, dt time.Duration) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("tween panicked, skipped", "err", fmt.Sprint(r))
			tw.finished = true
			done = true
		}
	}()
	return tw.step(dt)
}

// complete 执行完成回调并启动链式任务
func (m *Manager) complete(tw *Tween) {
	for _, fn := range tw.onComplete {
		m.safeCall(fn)
	}
	m.Add(tw.chained...)
}

func (m *Manager) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("completion callback panicked", "err", fmt.Sprint(r))
		}
	}()
	fn()
}

// Len 未完成任务数量（包括已加入但尚未推进的任务）
func (m *Manager) Len() int {
	return len(m.tweens) + len(m.incoming)
}

// Busy 是否有动画正在进行
func (m *Manager) Busy() bool {
	return m.Len() > 0
}

// Clear 丢弃所有任务，不触发完成回调（数据集整体替换时使用）
func (m *Manager) Clear() {
	if m.updating {
		// 回调中请求清空，推进结束后再执行
		m.cleared = true
		m.incoming = m.incoming[:0]
		return
	}
	for i := range m.tweens {
		m.tweens[i] = nil
	}
	m.tweens = m.tweens[:0]
	m.incoming = m.incoming[:0]
}
