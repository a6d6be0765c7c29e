// Package tween 提供按帧推进的插值任务
//
// 每个 Tween 是一个独立的轻量任务：等待 delay 后，在 duration 内按缓动曲线
// 把进度从 0 推进到 1。所有任务由 Manager 在每帧统一推进，互不阻塞。
// Batch 跟踪一组任务（包括链式后续任务），在最后一个任务完成时恰好通知一次。
package tween

import (
	"time"

	"github.com/decker502/cardgallery/pkg/utils"
)

// Tween 单个插值任务
type Tween struct {
	delay    time.Duration
	duration time.Duration
	ease     utils.EasingFunc

	onStart    func()
	onUpdate   func(progress float64)
	onComplete []func()

	// chained 本任务完成后才开始的后续任务
	chained []*Tween

	elapsed  time.Duration
	started  bool
	finished bool
}

// New 创建一个时长为 duration 的任务（默认线性缓动、无延迟）
func New(duration time.Duration) *Tween {
	return &Tween{
		duration: duration,
		ease:     utils.EaseLinear,
	}
}

// Wait 创建一个只用于计时的任务，完成时触发回调
func Wait(duration time.Duration) *Tween {
	return New(duration)
}

// Float 把 *target 从开始时刻的值插值到 to
// 起始值在任务真正开始（延迟结束）时读取
func Float(target *float64, to float64, duration time.Duration) *Tween {
	var from float64
	tw := New(duration)
	tw.onStart = func() { from = *target }
	tw.onUpdate = func(p float64) { *target = utils.Lerp(from, to, p) }
	return tw
}

// Vec3 把 *target 从开始时刻的值插值到 to
func Vec3(target *utils.Vec3, to utils.Vec3, duration time.Duration) *Tween {
	var from utils.Vec3
	tw := New(duration)
	tw.onStart = func() { from = *target }
	tw.onUpdate = func(p float64) { *target = utils.LerpVec3(from, to, p) }
	return tw
}

// Delay 设置开始前的等待时间
func (t *Tween) Delay(d time.Duration) *Tween {
	if d < 0 {
		d = 0
	}
	t.delay = d
	return t
}

// Ease 设置缓动函数，nil 表示线性
func (t *Tween) Ease(fn utils.EasingFunc) *Tween {
	if fn == nil {
		fn = utils.EaseLinear
	}
	t.ease = fn
	return t
}

// OnStart 设置开始回调（替换 Float/Vec3 的起始值捕获时需谨慎）
func (t *Tween) OnStart(fn func()) *Tween {
	prev := t.onStart
	t.onStart = func() {
		if prev != nil {
			prev()
		}
		fn()
	}
	return t
}

// OnUpdate 追加进度回调，参数为缓动后的进度
func (t *Tween) OnUpdate(fn func(progress float64)) *Tween {
	prev := t.onUpdate
	t.onUpdate = func(p float64) {
		if prev != nil {
			prev(p)
		}
		fn(p)
	}
	return t
}

// OnComplete 追加完成回调，按添加顺序执行
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = append(t.onComplete, fn)
	return t
}

// Chain 在本任务完成后启动 next
func (t *Tween) Chain(next ...*Tween) *Tween {
	t.chained = append(t.chained, next...)
	return t
}

// EndsAt 从加入 Manager 开始计算，本任务及其全部链式任务的最晚完成时间
func (t *Tween) EndsAt() time.Duration {
	own := t.delay + t.duration
	var tail time.Duration
	for _, next := range t.chained {
		if e := next.EndsAt(); e > tail {
			tail = e
		}
	}
	return own + tail
}

// Finished 任务是否已完成
func (t *Tween) Finished() bool {
	return t.finished
}

// step 推进 dt，返回任务是否在本次推进中完成
func (t *Tween) step(dt time.Duration) bool {
	if t.finished {
		return false
	}

	t.elapsed += dt
	if t.elapsed < t.delay {
		return false
	}

	if !t.started {
		t.started = true
		if t.onStart != nil {
			t.onStart()
		}
	}

	progress := 1.0
	if t.duration > 0 {
		progress = float64(t.elapsed-t.delay) / float64(t.duration)
		if progress > 1 {
			progress = 1
		}
	}

	if t.onUpdate != nil {
		t.onUpdate(t.ease(progress))
	}

	if progress >= 1 {
		t.finished = true
		return true
	}
	return false
}
