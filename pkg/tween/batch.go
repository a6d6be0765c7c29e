package tween

import "time"

// Batch 跟踪一组任务，最后一个任务完成后恰好触发一次 done
//
// 用法：
//
//	b := NewBatch(onDone)
//	m.Add(b.Track(tw1), b.Track(tw2))
//	b.Seal()
//
// Track 会同时跟踪任务的链式后续任务，因此必须在 Chain 之后调用。
// Seal 之前不会触发 done，避免跟踪过程中提前完成。
type Batch struct {
	remaining int
	endsAt    time.Duration
	sealed    bool
	fired     bool
	done      func()
}

// NewBatch 创建批次，done 可为 nil
func NewBatch(done func()) *Batch {
	return &Batch{done: done}
}

// Track 跟踪任务及其链式任务，返回原任务便于链式调用
func (b *Batch) Track(tw *Tween) *Tween {
	if e := tw.EndsAt(); e > b.endsAt {
		b.endsAt = e
	}
	b.trackTree(tw)
	return tw
}

func (b *Batch) trackTree(tw *Tween) {
	b.remaining++
	tw.OnComplete(b.finishOne)
	for _, next := range tw.chained {
		b.trackTree(next)
	}
}

// Seal 声明不再加入新任务；若所有任务已完成（或为空）则立即触发
func (b *Batch) Seal() {
	b.sealed = true
	b.maybeFire()
}

func (b *Batch) finishOne() {
	b.remaining--
	b.maybeFire()
}

func (b *Batch) maybeFire() {
	if !b.sealed || b.fired || b.remaining > 0 {
		return
	}
	b.fired = true
	if b.done != nil {
		b.done()
	}
}

// EndsAt 批次中最晚完成时间（相对于加入 Manager 的时刻）
func (b *Batch) EndsAt() time.Duration {
	return b.endsAt
}

// Remaining 尚未完成的任务数
func (b *Batch) Remaining() int {
	return b.remaining
}

// Fired 是否已触发完成回调
func (b *Batch) Fired() bool {
	return b.fired
}
