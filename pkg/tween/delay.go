package tween

import (
	"math/rand"
	"time"
)

// DelaySource 提供 [0, max] 范围内的错峰延迟
//
// 编排时每张卡片取一次延迟，测试中可替换为固定序列。
type DelaySource interface {
	Delay(max time.Duration) time.Duration
}

// RandomDelay 基于伪随机数的延迟源
type RandomDelay struct {
	rng *rand.Rand
}

// NewRandomDelay 创建随机延迟源
func NewRandomDelay(seed int64) *RandomDelay {
	return &RandomDelay{rng: rand.New(rand.NewSource(seed))}
}

// Delay 返回 [0, max] 内均匀分布的延迟
func (r *RandomDelay) Delay(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(r.rng.Int63n(int64(max) + 1))
}

// FixedDelays 按顺序循环返回预设延迟（结果不超过 max）
type FixedDelays struct {
	values []time.Duration
	next   int
}

// NewFixedDelays 创建固定延迟序列
func NewFixedDelays(values ...time.Duration) *FixedDelays {
	return &FixedDelays{values: values}
}

// Delay 返回序列中的下一个值
func (f *FixedDelays) Delay(max time.Duration) time.Duration {
	if len(f.values) == 0 || max <= 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	if v > max {
		v = max
	}
	return v
}
