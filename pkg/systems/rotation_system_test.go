package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/cardgallery/pkg/components"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/ecs"
)

const speedTick = 50 * time.Millisecond

// TestRotationAccelerateMonotonic 加速过程单调递增且不越过最大速度
func TestRotationAccelerateMonotonic(t *testing.T) {
	rs := NewRotationSystem(newTestSession(t, 3))
	rs.Start(config.RotationMinSpeed, true)

	prev := rs.State().CurrentSpeed
	for i := 0; i < 2000; i++ {
		rs.AdjustSpeed(speedTick)
		cur := rs.State().CurrentSpeed
		if cur < prev {
			t.Fatalf("第 %d 次调整速度下降: %v -> %v", i, prev, cur)
		}
		if cur > config.RotationMaxSpeed {
			t.Fatalf("第 %d 次调整越过最大速度: %v", i, cur)
		}
		prev = cur
	}
	if rs.State().CurrentSpeed != config.RotationMaxSpeed {
		t.Errorf("最终速度 = %v, want %v", rs.State().CurrentSpeed, config.RotationMaxSpeed)
	}
	if !rs.State().IsActive {
		t.Error("达到最大速度后仍应处于旋转状态")
	}
}

// TestRotationDecelerateStops 减速到 0 后自动停用
func TestRotationDecelerateStops(t *testing.T) {
	rs := NewRotationSystem(newTestSession(t, 3))
	rs.Start(config.RotationMaxSpeed, false)
	rs.Stop(false)

	if !rs.State().IsActive {
		t.Fatal("Stop(false) 不应立即停用")
	}

	prev := rs.State().CurrentSpeed
	for i := 0; i < 2000 && rs.State().IsActive; i++ {
		rs.AdjustSpeed(speedTick)
		cur := rs.State().CurrentSpeed
		if cur > prev {
			t.Fatalf("减速过程中速度上升: %v -> %v", prev, cur)
		}
		if cur < 0 {
			t.Fatalf("速度为负: %v", cur)
		}
		prev = cur
	}

	if got := rs.State(); got.IsActive || got.CurrentSpeed != 0 {
		t.Errorf("减速结束后状态 = %+v, want 停用且速度为 0", got)
	}
}

// TestRotationStopImmediate 立即停止清零速度
func TestRotationStopImmediate(t *testing.T) {
	rs := NewRotationSystem(newTestSession(t, 1))
	rs.Start(0.02, true)
	rs.Stop(true)
	if got := rs.State(); got != (RotationState{}) {
		t.Errorf("State = %+v, want 零值", got)
	}
}

// TestRotationRestartKeepsSpeed 已在旋转时再次 Start 不重置当前速度
func TestRotationRestartKeepsSpeed(t *testing.T) {
	rs := NewRotationSystem(newTestSession(t, 1))
	rs.Start(config.RotationMinSpeed, true)
	for i := 0; i < 20; i++ {
		rs.AdjustSpeed(speedTick)
	}
	before := rs.State().CurrentSpeed

	rs.Start(config.RotationMinSpeed, false)
	if got := rs.State(); got.CurrentSpeed != before || got.TargetSpeed != config.RotationMinSpeed {
		t.Errorf("State = %+v, want current %v target %v", got, before, config.RotationMinSpeed)
	}
}

// TestRotationDisabled 关闭环境旋转后 Start 不生效
func TestRotationDisabled(t *testing.T) {
	rs := NewRotationSystem(newTestSession(t, 1))
	rs.Start(0.01, true)
	rs.SetEnabled(false)
	if rs.State().IsActive {
		t.Fatal("关闭后应立即停止")
	}
	rs.Start(0.01, true)
	if rs.State().IsActive {
		t.Error("关闭状态下 Start 不应生效")
	}
}

// TestRotationTickCadence 速度每 50ms 调整一次，与帧长无关
func TestRotationTickCadence(t *testing.T) {
	fast := NewRotationSystem(newTestSession(t, 1))
	slow := NewRotationSystem(newTestSession(t, 1))
	fast.Start(config.RotationMinSpeed, true)
	slow.Start(config.RotationMinSpeed, true)

	// 1 秒：fast 每 12.5ms 一帧，slow 每 50ms 一帧
	for i := 0; i < 80; i++ {
		fast.Update(0.0125)
	}
	for i := 0; i < 20; i++ {
		slow.Update(0.050)
	}

	a, b := fast.State().CurrentSpeed, slow.State().CurrentSpeed
	if a <= config.RotationMinSpeed {
		t.Fatalf("1 秒后速度应已上升: %v", a)
	}
	if math.Abs(a-b)/b > 0.05 {
		t.Errorf("不同帧率下速度差异过大: %v vs %v", a, b)
	}
}

// TestRotationApplyExcludesFixedCard 固定卡片不参与旋转，系数按 index mod 5 递增
func TestRotationApplyExcludesFixedCard(t *testing.T) {
	s := newTestSession(t, 6)
	rs := NewRotationSystem(s)
	rs.Start(0.01, false)
	rs.SetExcludedIndex(2)

	before := make([]float64, len(s.Cards))
	for i := range s.Cards {
		tr, _ := s.Transform(i)
		before[i] = tr.Rotation.Y
	}

	rs.ApplyRotation(0)

	for i := range s.Cards {
		tr, _ := s.Transform(i)
		got := tr.Rotation.Y - before[i]
		want := 0.01 * (1 + config.RotationFactorStep*float64(i%5))
		if i == 2 {
			want = 0
		}
		if !near(got, want) {
			t.Errorf("卡片 %d 旋转增量 = %v, want %v", i, got, want)
		}
		if tr.Rotation.X != 0 || tr.Rotation.Z != 0 {
			t.Errorf("未开启摆动时卡片 %d 不应绕 X/Z 旋转", i)
		}
	}
}

// TestRotationWobble 球面摆动按相位改变 X/Z
func TestRotationWobble(t *testing.T) {
	s := newTestSession(t, 1)
	rs := NewRotationSystem(s)
	rs.Start(0.02, false)
	rs.SetWobble(true)

	spin, _ := s.Spin(0)
	rs.ApplyRotation(1.5)

	tr, _ := s.Transform(0)
	wantX := math.Sin(1.5*0.5+spin.Phase) * 0.02 * config.RotationWobbleX
	wantZ := math.Cos(1.5*0.3+spin.Phase) * 0.02 * config.RotationWobbleZ
	if !near(tr.Rotation.X, wantX) || !near(tr.Rotation.Z, wantZ) {
		t.Errorf("摆动 = (%v, %v), want (%v, %v)", tr.Rotation.X, tr.Rotation.Z, wantX, wantZ)
	}
}

// TestRotationContainsCardPanic 单张卡片出错不影响其他卡片
func TestRotationContainsCardPanic(t *testing.T) {
	s := newTestSession(t, 3)
	// 损坏的旋转参数：类型正确但为 nil
	ecs.AddComponent(s.Entities, s.Cards[1], (*components.SpinComponent)(nil))

	rs := NewRotationSystem(s)
	rs.Start(0.01, false)
	rs.ApplyRotation(0)

	for _, i := range []int{0, 2} {
		tr, _ := s.Transform(i)
		if tr.Rotation.Y == 0 {
			t.Errorf("卡片 %d 应正常旋转", i)
		}
	}
}
