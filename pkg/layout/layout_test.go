package layout

import (
	"math"
	"testing"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/utils"
)

// TestComputeSphereTargets 球面目标数量正确、都在半径上且互不重合
func TestComputeSphereTargets(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 12, 50, 137} {
		targets := ComputeSphereTargets(n, config.SphereRadius)
		if len(targets) != n {
			t.Fatalf("n=%d: got %d targets", n, len(targets))
		}

		seen := make(map[utils.Vec3]int, n)
		for i, tg := range targets {
			if d := tg.Position.Len(); math.Abs(d-config.SphereRadius) > 1e-6 {
				t.Errorf("n=%d i=%d: 距球心 %v, 期望 %v", n, i, d, config.SphereRadius)
			}
			if j, dup := seen[tg.Position]; dup {
				t.Errorf("n=%d: 目标 %d 与 %d 重合 %v", n, i, j, tg.Position)
			}
			seen[tg.Position] = i
		}
	}
}

// TestComputeSphereTargetsFaceOutward 每张卡片的 +Z 轴背向球心
func TestComputeSphereTargetsFaceOutward(t *testing.T) {
	targets := ComputeSphereTargets(20, config.SphereRadius)
	for i, tg := range targets {
		forward := utils.RotateEuler(utils.V3(0, 0, 1), tg.Rotation)
		outward := tg.Position.Normalize()
		if forward.Dot(outward) < 0.999 {
			t.Errorf("i=%d: 朝向 %v 与外法线 %v 不一致", i, forward, outward)
		}
	}
}

// TestComputeSphereTargetsDeterministic 相同输入结果相同
func TestComputeSphereTargetsDeterministic(t *testing.T) {
	a := ComputeSphereTargets(30, 500)
	b := ComputeSphereTargets(30, 500)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("i=%d: 两次计算结果不同 %v vs %v", i, a[i], b[i])
		}
	}
}

// TestComputeSphereTargetsEmpty n<=0 返回空序列
func TestComputeSphereTargetsEmpty(t *testing.T) {
	if got := ComputeSphereTargets(0, 100); len(got) != 0 {
		t.Errorf("期望空序列, got %d", len(got))
	}
}

// TestComputeGridTargets 第 i 张卡片位于列 i mod 5、行 ⌊i/5⌋
func TestComputeGridTargets(t *testing.T) {
	p := DefaultGridParams()
	n := 23
	targets := ComputeGridTargets(n, p)
	if len(targets) != n {
		t.Fatalf("got %d targets, want %d", len(targets), n)
	}

	for i, tg := range targets {
		col, row := i%5, i/5
		wantX := (float64(col) - 2) * p.SpacingX
		wantY := p.StartY - float64(row)*p.SpacingY

		if math.Abs(tg.Position.X-wantX) > 1e-9 || math.Abs(tg.Position.Y-wantY) > 1e-9 {
			t.Errorf("i=%d: 位置 %v, 期望 (%v, %v)", i, tg.Position, wantX, wantY)
		}
		if tg.Rotation != (utils.Vec3{}) {
			t.Errorf("i=%d: 网格布局不应有旋转, got %v", i, tg.Rotation)
		}
	}
}

// TestComputeGridTargetsRowWrap 每 5 张换行，行偏移单调递增
func TestComputeGridTargetsRowWrap(t *testing.T) {
	targets := ComputeGridTargets(16, DefaultGridParams())

	for i := 1; i < len(targets); i++ {
		prev, cur := targets[i-1].Position, targets[i].Position
		if i%5 == 0 {
			if cur.Y >= prev.Y {
				t.Errorf("i=%d: 换行后 Y 应该更低 (%v -> %v)", i, prev.Y, cur.Y)
			}
			if cur.X >= prev.X {
				t.Errorf("i=%d: 换行后应回到第一列 (%v -> %v)", i, prev.X, cur.X)
			}
		} else {
			if cur.Y != prev.Y {
				t.Errorf("i=%d: 同一行 Y 应相同 (%v vs %v)", i, prev.Y, cur.Y)
			}
			if cur.X <= prev.X {
				t.Errorf("i=%d: 同一行 X 应递增 (%v -> %v)", i, prev.X, cur.X)
			}
		}
	}
}

// TestComputeGridTargetsDefaultsColumns 列数非法时回退到默认 5 列
func TestComputeGridTargetsDefaultsColumns(t *testing.T) {
	p := DefaultGridParams()
	p.Columns = 0
	targets := ComputeGridTargets(6, p)
	if targets[5].Position.Y == targets[4].Position.Y {
		t.Error("第 6 张卡片应该换行")
	}
}

// TestTargetsAt 越界访问返回 false
func TestTargetsAt(t *testing.T) {
	targets := ComputeGridTargets(3, DefaultGridParams())
	if _, ok := targets.At(2); !ok {
		t.Error("At(2) 应该存在")
	}
	if _, ok := targets.At(3); ok {
		t.Error("At(3) 应该越界")
	}
	if _, ok := targets.At(-1); ok {
		t.Error("At(-1) 应该越界")
	}
}
