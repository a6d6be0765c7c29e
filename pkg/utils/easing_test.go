package utils

import (
	"math"
	"testing"
)

// TestEasingEndpoints 所有缓动函数在 0 和 1 处必须精确落在端点
func TestEasingEndpoints(t *testing.T) {
	for name, fn := range easingByName {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, 期望 0", name, got)
			}
			if got := fn(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, 期望 1", name, got)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	t.Run("整体快于线性", func(t *testing.T) {
		for p := 0.0; p <= 1.0; p += 0.1 {
			if eased := EaseOutCubic(p); eased < p-0.001 {
				t.Errorf("EaseOutCubic(%v) = %v 不应该落后于线性值 %v", p, eased, p)
			}
		}
	})
}

// TestEaseInOutSymmetry 缓入缓出函数关于中点对称
func TestEaseInOutSymmetry(t *testing.T) {
	fns := map[string]EasingFunc{
		"cubicInOut": EaseInOutCubic,
		"expoInOut":  EaseInOutExpo,
		"sineInOut":  EaseInOutSine,
	}

	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			if got := fn(0.5); math.Abs(got-0.5) > 1e-9 {
				t.Errorf("%s(0.5) = %v, 期望 0.5", name, got)
			}
			for p := 0.05; p < 0.5; p += 0.05 {
				a := fn(p)
				b := 1 - fn(1-p)
				if math.Abs(a-b) > 1e-9 {
					t.Errorf("%s 不对称: f(%v)=%v, 1-f(%v)=%v", name, p, a, 1-p, b)
				}
			}
		})
	}
}

// TestEaseOutBounce 弹跳缓出保持在 [0,1] 内且单调接近终点
func TestEaseOutBounce(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.01 {
		v := EaseOutBounce(p)
		if v < 0 || v > 1+1e-9 {
			t.Fatalf("EaseOutBounce(%v) = %v 超出 [0,1]", p, v)
		}
	}
	if got := EaseOutBounce(1.0 / 2.75); math.Abs(got-1) > 1e-9 {
		t.Errorf("第一次触底应该为 1, 实际 %v", got)
	}
}

// TestEaseOutElastic 弹性缓出会越过终点后回落
func TestEaseOutElastic(t *testing.T) {
	maxValue := 0.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		if v := EaseOutElastic(p); v > maxValue {
			maxValue = v
		}
	}
	if maxValue <= 1.0 {
		t.Errorf("EaseOutElastic 应该越过 1, 最大值 %v", maxValue)
	}
	if got := EaseOutElastic(0.99); math.Abs(got-1) > 0.01 {
		t.Errorf("EaseOutElastic(0.99) = %v, 应接近 1", got)
	}
}

// TestEasingByName 测试配置名称查找
func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName("expoInOut"); !ok {
		t.Error("expoInOut 应该存在")
	}
	if _, ok := EasingByName("wobbly"); ok {
		t.Error("未知名称不应该返回缓动函数")
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp 测试范围限制
func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.3, 0, 1) != 0.3 {
		t.Error("Clamp 结果不正确")
	}
}
