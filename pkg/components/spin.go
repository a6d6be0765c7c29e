package components

// SpinComponent 环境旋转的单卡参数
// 不同卡片的系数和相位略有差异，避免整齐划一的机械感
type SpinComponent struct {
	// Factor 主轴旋转速度系数
	Factor float64

	// Phase 次轴摆动相位偏移（弧度）
	Phase float64
}
