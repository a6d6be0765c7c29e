package systems

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/logging"
	"github.com/decker502/cardgallery/pkg/utils"
)

// RotationState 环境旋转状态
type RotationState struct {
	CurrentSpeed float64
	TargetSpeed  float64
	IsActive     bool
}

// RotationSystem 环境旋转控制
//
// 速度调整与逐帧旋转分开：
//   - 速度每 RotationTickInterval 调整一次，按实际经过的时间计算，与帧率无关
//   - 卡片旋转每帧执行一次，按当前速度推进
type RotationSystem struct {
	session *game.Session
	state   RotationState

	// enabled 用户设置关闭环境旋转时为 false，Start 不生效
	enabled  bool
	wobble   bool
	excluded int

	tickAccum time.Duration
	clock     float64

	logger *log.Logger
}

// NewRotationSystem 创建旋转系统，初始为停止状态
func NewRotationSystem(session *game.Session) *RotationSystem {
	return &RotationSystem{
		session:  session,
		enabled:  true,
		excluded: -1,
		logger:   logging.For("Rotation"),
	}
}

// State 当前旋转状态
func (rs *RotationSystem) State() RotationState {
	return rs.state
}

// SetEnabled 开关环境旋转，关闭时立即停止
func (rs *RotationSystem) SetEnabled(enabled bool) {
	rs.enabled = enabled
	if !enabled {
		rs.Stop(true)
	}
}

// SetWobble 开关次轴摆动（仅球面状态使用）
func (rs *RotationSystem) SetWobble(enabled bool) {
	rs.wobble = enabled
}

// SetExcludedIndex 设置不参与旋转的卡片，-1 表示全部参与
func (rs *RotationSystem) SetExcludedIndex(index int) {
	rs.excluded = index
}

// Start 开始旋转
//
// 已在旋转时保留当前速度，只改变目标速度，避免速度突变。
// accelerate 为 true 时目标速度为最大速度，否则保持 initialSpeed。
func (rs *RotationSystem) Start(initialSpeed float64, accelerate bool) {
	if !rs.enabled {
		rs.logger.Debug("ambient rotation disabled, ignoring Start")
		return
	}

	initialSpeed = utils.Clamp(initialSpeed, 0, config.RotationMaxSpeed)
	if !rs.state.IsActive {
		rs.state.CurrentSpeed = initialSpeed
		rs.tickAccum = 0
	}
	rs.state.IsActive = true

	if accelerate {
		rs.state.TargetSpeed = config.RotationMaxSpeed
	} else {
		rs.state.TargetSpeed = initialSpeed
	}
	rs.logger.Debug("rotation started", "speed", rs.state.CurrentSpeed, "target", rs.state.TargetSpeed)
}

// Stop 停止旋转
//
// immediate 为 true 时立即清零并停用；否则减速到 0 后自动停用
func (rs *RotationSystem) Stop(immediate bool) {
	if immediate {
		rs.state = RotationState{}
		rs.tickAccum = 0
		return
	}
	rs.Decelerate()
}

// Accelerate 目标速度改为最大速度，保留当前速度
func (rs *RotationSystem) Accelerate() {
	rs.state.TargetSpeed = config.RotationMaxSpeed
}

// Decelerate 目标速度改为 0，保留当前速度
func (rs *RotationSystem) Decelerate() {
	rs.state.TargetSpeed = 0
}

// AdjustSpeed 按经过的时间让当前速度逼近目标速度
//
// 每次移动差值的一部分，比例随距离端点的远近缓动：
// 加速时按 (max-current)/max 做三次缓出，减速时按 current/max 做二次缓出。
// 比例限制在 [0, 1]，因此不会越过目标。
func (rs *RotationSystem) AdjustSpeed(elapsed time.Duration) {
	if !rs.state.IsActive {
		return
	}

	s := &rs.state
	delta := s.TargetSpeed - s.CurrentSpeed

	if math.Abs(delta) < config.RotationSpeedEpsilon {
		s.CurrentSpeed = s.TargetSpeed
	} else {
		var remaining float64
		if delta > 0 {
			remaining = utils.EaseOutCubic((config.RotationMaxSpeed - s.CurrentSpeed) / config.RotationMaxSpeed)
		} else {
			remaining = utils.EaseOutQuad(s.CurrentSpeed / config.RotationMaxSpeed)
		}
		factor := config.RotationEaseFloor + (1-config.RotationEaseFloor)*remaining
		fraction := utils.Clamp(config.RotationRate*elapsed.Seconds()*factor, 0, 1)
		s.CurrentSpeed += delta * fraction
	}

	s.CurrentSpeed = utils.Clamp(s.CurrentSpeed, 0, config.RotationMaxSpeed)

	if s.TargetSpeed == 0 && s.CurrentSpeed < config.RotationSpeedEpsilon {
		rs.state = RotationState{}
		rs.logger.Debug("rotation stopped")
	}
}

// Update 每帧调用：按固定节拍调整速度，然后旋转卡片
func (rs *RotationSystem) Update(dt float64) {
	frame := time.Duration(dt * float64(time.Second))
	rs.clock += dt

	if rs.state.IsActive {
		rs.tickAccum += frame
		if rs.tickAccum >= config.RotationTickInterval {
			rs.AdjustSpeed(rs.tickAccum)
			rs.tickAccum = 0
		}
	}

	rs.ApplyRotation(rs.clock)
}

// ApplyRotation 按当前速度推进所有卡片的旋转
//
// t 为累计时间（秒），用于次轴摆动。单张卡片出错不影响其他卡片。
func (rs *RotationSystem) ApplyRotation(t float64) {
	speed := rs.state.CurrentSpeed
	if !rs.state.IsActive || speed == 0 {
		return
	}

	for i := range rs.session.Cards {
		if i == rs.excluded {
			continue
		}
		rs.rotateCard(i, t, speed)
	}
}

func (rs *RotationSystem) rotateCard(i int, t, speed float64) {
	defer func() {
		if r := recover(); r != nil {
			rs.logger.Error("card rotation panicked, skipped", "index", i, "err", fmt.Sprint(r))
		}
	}()

	tr, ok := rs.session.Transform(i)
	if !ok {
		return
	}
	factor, phase := 1.0, 0.0
	if spin, ok := rs.session.Spin(i); ok {
		factor, phase = spin.Factor, spin.Phase
	}

	tr.Rotation.Y += speed * factor
	if rs.wobble {
		tr.Rotation.X += math.Sin(t*0.5+phase) * speed * config.RotationWobbleX
		tr.Rotation.Z += math.Cos(t*0.3+phase) * speed * config.RotationWobbleZ
	}
}
