package config

import "time"

// 布局配置常量
// 本文件定义了画廊场景中的布局参数，包括网格、球面、镜头机位、旋转和输入节流等
// 所有空间坐标使用"世界坐标系"（原点位于场景中心，+Y 向上，+Z 朝向观察者）

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 800
)

// Card Configuration (卡片配置)
const (
	// CardWidth 卡片宽度（世界单位）
	CardWidth = 120.0

	// CardHeight 卡片高度（世界单位）
	CardHeight = 160.0

	// CardScatterRange 数据加载后卡片初始散布范围（±值）
	CardScatterRange = 2000.0

	// CardDefaultGlow 卡片默认发光强度（低强度）
	CardDefaultGlow = 0.2

	// CardFocusGlow 聚焦卡片的发光强度
	CardFocusGlow = 1.0
)

// Camera Configuration (镜头配置)
const (
	// CameraDefaultDistance 默认远景机位到原点的距离（+Z 方向）
	CameraDefaultDistance = 3000.0

	// CameraFOV 垂直视场角（弧度，约 40°）
	CameraFOV = 0.7

	// CameraNear 近裁剪面，距离小于此值的卡片不绘制
	CameraNear = 1.0

	// CameraMinDistance / CameraMaxDistance 用户拖拽缩放时镜头到注视点的距离范围
	CameraMinDistance = 500.0
	CameraMaxDistance = 6000.0

	// CameraOrbitSensitivity 拖拽环绕灵敏度（弧度/像素）
	CameraOrbitSensitivity = 0.005

	// CameraZoomStep 滚轮每格的缩放比例
	CameraZoomStep = 0.1
)

// Grid Configuration (表格网格配置)
const (
	// GridColumns 网格列数（横向卡片数）
	GridColumns = 5

	// GridSpacingX 列间距（世界单位）
	GridSpacingX = 220.0

	// GridSpacingY 行间距（世界单位）
	GridSpacingY = 260.0

	// GridStartY 第一行的 Y 坐标，后续行依次向下偏移
	GridStartY = 520.0
)

// Sphere Configuration (球面配置)
const (
	// SphereRadius 球面布局半径
	SphereRadius = 800.0
)

// Recede Configuration (聚焦时其余卡片后退参数)
const (
	// RecedeScaleXY 后退卡片 X/Y 坐标放大倍数
	RecedeScaleXY = 1.8

	// RecedePushZ 后退卡片 Z 方向推远距离
	RecedePushZ = -1200.0

	// RecedeOpacity 后退卡片透明度
	RecedeOpacity = 0.3

	// RecedeJitter 后退卡片随机旋转抖动上限（弧度，取 [0, RecedeJitter)）
	RecedeJitter = 0.2
)

// Rotation Configuration (环境旋转配置)
const (
	// RotationMinSpeed 最小旋转速度（弧度/帧）
	RotationMinSpeed = 0.001

	// RotationMaxSpeed 最大旋转速度（弧度/帧）
	RotationMaxSpeed = 0.05

	// RotationSpeedEpsilon 速度收敛阈值，差值小于此值直接吸附到目标
	RotationSpeedEpsilon = 1e-5

	// RotationTickInterval 速度调整节拍（约 20 Hz），与渲染帧率无关
	RotationTickInterval = 50 * time.Millisecond

	// RotationRate 每秒向目标速度逼近的基础比例
	RotationRate = 2.0

	// RotationEaseFloor 缓动系数下限，保证接近端点时仍能收敛
	RotationEaseFloor = 0.15

	// RotationFactorStep 不同卡片的旋转系数差异（按 index mod 5 递增）
	RotationFactorStep = 0.1

	// RotationWobbleX / RotationWobbleZ 球面状态下次轴摆动幅度（乘以当前速度）
	RotationWobbleX = 0.1
	RotationWobbleZ = 0.05
)

// Input Configuration (输入节流配置)
const (
	// InputDebounce 两次输入之间的最小间隔
	InputDebounce = 300 * time.Millisecond

	// StateChangeCooldown 状态切换后完全恢复输入所需时间
	StateChangeCooldown = 1500 * time.Millisecond

	// SwipeThreshold 触摸滑动判定的最小水平距离（像素）
	SwipeThreshold = 60
)

// Notification Configuration (提示配置)
const (
	// NotificationDuration 错误提示显示时长
	NotificationDuration = 3 * time.Second
)
