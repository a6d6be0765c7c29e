package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardgallery/pkg/components"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/utils"
)

// Projector 由镜头状态得到的透视投影
//
// 镜头坐标系：forward 指向注视点，right/up 与屏幕 X/Y 对齐。
// 屏幕 Y 向下，所以投影时对 up 分量取负。
type Projector struct {
	eye     utils.Vec3
	right   utils.Vec3
	up      utils.Vec3
	forward utils.Vec3
	focal   float64
	cx, cy  float64
}

// NewProjector 为 width×height 的屏幕创建投影
func NewProjector(cam *components.CameraComponent, width, height float64) Projector {
	forward := cam.LookAt.Sub(cam.Position).Normalize()
	if forward.Len() == 0 {
		forward = utils.V3(0, 0, -1)
	}

	right := forward.Cross(utils.V3(0, 1, 0)).Normalize()
	if right.Len() == 0 {
		// 垂直俯视或仰视
		right = utils.V3(1, 0, 0)
	}
	up := right.Cross(forward)

	fov := cam.FOV
	if fov <= 0 {
		fov = config.CameraFOV
	}

	return Projector{
		eye:     cam.Position,
		right:   right,
		up:      up,
		forward: forward,
		focal:   (height / 2) / math.Tan(fov/2),
		cx:      width / 2,
		cy:      height / 2,
	}
}

// Depth 点在镜头前方的距离
func (p Projector) Depth(world utils.Vec3) float64 {
	return world.Sub(p.eye).Dot(p.forward)
}

// Project 世界坐标投影到屏幕坐标
//
// 位于近裁剪面之内（或镜头后方）的点返回 ok=false。
// scale 为该深度下一个世界单位对应的像素数。
func (p Projector) Project(world utils.Vec3) (sx, sy, scale float64, ok bool) {
	rel := world.Sub(p.eye)
	depth := rel.Dot(p.forward)
	if depth < config.CameraNear {
		return 0, 0, 0, false
	}
	scale = p.focal / depth
	sx = p.cx + rel.Dot(p.right)*scale
	sy = p.cy - rel.Dot(p.up)*scale
	return sx, sy, scale, true
}

// CameraSystem 用户镜头控制
//
// 过渡进行中 ControlsEnabled 为 false，拖拽和滚轮都被忽略。
// 左键拖拽绕注视点环绕，滚轮改变镜头距离。
type CameraSystem struct {
	camera *components.CameraComponent

	dragging bool
	lastX    int
	lastY    int
}

// NewCameraSystem 创建镜头控制系统
func NewCameraSystem(camera *components.CameraComponent) *CameraSystem {
	return &CameraSystem{camera: camera}
}

// SetCamera 数据重新加载后替换镜头
func (cs *CameraSystem) SetCamera(camera *components.CameraComponent) {
	cs.camera = camera
	cs.dragging = false
}

// Update 读取鼠标输入并调整镜头
func (cs *CameraSystem) Update() {
	if cs.camera == nil || !cs.camera.ControlsEnabled {
		cs.dragging = false
		return
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if cs.dragging {
			dx, dy := x-cs.lastX, y-cs.lastY
			if dx != 0 || dy != 0 {
				OrbitCamera(cs.camera, -float64(dx)*config.CameraOrbitSensitivity, float64(dy)*config.CameraOrbitSensitivity)
			}
		}
		cs.dragging = true
		cs.lastX, cs.lastY = x, y
	} else {
		cs.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		ZoomCamera(cs.camera, math.Pow(1-config.CameraZoomStep, wy))
	}
}

// OrbitCamera 绕注视点旋转镜头
//
// yaw 绕世界 Y 轴，pitch 绕镜头右轴；俯仰角限制在 ±85° 内，避免越过两极翻转。
func OrbitCamera(cam *components.CameraComponent, yaw, pitch float64) {
	offset := cam.Position.Sub(cam.LookAt)
	dist := offset.Len()
	if dist == 0 {
		return
	}

	azimuth := math.Atan2(offset.X, offset.Z) + yaw
	elevation := math.Asin(utils.Clamp(offset.Y/dist, -1, 1)) + pitch
	limit := 85 * math.Pi / 180
	elevation = utils.Clamp(elevation, -limit, limit)

	cam.Position = cam.LookAt.Add(utils.V3(
		dist*math.Cos(elevation)*math.Sin(azimuth),
		dist*math.Sin(elevation),
		dist*math.Cos(elevation)*math.Cos(azimuth),
	))
}

// ZoomCamera 按比例改变镜头距离，限制在 [CameraMinDistance, CameraMaxDistance]
func ZoomCamera(cam *components.CameraComponent, factor float64) {
	offset := cam.Position.Sub(cam.LookAt)
	dist := offset.Len()
	if dist == 0 || factor <= 0 {
		return
	}
	next := utils.Clamp(dist*factor, config.CameraMinDistance, config.CameraMaxDistance)
	cam.Position = cam.LookAt.Add(offset.Scale(next / dist))
}
