package layout

import (
	"math"

	"github.com/decker502/cardgallery/pkg/utils"
)

// ComputeSphereTargets 将 n 张卡片近似均匀地分布在半径为 radius 的球面上
//
// 使用闭式螺旋分布（无需迭代松弛）：
//
//	phi_i   = acos(-1 + 2i/n)
//	theta_i = sqrt(n·π) · phi_i
//
// 每张卡片朝向 2 倍自身位置的点，即背向球心。结果确定，不含随机数。
func ComputeSphereTargets(n int, radius float64) Targets {
	if n <= 0 {
		return Targets{}
	}

	targets := make(Targets, n)
	nf := float64(n)
	for i := 0; i < n; i++ {
		phi := math.Acos(-1 + 2*float64(i)/nf)
		theta := math.Sqrt(nf*math.Pi) * phi

		pos := sphericalToCartesian(radius, phi, theta)
		targets[i] = Target{
			Position: pos,
			Rotation: utils.LookAtEuler(pos, pos.Scale(2)),
		}
	}
	return targets
}

// sphericalToCartesian 球坐标转笛卡尔坐标（极角 phi 从 +Y 轴量起）
func sphericalToCartesian(radius, phi, theta float64) utils.Vec3 {
	sinPhi := math.Sin(phi)
	return utils.V3(
		radius*sinPhi*math.Sin(theta),
		radius*math.Cos(phi),
		radius*sinPhi*math.Cos(theta),
	)
}
