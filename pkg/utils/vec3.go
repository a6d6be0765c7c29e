package utils

import "math"

// Vec3 三维向量（值类型）
// 用于卡片的位置、欧拉角旋转（弧度，XYZ 顺序）和缩放
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造向量
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量相加
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub 向量相减
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize 单位化，零向量返回零向量
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// LerpVec3 分量线性插值
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// LookAtEuler 计算位于 from 的物体朝向 target 时的欧拉角（XYZ 顺序）
//
// 物体的 +Z 轴指向 target，世界 +Y 为上方向。
// 当朝向与上方向平行时（球面两极），对朝向做微小偏移避免退化。
func LookAtEuler(from, target Vec3) Vec3 {
	up := Vec3{0, 1, 0}

	z := target.Sub(from).Normalize()
	if z.Len() == 0 {
		return Vec3{}
	}

	x := up.Cross(z)
	if x.Len() < 1e-9 {
		z.X += 0.0001
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	// 旋转矩阵列向量为 x, y, z
	m11, m12, m13 := x.X, y.X, z.X
	m22, m23 := y.Y, z.Y
	m32, m33 := y.Z, z.Z

	var e Vec3
	e.Y = math.Asin(Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
		e.Z = 0
	}
	return e
}

// RotateEuler 按 XYZ 欧拉角旋转向量（用于计算卡片朝向）
func RotateEuler(v Vec3, e Vec3) Vec3 {
	// 先绕 Z，再绕 Y，最后绕 X（对应矩阵 Rx·Ry·Rz 作用于列向量）
	cz, sz := math.Cos(e.Z), math.Sin(e.Z)
	v = Vec3{v.X*cz - v.Y*sz, v.X*sz + v.Y*cz, v.Z}

	cy, sy := math.Cos(e.Y), math.Sin(e.Y)
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}

	cx, sx := math.Cos(e.X), math.Sin(e.X)
	return Vec3{v.X, v.Y*cx - v.Z*sx, v.Y*sx + v.Z*cx}
}
