package utils

import "math"

// Vec3 三维向量（世界坐标，Y 轴向上）
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ClampLength 将向量长度限制在 [min, max]；零向量原样返回
func (v Vec3) ClampLength(min, max float64) Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	if l < min {
		return v.Scale(min / l)
	}
	if l > max {
		return v.Scale(max / l)
	}
	return v
}

// LerpVec3 逐分量线性插值
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// Quat 单位四元数，表示朝向
type Quat struct {
	W float64 `yaml:"w"`
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// IdentityQuat 单位朝向
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromYaw 绕 Y 轴旋转 yaw 弧度的朝向
func QuatFromYaw(yaw float64) Quat {
	half := yaw / 2
	return Quat{W: math.Cos(half), Y: math.Sin(half)}
}

// Dot 四元数点积
func (q Quat) Dot(o Quat) float64 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

// Normalize 归一化；零四元数返回单位朝向
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l == 0 {
		return IdentityQuat()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Yaw 返回绕 Y 轴的偏航角（弧度）
func (q Quat) Yaw() float64 {
	siny := 2 * (q.W*q.Y + q.Z*q.X)
	cosy := 1 - 2*(q.X*q.X+q.Y*q.Y)
	return math.Atan2(siny, cosy)
}

// Slerp 球面线性插值，沿最短弧从 a 到 b
// t 限制到 [0, 1]；夹角很小时退化为归一化线性插值
func Slerp(a, b Quat, t float64) Quat {
	t = Clamp01(t)
	a = a.Normalize()
	b = b.Normalize()

	cos := a.Dot(b)
	// q 与 -q 表示同一朝向，取最短弧
	if cos < 0 {
		b = Quat{-b.W, -b.X, -b.Y, -b.Z}
		cos = -cos
	}

	if cos > 0.9995 {
		return Quat{
			Lerp(a.W, b.W, t),
			Lerp(a.X, b.X, t),
			Lerp(a.Y, b.Y, t),
			Lerp(a.Z, b.Z, t),
		}.Normalize()
	}

	theta := math.Acos(cos)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quat{
		a.W*wa + b.W*wb,
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
	}
}
