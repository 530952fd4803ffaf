package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有缓动函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 上浮返回水面使用 EaseOutCubic；深度环境分段插值使用 SmoothStep。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（用于"返回水面"的平滑移动）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// SmoothStep 三次 Hermite 平滑插值
// 公式：f(t) = t²(3 - 2t)，输入先限制到 [0, 1]
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不做限制）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp 反向插值，返回 v 在 [a, b] 中的进度（已限制到 [0, 1]）
// a == b 时返回 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Clamp 将 v 限制在 [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
