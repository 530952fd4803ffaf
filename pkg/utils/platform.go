package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端也按移动端处理（触屏提示、虚拟摇杆）
const MobileEmulateEnv = "DEEPDIVE_MOBILE_EMULATE"

// IsMobile 是否按移动端运行
// 使用 -tags mobile 构建时恒为 true
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}
