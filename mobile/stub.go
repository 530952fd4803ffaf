//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口，只在 -tags mobile 下包含游戏初始化。
// 桌面构建只保留导出符号，使 ./... 可以正常编译。
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
