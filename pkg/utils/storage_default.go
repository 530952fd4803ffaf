//go:build !android

package utils

// EnsureStorageDir 桌面与 iOS 上 gdata 自行创建存储目录
func EnsureStorageDir() error {
	return nil
}
