//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 前创建 /data/data/{package}/saves
// gdata 在 Android 上不会自行创建该目录，首次保存设置或潜水日志会失败
func EnsureStorageDir() error {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to read process name: %w", err)
	}
	pkg, err := packageNameFromCmdline(data)
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}
	return ensureWritableDir(filepath.Join("/data/data", pkg, savesDirName))
}
