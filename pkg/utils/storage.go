package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// savesDirName gdata 在应用数据目录下使用的子目录
const savesDirName = "saves"

// ensureWritableDir 创建目录并确认可以写入
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("save directory %s is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}

// packageNameFromCmdline 从 /proc/self/cmdline 内容中取出进程名
// Android 应用进程的 argv[0] 即包名，参数之间以 NUL 分隔
func packageNameFromCmdline(data []byte) (string, error) {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty process name in cmdline")
	}
	return name, nil
}
