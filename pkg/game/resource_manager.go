package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/decker502/deepdive/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontName 内置字体（Go Regular）的缓存名
const DefaultFontName = "builtin:goregular"

// ResourceManager 负责字体资源的集中加载与缓存
//
// 同一字体文件只解析一次（GoTextFaceSource），不同字号共享同一个 Source。
// 非线程安全：只应在游戏主循环所在的 goroutine 中使用。
//
// Usage:
//
//	rm := NewResourceManager()
//	face, err := rm.LoadFont("data/fonts/hud.ttf", 14)
//	if err != nil {
//	    face = rm.DefaultFont(14)
//	}
type ResourceManager struct {
	sourceCache   map[string]*text.GoTextFaceSource // path -> 解析后的字体
	fontFaceCache map[string]*text.GoTextFace       // "path:size" -> face
}

// NewResourceManager 创建空缓存的资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadFont 加载字体文件并按字号缓存
//
// 先查找文件系统，找不到时回退到嵌入资源（需已调用 embedded.Init）。
//
// 参数:
//   - path: 字体文件路径
//   - size: 字号（像素）
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fontCacheKey(path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadSource(path)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFont 返回内置 Go Regular 字体
// 内置字体数据随程序编译，解析失败属于不可恢复的构建错误
func (rm *ResourceManager) DefaultFont(size float64) *text.GoTextFace {
	face, err := rm.LoadFont(DefaultFontName, size)
	if err != nil {
		panic(fmt.Sprintf("builtin font is invalid: %v", err))
	}
	return face
}

// GetFont 返回已缓存的字体，未加载时返回 nil
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fontCacheKey(path, size)]
}

func (rm *ResourceManager) loadSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.sourceCache[path]; ok {
		return source, nil
	}

	fontData, err := readFontData(path)
	if err != nil {
		return nil, err
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.sourceCache[path] = source
	return source, nil
}

func readFontData(path string) ([]byte, error) {
	if path == DefaultFontName {
		return goregular.TTF, nil
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
}

func fontCacheKey(path string, size float64) string {
	return fmt.Sprintf("%s:%.1f", path, size)
}
