package game

import (
	"log"

	"github.com/decker502/deepdive/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "deepdive"

// GameState 存储全局游戏状态
// 这是一个单例，持有跨场景共享的存储与管理器
type GameState struct {
	gdataManager    *gdata.Manager   // 可为 nil（受限环境下降级为仅内存）
	settingsManager *SettingsManager // 玩家设置
	diveLog         *DiveLogManager  // 潜水日志
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 延迟初始化；gdata 打开失败时记录警告并以仅内存模式运行
func GetGameState() *GameState {
	if globalGameState == nil {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[GameState] Warning: storage directory unavailable: %v", err)
		}
		manager, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable, settings and dive log will not persist: %v", err)
			manager = nil
		}
		globalGameState = newGameState(manager)
	}
	return globalGameState
}

func newGameState(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager:    manager,
		settingsManager: NewSettingsManager(manager),
		diveLog:         NewDiveLogManager(manager),
	}
}

// resetGlobalGameState 重置单例（测试用）
func resetGlobalGameState() {
	globalGameState = nil
}

// GetGdataManager 返回 gdata 管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetDiveLog 返回潜水日志管理器
func (gs *GameState) GetDiveLog() *DiveLogManager {
	return gs.diveLog
}

