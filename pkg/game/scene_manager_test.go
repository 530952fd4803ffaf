package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	saved        int
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) SaveOnExit() bool {
	m.saved++
	return true
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene initially")
	}

	first := &MockScene{}
	sm.SwitchTo(first)
	if sm.GetCurrentScene() != first {
		t.Error("SwitchTo did not set the current scene correctly")
	}

	sm.Update(0.016)
	if !first.updateCalled || first.deltaTime != 0.016 {
		t.Error("Scene's Update method was not called with deltaTime")
	}
	sm.Draw(nil)
	if !first.drawCalled {
		t.Error("Scene's Draw method was not called")
	}

	second := &MockScene{}
	sm.SwitchTo(second)
	if first.saved != 1 {
		t.Errorf("Replaced scene should be saved once, got %d", first.saved)
	}
	sm.SwitchTo(second)
	if second.saved != 0 {
		t.Error("Switching to the same scene should not save it")
	}
}

// TestSceneManagerLoadScene 通过工厂加载与重新加载
func TestSceneManagerLoadScene(t *testing.T) {
	sm := NewSceneManager()
	if sm.LoadScene("dive") {
		t.Error("LoadScene without factory should fail")
	}
	if sm.Reload() {
		t.Error("Reload without a loaded scene should fail")
	}

	created := 0
	sm.SetSceneFactory(func(name string) Scene {
		if name != "dive" {
			return nil
		}
		created++
		return &MockScene{}
	})

	if !sm.LoadScene("dive") || created != 1 {
		t.Fatalf("LoadScene should create the scene, created=%d", created)
	}
	first := sm.GetCurrentScene().(*MockScene)
	if !sm.Reload() || created != 2 {
		t.Errorf("Reload should recreate the scene, created=%d", created)
	}
	if first.saved != 1 {
		t.Error("Reload should save the previous scene")
	}
	if sm.LoadScene("unknown") {
		t.Error("Unknown scene should fail to load")
	}
}

// TestGameStateManagers 单例持有管理器
func TestGameStateManagers(t *testing.T) {
	useTempHome(t)
	resetGlobalGameState()
	defer resetGlobalGameState()

	gs := GetGameState()
	if gs != GetGameState() {
		t.Error("GetGameState should return the same instance")
	}
	if gs.GetSettingsManager() == nil || gs.GetDiveLog() == nil {
		t.Fatal("Managers should always exist, even without gdata")
	}
}
