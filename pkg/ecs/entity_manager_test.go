package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testDepthComponent struct {
	Depth float64
}

type testBreathComponent struct {
	Current, Max float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始，0保留为无效ID
	if id1 != 1 || id1 == InvalidEntity {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testBreathComponent{Current: 80, Max: 100})

	breath, ok := GetComponent[*testBreathComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if breath.Current != 80 || breath.Max != 100 {
		t.Errorf("Component data mismatch, got (%v, %v)", breath.Current, breath.Max)
	}

	// 泛型与反射接口应看到同一个组件
	raw, found := em.GetComponent(id, reflect.TypeOf(&testBreathComponent{}))
	if !found || raw.(*testBreathComponent) != breath {
		t.Error("Generic and reflection access should return the same pointer")
	}

	// 未添加的类型
	if _, ok := GetComponent[*testDepthComponent](em, id); ok {
		t.Error("Depth component should not be found")
	}
	// 不存在的实体
	if _, ok := GetComponent[*testBreathComponent](em, 999); ok {
		t.Error("Unknown entity should not have components")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testDepthComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	AddComponent(em, id, &testDepthComponent{Depth: 12})
	if !HasComponent[*testDepthComponent](em, id) {
		t.Error("Should have component after adding")
	}

	RemoveComponent[*testDepthComponent](em, id)
	if HasComponent[*testDepthComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testDepthComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) || !HasComponent[*testDepthComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 对已删除实体添加组件不应复活实体
	AddComponent(em, id, &testDepthComponent{})
	if em.Exists(id) {
		t.Error("AddComponent must not recreate a destroyed entity")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testDepthComponent{Depth: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testBreathComponent{})
			ids = append(ids, id)
		}
	}

	got := GetEntitiesWith2[*testDepthComponent, *testBreathComponent](em)
	if len(got) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(got))
	}
	for i := range got {
		if got[i] != ids[i] {
			t.Fatalf("Query result not sorted by ID: index %d got %d want %d", i, got[i], ids[i])
		}
	}

	all := GetEntitiesWith1[*testDepthComponent](em)
	if len(all) != 50 {
		t.Errorf("Expected 50 entities with depth, got %d", len(all))
	}
}
