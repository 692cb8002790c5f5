package game

import "testing"

func TestApplyDamageClampsAtZero(t *testing.T) {
	f := NewFighter("p1", "Alice", "lean", BaseStats{Strength: 20, Endurance: 20, Level: 1})
	if f.Health != 100 || f.Energy != 100 {
		t.Fatalf("expected fresh fighter at 100/100, got %d/%d", f.Health, f.Energy)
	}
	if down := f.ApplyDamage(40); down {
		t.Fatal("fighter should survive 40 damage")
	}
	if down := f.ApplyDamage(200); !down {
		t.Fatal("fighter should be down after overkill damage")
	}
	if f.Health != 0 {
		t.Fatalf("health must clamp at 0, got %d", f.Health)
	}
}

func TestSpendEnergyClampsAtZero(t *testing.T) {
	f := NewFighter("p1", "Alice", "lean", BaseStats{Strength: 20, Endurance: 20, Level: 1})
	f.SpendEnergy(95)
	if f.Energy != 5 {
		t.Fatalf("expected 5 energy, got %d", f.Energy)
	}
	f.SpendEnergy(25)
	if f.Energy != 0 {
		t.Fatalf("energy must clamp at 0, got %d", f.Energy)
	}
}

func TestRoomAllReady(t *testing.T) {
	r := &Room{
		ID:   "r1",
		Code: "ABC234",
		Players: []RoomPlayer{
			{ID: "p1", Ready: true},
			{ID: "p2"},
		},
		Status: RoomStatusReady,
	}
	if r.AllReady() {
		t.Fatal("room should not be all ready with one pending player")
	}
	r.Players[1].Ready = true
	if !r.AllReady() {
		t.Fatal("room should be all ready")
	}
	if !r.HasPlayer("p2") || r.HasPlayer("p3") {
		t.Fatal("player membership lookup is wrong")
	}
}

func TestAdaptationWindowIsBounded(t *testing.T) {
	a := NewAdaptationState()
	for i := 0; i < AdaptationWindow+4; i++ {
		a.Observe(ActionAttack)
	}
	if len(a.RecentPlayerActions) != AdaptationWindow {
		t.Fatalf("window must hold %d actions, got %d", AdaptationWindow, len(a.RecentPlayerActions))
	}
	if a.TotalObserved() == 0 {
		t.Fatal("observed counts should accumulate")
	}
}
