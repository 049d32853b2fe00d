package data

import "fmt"

// NewTestContent builds content from the built-in tables after applying mutate.
// Intended for tests from other packages that need custom skills or items.
// Panics if the mutated tables fail validation.
func NewTestContent(mutate func(t *Tables)) *Content {
	t := DefaultTables()
	if mutate != nil {
		mutate(&t)
	}
	c, err := NewContent(t)
	if err != nil {
		panic(fmt.Sprintf("test content invalid: %v", err))
	}
	return c
}

// TestLadder returns a small two-realm ladder with fixed rolls.
// Realm 0 has three levels (Qi 100/200/300), realm 1 has two (Qi 1000/2000).
func TestLadder() RealmLadder {
	return RealmLadder{Realms: []Realm{
		{Name: "Lower", Levels: []RealmLevel{
			{Name: "1", QiCapacity: 100, Rolls: []StatRoll{{Target: StatConstitution, Min: 2, Max: 2}}},
			{Name: "2", QiCapacity: 200, Rolls: []StatRoll{{Target: StatAgility, Min: 1, Max: 3}}},
			{Name: "3", QiCapacity: 300},
		}},
		{Name: "Upper", Levels: []RealmLevel{
			{Name: "1", QiCapacity: 1000, Rolls: []StatRoll{{Target: StatMaxHealth, Min: 50, Max: 50}}},
			{Name: "2", QiCapacity: 2000},
		}},
	}}
}
