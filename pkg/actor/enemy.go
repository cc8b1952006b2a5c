package actor

// Enemy is a creature the player can encounter.
type Enemy struct {
	Character
	ExperienceValue int `json:"experience_value"` // granted to the player on defeat
}

// NewEnemy creates an enemy at full health.
func NewEnemy(name string, health, attackPower, experienceValue int) *Enemy {
	return &Enemy{
		Character: Character{
			Name:        name,
			Health:      health,
			AttackPower: attackPower,
		},
		ExperienceValue: experienceValue,
	}
}

// Bestiary returns a fresh set of the enemies that populate a new world.
func Bestiary() []*Enemy {
	return []*Enemy{
		NewEnemy("Goblin", 30, 5, 5),
		NewEnemy("Orc", 50, 8, 8),
		NewEnemy("Dragon", 100, 15, 20),
		NewEnemy("Troll", 40, 6, 6),
		NewEnemy("Vampire", 70, 10, 15),
		NewEnemy("Slime", 20, 3, 3),
		NewEnemy("Zombie", 60, 7, 10),
		NewEnemy("Bandit", 50, 9, 8),
	}
}
