package pokemon

// TypeChart maps attacking type to defending type to multiplier.
// Missing pairs are neutral.
type TypeChart map[Type]map[Type]float64

// Multiplier returns the single-type multiplier for an attack against one type
func (c TypeChart) Multiplier(attack, defend Type) float64 {
	row, ok := c[attack]
	if !ok {
		return 1
	}
	if m, ok := row[defend]; ok {
		return m
	}
	return 1
}

// Effectiveness is the product of the single-type multipliers against every defending type
func (c TypeChart) Effectiveness(attack Type, defend []Type) float64 {
	if attack == TypeNone {
		return 1
	}
	eff := 1.0
	for _, t := range defend {
		eff *= c.Multiplier(attack, t)
	}
	return eff
}

// StandardChart returns the 18-type chart
func StandardChart() TypeChart {
	return TypeChart{
		TypeNormal: {TypeRock: 0.5, TypeGhost: 0, TypeSteel: 0.5},
		TypeFire: {
			TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 2,
			TypeBug: 2, TypeRock: 0.5, TypeDragon: 0.5, TypeSteel: 2,
		},
		TypeWater: {
			TypeFire: 2, TypeWater: 0.5, TypeGrass: 0.5, TypeGround: 2,
			TypeRock: 2, TypeDragon: 0.5,
		},
		TypeElectric: {
			TypeWater: 2, TypeElectric: 0.5, TypeGrass: 0.5, TypeGround: 0,
			TypeFlying: 2, TypeDragon: 0.5,
		},
		TypeGrass: {
			TypeFire: 0.5, TypeWater: 2, TypeGrass: 0.5, TypePoison: 0.5, TypeGround: 2,
			TypeFlying: 0.5, TypeBug: 0.5, TypeRock: 2, TypeDragon: 0.5, TypeSteel: 0.5,
		},
		TypeIce: {
			TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 0.5, TypeGround: 2,
			TypeFlying: 2, TypeDragon: 2, TypeSteel: 0.5,
		},
		TypeFighting: {
			TypeNormal: 2, TypeIce: 2, TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 0.5,
			TypeBug: 0.5, TypeRock: 2, TypeGhost: 0, TypeDark: 2, TypeSteel: 2, TypeFairy: 0.5,
		},
		TypePoison: {
			TypeGrass: 2, TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5,
			TypeGhost: 0.5, TypeSteel: 0, TypeFairy: 2,
		},
		TypeGround: {
			TypeFire: 2, TypeElectric: 2, TypeGrass: 0.5, TypePoison: 2,
			TypeFlying: 0, TypeBug: 0.5, TypeRock: 2, TypeSteel: 2,
		},
		TypeFlying: {
			TypeElectric: 0.5, TypeGrass: 2, TypeFighting: 2, TypeBug: 2,
			TypeRock: 0.5, TypeSteel: 0.5,
		},
		TypePsychic: {TypeFighting: 2, TypePoison: 2, TypePsychic: 0.5, TypeDark: 0, TypeSteel: 0.5},
		TypeBug: {
			TypeFire: 0.5, TypeGrass: 2, TypeFighting: 0.5, TypePoison: 0.5, TypeFlying: 0.5,
			TypePsychic: 2, TypeGhost: 0.5, TypeDark: 2, TypeSteel: 0.5, TypeFairy: 0.5,
		},
		TypeRock: {
			TypeFire: 2, TypeIce: 2, TypeFighting: 0.5, TypeGround: 0.5,
			TypeFlying: 2, TypeBug: 2, TypeSteel: 0.5,
		},
		TypeGhost:  {TypeNormal: 0, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5},
		TypeDragon: {TypeDragon: 2, TypeSteel: 0.5, TypeFairy: 0},
		TypeDark:   {TypeFighting: 0.5, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5, TypeFairy: 0.5},
		TypeSteel: {
			TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeIce: 2,
			TypeRock: 2, TypeSteel: 0.5, TypeFairy: 2,
		},
		TypeFairy: {
			TypeFire: 0.5, TypeFighting: 2, TypePoison: 0.5, TypeDragon: 2,
			TypeDark: 2, TypeSteel: 0.5,
		},
	}
}
