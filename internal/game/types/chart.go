package types

// weak, resist and immune list, per attacking type, the defending types that
// take 2×, 0.5× and 0× respectively. Every other pairing is 1×.
var (
	weak = map[Type][]Type{
		Fighting: {Normal, Rock, Steel, Ice, Dark},
		Flying:   {Fighting, Bug, Grass},
		Poison:   {Grass, Fairy},
		Ground:   {Poison, Rock, Steel, Fire, Electric},
		Rock:     {Flying, Bug, Fire, Ice},
		Bug:      {Grass, Psychic, Dark},
		Ghost:    {Ghost, Psychic},
		Steel:    {Rock, Ice, Fairy},
		Fire:     {Bug, Steel, Grass, Ice},
		Water:    {Ground, Rock, Fire},
		Grass:    {Ground, Rock, Water},
		Electric: {Flying, Water},
		Psychic:  {Fighting, Poison},
		Ice:      {Flying, Ground, Grass, Dragon},
		Dragon:   {Dragon},
		Dark:     {Ghost, Psychic},
		Fairy:    {Fighting, Dragon, Dark},
	}
	resist = map[Type][]Type{
		Normal:   {Rock, Steel},
		Fighting: {Flying, Poison, Bug, Psychic, Fairy},
		Flying:   {Rock, Steel, Electric},
		Poison:   {Poison, Ground, Rock, Ghost},
		Ground:   {Bug, Grass},
		Rock:     {Fighting, Ground, Steel},
		Bug:      {Fighting, Flying, Poison, Ghost, Steel, Fire, Fairy},
		Ghost:    {Dark},
		Steel:    {Steel, Fire, Water, Electric},
		Fire:     {Rock, Fire, Water, Dragon},
		Water:    {Water, Grass, Dragon},
		Grass:    {Flying, Poison, Bug, Steel, Fire, Grass, Dragon},
		Electric: {Grass, Electric, Dragon},
		Psychic:  {Steel, Psychic},
		Ice:      {Steel, Fire, Water, Ice},
		Dragon:   {Steel},
		Dark:     {Fighting, Dark, Fairy},
		Fairy:    {Poison, Steel, Fire},
	}
	immune = map[Type][]Type{
		Normal:   {Ghost},
		Fighting: {Ghost},
		Poison:   {Steel},
		Ground:   {Flying},
		Ghost:    {Normal},
		Electric: {Ground},
		Psychic:  {Dark},
		Dragon:   {Fairy},
	}
)

// chart[attack][defend], indexed by Type. Rows and columns for Unknown and
// Stellar are all 1.
var chart = buildChart()

func buildChart() [Stellar + 1][Stellar + 1]float64 {
	var c [Stellar + 1][Stellar + 1]float64
	for a := range c {
		for d := range c[a] {
			c[a][d] = 1
		}
	}
	for a, ds := range weak {
		for _, d := range ds {
			c[a][d] = 2
		}
	}
	for a, ds := range resist {
		for _, d := range ds {
			c[a][d] = 0.5
		}
	}
	for a, ds := range immune {
		for _, d := range ds {
			c[a][d] = 0
		}
	}
	return c
}

// Multiplier returns the base chart entry for attack against a single defending type.
//
// Postcondition: result ∈ {0, 0.5, 1, 2}.
func Multiplier(attack, defend Type) float64 {
	if attack < Unknown || attack > Stellar || defend < Unknown || defend > Stellar {
		return 1
	}
	return chart[attack][defend]
}
