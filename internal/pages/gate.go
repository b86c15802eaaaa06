package pages

// Gate is the switch the host flips to let the page stack animate.
type Gate struct {
	on bool
}

func (g *Gate) On() bool { return g.on }

func (g *Gate) Set(on bool) { g.on = on }

// Toggle flips the gate and returns the new value.
func (g *Gate) Toggle() bool {
	g.on = !g.on
	return g.on
}
