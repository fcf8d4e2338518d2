package dodge

// CheckCollisions reports whether the player overlaps any obstacle.
func CheckCollisions(p Player, obstacles []Obstacle) bool {
	box := p.Rect()
	for _, o := range obstacles {
		if box.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}
