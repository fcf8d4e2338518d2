package dodge

import "testing"

func TestCheckCollisions(t *testing.T) {
	player := Player{X: 285, Y: 360, Width: 30, Height: 30}
	obstacle := func(x, y float64) Obstacle {
		return Obstacle{X: x, Y: y, Width: 40, Height: 20, Speed: 3}
	}

	tests := []struct {
		name      string
		obstacles []Obstacle
		expected  bool
	}{
		{"empty", nil, false},
		{"far away", []Obstacle{obstacle(0, 0)}, false},
		{"overlapping", []Obstacle{obstacle(280, 350)}, true},
		{"touching from above", []Obstacle{obstacle(280, 340)}, false},
		{"touching from the left", []Obstacle{obstacle(245, 365)}, false},
		{"touching from the right", []Obstacle{obstacle(315, 365)}, false},
		{"just inside the left edge", []Obstacle{obstacle(245.01, 365)}, true},
		{"below the player", []Obstacle{obstacle(280, 390)}, false},
		{"one of many", []Obstacle{obstacle(0, 0), obstacle(500, 100), obstacle(300, 370)}, true},
		{"several hits", []Obstacle{obstacle(280, 350), obstacle(290, 370)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckCollisions(player, tc.obstacles); got != tc.expected {
				t.Errorf("CheckCollisions() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCheckCollisionsDoesNotMutate(t *testing.T) {
	player := Player{X: 285, Y: 360, Width: 30, Height: 30}
	obstacles := []Obstacle{{X: 280, Y: 350, Width: 40, Height: 20, Speed: 3}}

	CheckCollisions(player, obstacles)

	if player.X != 285 || obstacles[0].Y != 350 {
		t.Error("CheckCollisions should not mutate its inputs")
	}
}
