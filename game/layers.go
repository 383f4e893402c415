package game

// Collision layers.
const (
	LayerPlayer uint64 = 1 << iota
	LayerEnemy
	LayerAsteroid
	LayerBulletPlayer
	LayerBulletEnemy
	LayerWall
)

type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamEnemy {
		return "enemy"
	}
	return "player"
}

// bulletLayers returns the layer and mask for a bullet fired by team.
func bulletLayers(team Team) (layer, mask uint64) {
	if team == TeamEnemy {
		return LayerBulletEnemy, LayerPlayer | LayerWall
	}
	return LayerBulletPlayer, LayerAsteroid | LayerEnemy | LayerWall
}
