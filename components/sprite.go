package components

import (
	"github.com/automoto/charsprite/sprites"
	"github.com/yohamta/donburi"
)

// SpriteData holds the sprites drawing one character: the main sprite and,
// on wrapping maps, its clones.
type SpriteData struct {
	Main   *sprites.CharacterSprite
	Clones []*sprites.CharacterSprite
}

// All returns the main sprite followed by its clones.
func (s *SpriteData) All() []*sprites.CharacterSprite {
	all := make([]*sprites.CharacterSprite, 0, 1+len(s.Clones))
	if s.Main != nil {
		all = append(all, s.Main)
	}
	return append(all, s.Clones...)
}

var Sprite = donburi.NewComponentType[SpriteData]()
