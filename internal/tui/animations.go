package tui

import "github.com/lox/handcricket/internal/game"

// frameHold repeats each art frame so a celebration lasts about 1.5s at the
// default frame rate.
const frameHold = 3

var animations = map[game.Animation][]string{
	game.AnimationVictory: {
		`
     \o/
      |
     / \
   VICTORY`,
		`
  *  \o/  *
      |
     / \
   VICTORY`,
		`
 * * \o/ * *
   *  |  *
     / \
   VICTORY!`,
		`
*  *  o  *  *
  *  /|\  *
     / \
  VICTORY!!`,
		`
 * * \o/ * *
   *  |  *
     / \
   VICTORY!`,
		`
  *  \o/  *
      |
     / \
   VICTORY`,
	},
	game.AnimationGameOver: {
		`
      o
     /|\
     / \
  GAME OVER`,
		`
      o
     /|\
     /  \
  GAME OVER`,
		`
      o
     /|
     / \_
  GAME OVER`,
		`

      o_
    _/|\_
  GAME OVER`,
		`


   ___o/__
  GAME OVER`,
		`


   ___o/__
  GAME  OVER`,
	},
}

// AnimationFrames reports how many engine frames each celebration lasts,
// for game.WithAnimations.
func AnimationFrames() map[game.Animation]int {
	frames := make(map[game.Animation]int, len(animations))
	for anim, art := range animations {
		frames[anim] = len(art) * frameHold
	}
	return frames
}

// overlayArt returns the art for one overlay frame, empty when the
// animation is unknown or the frame is out of range.
func overlayArt(o *game.Overlay) string {
	if o == nil {
		return ""
	}
	art, ok := animations[o.Animation]
	if !ok {
		return ""
	}
	i := o.FrameIndex / frameHold
	if i < 0 || i >= len(art) {
		return ""
	}
	return art[i]
}
