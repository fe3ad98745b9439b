// Package game implements the hand cricket round clock and state machine.
//
// The main type is Engine, which owns the authoritative State and advances it
// one frame at a time. Timing is counted in frames rather than wall-clock
// time, so the pace of a round follows the caller's frame rate.
//
// # Basic Usage
//
//	e := game.NewEngine(logger)
//	e.Start()
//	for {
//	    intent := e.Tick(source.Sample())
//	    audio.Apply(intent.Cues)
//	    draw(intent)
//	    if intent.Quit {
//	        break
//	    }
//	}
//
// # Rounds
//
// Each round counts down, samples the player's gesture once at CaptureTick,
// resolves the result from ResolveStart and applies innings and game-over
// transitions at RoundEndTick. The player bats the first innings; matching
// gestures dismiss the batter. In the second innings the computer chases
// the player's score and the game ends as soon as it passes it.
//
// # Side Effects
//
// The engine never plays sounds or draws. Each RenderIntent carries the cues,
// overlay frame and events produced by that frame and collaborators act on
// them. Cues only appear on the frame where something changes.
//
// For deterministic games inject the opponent:
//
//	e := game.NewEngine(logger, game.WithOpponent(game.FixedMoves(1, 4, 6)))
package game
