// Package savefile reads and writes battleship games in the plain-text save
// format.
//
// A save file starts with three scalar lines followed by one block per
// player:
//
//	<rows>
//	<cols>
//	<player count>
//	<player name>
//	<rows lines of up to cols comma-separated ship ids>
//	...
//
// A cell value of 0 is water; any other value v marks a cell of ship v,
// which must be a straight run of exactly v cells. Missing trailing cells
// and empty tokens read as 0.
//
// Loading is all or nothing: Read returns either a fully reconstructed
// game or an error wrapping ErrMalformedFile with the offending line.
//
//	game, err := savefile.LoadFile("saves/fleet.txt")
//	if err != nil {
//	    return err
//	}
//	// Write drains ships, so save a copy when the game stays in use
//	err = savefile.SaveFile("saves/fleet-copy.txt", game.Clone())
package savefile
