// Package session keeps open battleship games in memory.
//
// Manager maps short session IDs to games. IDs are the first six characters
// of a random UUID, compared case-insensitively. The manager is safe for
// concurrent use; the games it hands out are not, so callers serialize
// access to a game themselves (the service layer does).
//
// With a SessionPersistence attached, every create and access update is
// saved, and Get falls back to storage for IDs not in memory.
// FilePersistence stores each game as <id>.txt in the plain-text save
// format of package savefile.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("saves")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	sess, err := manager.Create("", game, "classic")
package session
