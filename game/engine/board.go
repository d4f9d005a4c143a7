package engine

import "sort"

// PlayBoard holds one player's fleet. The ship slice and the id set are only
// changed together, so the id set always matches the ships on the board.
type PlayBoard struct {
	playerName string
	playerNum  int
	ships      []ShipBoundingBox
	shipIDs    map[int]struct{}
}

// NewPlayBoard creates an empty board for the named player
func NewPlayBoard(name string, num int) *PlayBoard {
	return &PlayBoard{
		playerName: name,
		playerNum:  num,
		shipIDs:    make(map[int]struct{}),
	}
}

// PlayerName returns the player's display name
func (p *PlayBoard) PlayerName() string {
	return p.playerName
}

// SetPlayerName renames the player
func (p *PlayBoard) SetPlayerName(name string) {
	p.playerName = name
}

// PlayerNum returns the player's number
func (p *PlayBoard) PlayerNum() int {
	return p.playerNum
}

// SetPlayerNum renumbers the player
func (p *PlayBoard) SetPlayerNum(num int) {
	p.playerNum = num
}

// HasShipID reports whether a ship with this id is on the board
func (p *PlayBoard) HasShipID(id int) bool {
	_, ok := p.shipIDs[id]
	return ok
}

// LargestShipID returns the highest ship id, or false for an empty board
func (p *PlayBoard) LargestShipID() (int, bool) {
	largest, found := 0, false
	for id := range p.shipIDs {
		if !found || id > largest {
			largest, found = id, true
		}
	}
	return largest, found
}

// ShipIDs returns the ids on the board in ascending order
func (p *PlayBoard) ShipIDs() []int {
	ids := make([]int, 0, len(p.shipIDs))
	for id := range p.shipIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AddShip appends a ship. It refuses boxes that NewShip could not have
// built (the zero value, diagonal boxes, a length that differs from the id),
// duplicate ids and ships that overlap an existing ship.
func (p *PlayBoard) AddShip(ship ShipBoundingBox) bool {
	if ship.shipID < 1 || ship.Diagonal() || ship.Length() != ship.shipID {
		return false
	}
	if p.HasShipID(ship.shipID) {
		return false
	}
	for _, existing := range p.ships {
		if existing.Overlaps(ship) {
			return false
		}
	}
	if p.shipIDs == nil {
		p.shipIDs = make(map[int]struct{})
	}
	p.ships = append(p.ships, ship)
	p.shipIDs[ship.shipID] = struct{}{}
	return true
}

// RemoveFirstShip removes and returns the oldest ship on the board
func (p *PlayBoard) RemoveFirstShip() (ShipBoundingBox, bool) {
	if len(p.ships) == 0 {
		return ShipBoundingBox{}, false
	}
	ship := p.ships[0]
	p.ships = p.ships[1:]
	delete(p.shipIDs, ship.shipID)
	return ship, true
}

// PopShip removes and returns the ship with the given id
func (p *PlayBoard) PopShip(id int) (ShipBoundingBox, bool) {
	for i, ship := range p.ships {
		if ship.shipID == id {
			p.ships = append(p.ships[:i:i], p.ships[i+1:]...)
			delete(p.shipIDs, id)
			return ship, true
		}
	}
	return ShipBoundingBox{}, false
}

// Ships returns a copy of the fleet in insertion order
func (p *PlayBoard) Ships() []ShipBoundingBox {
	ships := make([]ShipBoundingBox, len(p.ships))
	copy(ships, p.ships)
	return ships
}

// ShipCount returns the number of ships on the board
func (p *PlayBoard) ShipCount() int {
	return len(p.ships)
}

// CheckCollision reports whether a candidate ship would overlap the fleet
func (p *PlayBoard) CheckCollision(start Cell, length int, dir Direction) bool {
	for _, ship := range p.ships {
		if ship.OverlapPossible(length, start, dir) {
			return true
		}
	}
	return false
}

// HandleShot looks up the ship covering (row, col)
func (p *PlayBoard) HandleShot(row, col int) (int, bool) {
	for _, ship := range p.ships {
		if ship.PointInShip(row, col) {
			return ship.shipID, true
		}
	}
	return 0, false
}

// Clone returns an independent copy of the board
func (p *PlayBoard) Clone() *PlayBoard {
	clone := NewPlayBoard(p.playerName, p.playerNum)
	clone.ships = p.Ships()
	for id := range p.shipIDs {
		clone.shipIDs[id] = struct{}{}
	}
	return clone
}
