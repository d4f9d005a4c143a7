package engine

import "fmt"

// PlacementReason classifies why a proposed ship was rejected
type PlacementReason int

const (
	ReasonInvalidSize PlacementReason = iota + 1
	ReasonOutOfBounds
	ReasonDiagonal
	ReasonDuplicateID
	ReasonOverlap
)

func (r PlacementReason) String() string {
	switch r {
	case ReasonInvalidSize:
		return "invalid size"
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonDiagonal:
		return "diagonal"
	case ReasonDuplicateID:
		return "duplicate ship id"
	case ReasonOverlap:
		return "overlaps another ship"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// PlacementError describes a rejected placement
type PlacementError struct {
	Reason PlacementReason
	ShipID int
	Start  Cell
	End    Cell
	// Other is the id of the ship hit when Reason is ReasonOverlap
	Other int
}

func (e *PlacementError) Error() string {
	switch e.Reason {
	case ReasonOverlap:
		return fmt.Sprintf("ship %d at %s-%s overlaps ship %d", e.ShipID, e.Start, e.End, e.Other)
	case ReasonOutOfBounds:
		return fmt.Sprintf("ship %d at %s-%s is out of bounds", e.ShipID, e.Start, e.End)
	default:
		return fmt.Sprintf("ship %d at %s: %s", e.ShipID, e.Start, e.Reason)
	}
}

// CheckPlacement validates a ship of length shipID starting at start and
// returns the box it would occupy. It never modifies game or player.
func CheckPlacement(shipID int, start Cell, dir Direction, game *GameData, player *PlayBoard) (ShipBoundingBox, error) {
	if shipID < 1 {
		return ShipBoundingBox{}, &PlacementError{Reason: ReasonInvalidSize, ShipID: shipID, Start: start}
	}

	candidate := ShipBoundingBox{
		shipID: shipID,
		start:  start,
		end:    endCell(start, shipID, dir),
	}
	if !game.InBounds(candidate.start) || !game.InBounds(candidate.end) {
		return ShipBoundingBox{}, &PlacementError{Reason: ReasonOutOfBounds, ShipID: shipID, Start: candidate.start, End: candidate.end}
	}
	if candidate.Diagonal() {
		return ShipBoundingBox{}, &PlacementError{Reason: ReasonDiagonal, ShipID: shipID, Start: candidate.start, End: candidate.end}
	}
	if player.HasShipID(shipID) {
		return ShipBoundingBox{}, &PlacementError{Reason: ReasonDuplicateID, ShipID: shipID, Start: candidate.start, End: candidate.end}
	}
	for _, existing := range player.ships {
		if candidate.Overlaps(existing) {
			return ShipBoundingBox{}, &PlacementError{
				Reason: ReasonOverlap,
				ShipID: shipID,
				Start:  candidate.start,
				End:    candidate.end,
				Other:  existing.shipID,
			}
		}
	}

	return candidate, nil
}

// NewShip builds a validated ship or reports false. The caller decides
// whether a rejection matters and is responsible for adding the ship.
func NewShip(shipID int, start Cell, dir Direction, game *GameData, player *PlayBoard) (ShipBoundingBox, bool) {
	ship, err := CheckPlacement(shipID, start, dir, game, player)
	return ship, err == nil
}

// PlaceShip validates a placement and adds the ship to the player
func PlaceShip(game *GameData, player *PlayBoard, shipID int, start Cell, dir Direction) bool {
	ship, ok := NewShip(shipID, start, dir, game, player)
	if !ok {
		return false
	}
	return player.AddShip(ship)
}
