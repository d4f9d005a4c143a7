package engine

import "fmt"

// GameData is the root aggregate for one game: grid dimensions, the allowed
// ship sizes and the players' boards in insertion order.
type GameData struct {
	rows         int
	cols         int
	playerCount  int
	loaded       bool
	interactive  bool
	filename     string
	smallestShip int
	largestShip  int
	boards       []*PlayBoard
}

// NewGameData creates a game with the default 10x10 grid, one player and
// ship sizes 2 through 5
func NewGameData() *GameData {
	return &GameData{
		rows:         DefaultRows,
		cols:         DefaultCols,
		playerCount:  DefaultPlayerCount,
		smallestShip: DefaultSmallestShip,
		largestShip:  DefaultLargestShip,
	}
}

// Reset restores the defaults and drops all boards
func (g *GameData) Reset() {
	*g = *NewGameData()
}

// Rows returns the number of grid rows
func (g *GameData) Rows() int {
	return g.rows
}

// Cols returns the number of grid columns
func (g *GameData) Cols() int {
	return g.cols
}

// SetRows validates and sets the row count
func (g *GameData) SetRows(rows int) error {
	if err := ValidateDimension(rows); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	g.rows = rows
	return nil
}

// SetCols validates and sets the column count
func (g *GameData) SetCols(cols int) error {
	if err := ValidateDimension(cols); err != nil {
		return fmt.Errorf("cols: %w", err)
	}
	g.cols = cols
	return nil
}

// SetDimensions sets rows and columns together; neither changes on error
func (g *GameData) SetDimensions(rows, cols int) error {
	if err := ValidateDimension(rows); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	if err := ValidateDimension(cols); err != nil {
		return fmt.Errorf("cols: %w", err)
	}
	g.rows, g.cols = rows, cols
	return nil
}

// InBounds reports whether the cell lies inside the grid
func (g *GameData) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < g.cols && c.Row < g.rows
}

// ContainsShip reports whether both ends of the ship lie inside the grid
func (g *GameData) ContainsShip(ship ShipBoundingBox) bool {
	return g.InBounds(ship.start) && g.InBounds(ship.end)
}

// ShipSizes returns the inclusive (smallest, largest) ship-size range
func (g *GameData) ShipSizes() (int, int) {
	return g.smallestShip, g.largestShip
}

// SetShipSizes sets the ship-size range. When largest is nil it becomes the
// larger of the current largest size and smallest.
func (g *GameData) SetShipSizes(smallest int, largest *int) error {
	large := max(g.largestShip, smallest)
	if largest != nil {
		large = *largest
	}
	if err := ValidateShipSizes(smallest, large); err != nil {
		return err
	}
	g.smallestShip, g.largestShip = smallest, large
	return nil
}

// PlayerCount returns the declared number of players, which may differ from
// the number of boards while a game is being built
func (g *GameData) PlayerCount() int {
	return g.playerCount
}

// SetPlayerCount sets the declared number of players
func (g *GameData) SetPlayerCount(n int) error {
	if n < 0 {
		return fmt.Errorf("player count must not be negative, got %d", n)
	}
	g.playerCount = n
	return nil
}

// IncrementPlayerCount adds one declared player
func (g *GameData) IncrementPlayerCount() {
	g.playerCount++
}

// DecrementPlayerCount removes one declared player
func (g *GameData) DecrementPlayerCount() error {
	if g.playerCount <= 0 {
		return fmt.Errorf("player count dropped below 0")
	}
	g.playerCount--
	return nil
}

// Loaded reports whether the game came from a save file
func (g *GameData) Loaded() bool {
	return g.loaded
}

// SetLoaded marks the game as loaded from a save file
func (g *GameData) SetLoaded(loaded bool) {
	g.loaded = loaded
}

// Interactive reports whether the game is driven interactively
func (g *GameData) Interactive() bool {
	return g.interactive
}

// SetInteractive sets interactive mode
func (g *GameData) SetInteractive(interactive bool) {
	g.interactive = interactive
}

// Filename returns the save file associated with the game
func (g *GameData) Filename() string {
	return g.filename
}

// SetFilename associates a save file with the game
func (g *GameData) SetFilename(name string) {
	g.filename = name
}

// BoardCount returns the number of boards
func (g *GameData) BoardCount() int {
	return len(g.boards)
}

// AddBoard appends a player's board
func (g *GameData) AddBoard(board *PlayBoard) {
	g.boards = append(g.boards, board)
}

// Boards returns the boards in insertion order. The slice is a copy; the
// boards are shared.
func (g *GameData) Boards() []*PlayBoard {
	boards := make([]*PlayBoard, len(g.boards))
	copy(boards, g.boards)
	return boards
}

// LastBoard returns the most recently added board
func (g *GameData) LastBoard() (*PlayBoard, bool) {
	if len(g.boards) == 0 {
		return nil, false
	}
	return g.boards[len(g.boards)-1], true
}

// PopLastBoard removes and returns the most recently added board
func (g *GameData) PopLastBoard() (*PlayBoard, bool) {
	board, ok := g.LastBoard()
	if !ok {
		return nil, false
	}
	g.boards = g.boards[:len(g.boards)-1]
	return board, true
}

// RemoveFirstBoard removes and returns the oldest board
func (g *GameData) RemoveFirstBoard() (*PlayBoard, bool) {
	if len(g.boards) == 0 {
		return nil, false
	}
	board := g.boards[0]
	g.boards = g.boards[1:]
	return board, true
}

// Board finds a board by player number. Numbers are not guaranteed to match
// positions, so this is a linear scan returning the first match.
func (g *GameData) Board(playerNum int) (*PlayBoard, bool) {
	for _, board := range g.boards {
		if board.playerNum == playerNum {
			return board, true
		}
	}
	return nil, false
}

// BoardByName finds a board by player name
func (g *GameData) BoardByName(name string) (*PlayBoard, bool) {
	for _, board := range g.boards {
		if board.playerName == name {
			return board, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the game and its boards
func (g *GameData) Clone() *GameData {
	clone := *g
	clone.boards = make([]*PlayBoard, len(g.boards))
	for i, board := range g.boards {
		clone.boards[i] = board.Clone()
	}
	return &clone
}
