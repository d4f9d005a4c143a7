package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotANumber       = errors.New("not a valid number")
	ErrTooSmall         = errors.New("value must be greater than or equal to 1")
	ErrTooBig           = fmt.Errorf("value must be less than or equal to %d", MaxSize)
	ErrInvalidShipSizes = errors.New("invalid ship sizes")
)

// ValidateDimension checks a row or column count against [MinSize, MaxSize]
func ValidateDimension(n int) error {
	if n < MinSize {
		return ErrTooSmall
	}
	if n > MaxSize {
		return ErrTooBig
	}
	return nil
}

// ParseDimension parses and validates a row, column or player count
func ParseDimension(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if strings.HasPrefix(strings.TrimSpace(s), "-") {
				return 0, ErrTooSmall
			}
			return 0, ErrTooBig
		}
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if err := ValidateDimension(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateShipSizes checks an inclusive ship-size range
func ValidateShipSizes(smallest, largest int) error {
	if smallest <= 1 {
		return fmt.Errorf("%w: smallest ship size must be greater than 1, got %d", ErrInvalidShipSizes, smallest)
	}
	if largest <= 1 || largest < smallest {
		return fmt.Errorf("%w: largest ship size must be at least the smallest (%d) and greater than 1, got %d",
			ErrInvalidShipSizes, smallest, largest)
	}
	if largest > MaxSize {
		return fmt.Errorf("%w: largest ship size must be at most %d, got %d", ErrInvalidShipSizes, MaxSize, largest)
	}
	return nil
}

// ValidateGameData checks the configuration scalars of a game
func ValidateGameData(game *GameData) error {
	if err := ValidateDimension(game.rows); err != nil {
		return fmt.Errorf("config validation: rows: %w", err)
	}
	if err := ValidateDimension(game.cols); err != nil {
		return fmt.Errorf("config validation: cols: %w", err)
	}
	if game.playerCount < 0 {
		return fmt.Errorf("config validation: player count must not be negative, got %d", game.playerCount)
	}
	if err := ValidateShipSizes(game.smallestShip, game.largestShip); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
