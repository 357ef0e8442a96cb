package plan

import "errors"

// Domain errors for plan and job operations

var (
	// Slot and day-key validation errors
	ErrInvalidDayKey    = errors.New("day key must be in YYYY-MM-DD format")
	ErrInvalidMealType  = errors.New("unknown meal type")
	ErrEmptySlotWrite   = errors.New("slot write requires a recipe id")
	ErrSlotTitleMissing = errors.New("slot write requires a recipe title")

	// Job state transition errors
	ErrJobNotRunning = errors.New("generation job is not running")
	ErrJobTerminal   = errors.New("generation job is already terminal")
	ErrJobNotFound   = errors.New("generation job not found")
	ErrNotJobOwner   = errors.New("only the job owner can perform this action")
)
