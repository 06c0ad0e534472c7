package tui

import (
	"time"

	"github.com/moyu-x/duplicate-finder/internal"
)

type scanCompleteMsg struct {
	result *internal.ScanResult
}

type errMsg error

type progressTickMsg time.Time
