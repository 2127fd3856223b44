// Package session hosts more than one concurrently-running game behind a
// single process: it pairs each game's Controller and AI driver under a
// generated id so a thin presentation layer (internal/httpapi, or any other
// front end) can address them independently.
package session

import (
	"time"

	"xiangqi/internal/aidriver"
	"xiangqi/internal/controller"
)

// Session is one hosted game: its controller, its AI driver, and the
// bookkeeping timestamps a multi-game manager needs.
type Session struct {
	ID string

	Controller *controller.Controller
	Driver     *aidriver.Driver

	CreatedAt time.Time
	UpdatedAt time.Time
}
