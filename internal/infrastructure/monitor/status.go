package monitor

import "time"

type Status struct {
	Driver    string    `json:"driver"`
	Store     bool      `json:"store"`
	TodoCount int       `json:"todo_count"`
	LastCheck time.Time `json:"last_check"`
}
