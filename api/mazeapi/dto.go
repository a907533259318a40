// Package mazeapi provides structures and utilities for creating and
// driving maze generation sessions over HTTP.
package mazeapi

// CreateMazeRequest represents a request to start a new maze session.
// When Seed is present the maze is generated deterministically from it.
type CreateMazeRequest struct {
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
	Seed   *int64 `json:"seed"`
}

// CreateMazeResponse carries the new session's ID and the bearer token
// that authorizes driving it.
type CreateMazeResponse struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GenerateRequest optionally bounds a bulk generation call. A limit below
// one, or an empty body, runs generation to completion.
type GenerateRequest struct {
	Limit int `json:"limit"`
}

// ProgressResponse reports whether the maze is fully generated after a
// step or generate call.
type ProgressResponse struct {
	Done bool `json:"done"`
}

// MazeStateResponse is the bulk export of a session's state. Cells holds
// the packed byte-per-cell grid in row-major order (base64 over JSON);
// bit 0 is visited, bit 1 the right wall, bit 2 the bottom wall.
type MazeStateResponse struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Done   bool   `json:"done"`
	Cells  []byte `json:"cells"`
}
