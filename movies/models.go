// Package movies implements the movie catalog: the record model, the store
// abstraction with its in-memory and PostgreSQL backends, the service applying
// field validation and lookup policy, and the HTTP handlers exposing the CRUD
// surface.
package movies

// Movie represents a catalog record. The id is assigned by the store on
// creation and never mutated afterwards; updates overwrite all five remaining
// fields together.
type Movie struct {
	ID       int     `json:"id" example:"1"`
	Title    string  `json:"title" example:"My movie"`
	Overview string  `json:"overview" example:"Description of my movie"`
	Year     int     `json:"year" example:"2023"`
	Rating   float64 `json:"rating" example:"9.2"`
	Category string  `json:"category" example:"Horror"`
}
