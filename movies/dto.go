package movies

// MovieRequest is the payload for creating or updating a movie. It carries no
// id: ids are always store-assigned, and a client-supplied id on create is
// never trusted. The validate tags are the request validation schema; every
// constraint is enforced before the payload reaches the store.
type MovieRequest struct {
	Title    string  `json:"title" validate:"required,min=5,max=15" example:"My movie"`
	Overview string  `json:"overview" validate:"required,min=15,max=50" example:"Description of my movie"`
	Year     int     `json:"year" validate:"required,lte=2023" example:"2023"`
	Rating   float64 `json:"rating" validate:"required,gt=0,lte=10" example:"9.2"`
	Category string  `json:"category" validate:"required,min=5,max=15" example:"Horror"`
}

// MessageResponse is the fixed-message body returned by the mutating
// operations. The key casing and the Spanish wording are part of the wire
// contract and must not change.
type MessageResponse struct {
	Response string `json:"Response" example:"Pelicula Creada"`
}

// LookupMissResponse is the body returned when a read lookup finds nothing.
// The misspelled "nessage" key is preserved on purpose: existing clients match
// on it.
type LookupMissResponse struct {
	Nessage string `json:"nessage" example:"Pelicula no encontrada"`
}

// Fixed response messages, verbatim from the wire contract.
const (
	msgMovieNotFound = "Pelicula no encontrada"
	msgMovieCreated  = "Pelicula Creada"
	msgMovieUpdated  = "Su pelicula ha sido actualizada"
	msgMovieDeleted  = "Pelicula eliminada satisfactoriamente"
	msgNoMovieWithID = "No existen peliculas con el ID indicado"
)
