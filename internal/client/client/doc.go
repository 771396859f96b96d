// Package client contains the TripKeeper API client.
//
// # Overview
//
// The Client interface lists every operation of the trips REST backend.
// HTTPClient implements it over net/http:
//
//	GET    /api/trips                     ListTrips
//	GET    /api/trips/{id}                GetTrip
//	POST   /api/trips                     CreateTrip
//	PUT    /api/trips/{id}                UpdateTrip
//	DELETE /api/trips/{id}                DeleteTrip
//	POST   /api/photos/upload             UploadPhoto (multipart: file, tripId)
//	PUT    /api/photos/{id}/patch-detail  UpdatePhotoDescription
//	DELETE /api/photos/{id}               DeletePhoto
//	GET    /api/photos?page=N&size=M      ListPhotos
//
// # Error Handling
//
// Non-2xx responses fail with *APIError (status and status text). Requests
// that never got a response fail with *NetworkError, which matches
// ErrUnavailable. A cancelled or expired context is returned as the context
// error. Nothing is retried.
//
// HTTPClient is safe for concurrent use.
package client
