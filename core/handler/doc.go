// Package handler defines the request handling contract used by the HTTP
// API: a handler returns a Response, and a Response either renders itself
// or returns an error for the ErrorHandler to render.
//
//	func getFilm(r *http.Request) handler.Response {
//		film, err := svc.Film(r.Context(), id)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(film)
//	}
//
//	r.Get("/films/{id}", handler.Adapt(getFilm, response.JSONErrorHandler))
//
// Every error path ends in the ErrorHandler given to Adapt.
package handler
