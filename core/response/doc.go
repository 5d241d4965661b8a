// Package response builds handler.Response values for the JSON API and maps
// errors to HTTP status codes.
//
//	func getFilm(r *http.Request) handler.Response {
//		film, err := svc.Film(r.Context(), id)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(film)
//	}
//
// Errors are rendered by ErrorHandler (plain text) or JSONErrorHandler.
// Both look for an HTTPError in the chain first, then for a StatusCode()
// method, and fall back to 500. Predefined values such as ErrNotFound and
// ErrBadRequest can be customized with WithMessage and WithDetails.
package response
