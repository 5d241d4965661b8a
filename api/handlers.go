package api

import (
	"net/http"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/core/handler"
	"github.com/streaminghub/catalog/core/logger"
	"github.com/streaminghub/catalog/core/response"
)

func (a *API) listFilms(r *http.Request) handler.Response {
	films, err := a.svc.Films(r.Context())
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(films)
}

func (a *API) getFilm(r *http.Request) handler.Response {
	id, err := pathID(r)
	if err != nil {
		return response.Error(err)
	}
	film, err := a.svc.Film(r.Context(), id)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(film)
}

func (a *API) createFilm(r *http.Request) handler.Response {
	var in catalog.FilmInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	film, err := a.svc.CreateFilm(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	a.log.InfoContext(r.Context(), "film created",
		logger.Component("api"),
		logger.Event("film_created"),
		logger.Key("film_id", film.ID),
	)
	return response.Created(film)
}

func (a *API) listSeries(r *http.Request) handler.Response {
	series, err := a.svc.AllSeries(r.Context())
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(series)
}

func (a *API) getSeries(r *http.Request) handler.Response {
	id, err := pathID(r)
	if err != nil {
		return response.Error(err)
	}
	series, err := a.svc.Series(r.Context(), id)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(series)
}

func (a *API) createSeries(r *http.Request) handler.Response {
	var in catalog.SeriesInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	series, err := a.svc.CreateSeries(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.Created(series)
}

func (a *API) listItems(r *http.Request) handler.Response {
	items, err := a.svc.Items(r.Context())
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(items)
}

func (a *API) getItem(r *http.Request) handler.Response {
	id, err := pathID(r)
	if err != nil {
		return response.Error(err)
	}
	item, err := a.svc.Item(r.Context(), id)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(item)
}

func (a *API) createItem(r *http.Request) handler.Response {
	var in catalog.ItemInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	item, err := a.svc.CreateItem(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.Created(item)
}

func (a *API) updateItem(r *http.Request) handler.Response {
	id, err := pathID(r)
	if err != nil {
		return response.Error(err)
	}
	var in catalog.ItemInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	item, err := a.svc.UpdateItem(r.Context(), id, in)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(item)
}

func (a *API) deleteItem(r *http.Request) handler.Response {
	id, err := pathID(r)
	if err != nil {
		return response.Error(err)
	}
	if err := a.svc.DeleteItem(r.Context(), id); err != nil {
		return response.Error(err)
	}
	return response.JSON(map[string]bool{"success": true})
}

// listRatings answers a single rating (or null) when both movie_id and
// user_id are given, and a list otherwise.
func (a *API) listRatings(r *http.Request) handler.Response {
	movieID, err := queryID(r, "movie_id")
	if err != nil {
		return response.Error(err)
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		return response.Error(err)
	}

	if movieID != 0 && userID != 0 {
		rating, err := a.svc.Rating(r.Context(), movieID, userID)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(rating)
	}

	ratings, err := a.svc.Ratings(r.Context(), catalog.RatingFilter{MovieID: movieID, UserID: userID})
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(ratings)
}

func (a *API) rate(r *http.Request) handler.Response {
	var in catalog.Rating
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	rating, err := a.svc.Rate(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.Created(rating)
}

func (a *API) listLibrary(r *http.Request) handler.Response {
	userID, err := queryID(r, "user_id")
	if err != nil {
		return response.Error(err)
	}
	entries, err := a.svc.Library(r.Context(), userID)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(entries)
}

func (a *API) addToLibrary(r *http.Request) handler.Response {
	var in catalog.LibraryInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	entry, err := a.svc.AddToLibrary(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.Created(entry)
}

func (a *API) listFriends(r *http.Request) handler.Response {
	userID, err := queryID(r, "user_id")
	if err != nil {
		return response.Error(err)
	}
	friends, err := a.svc.Friends(r.Context(), userID)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(friends)
}

func (a *API) addFriend(r *http.Request) handler.Response {
	var in catalog.FriendInput
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	friend, err := a.svc.AddFriend(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.Created(friend)
}

func (a *API) login(r *http.Request) handler.Response {
	var in catalog.Credentials
	if err := decode(r, &in); err != nil {
		return response.Error(err)
	}
	session, err := a.svc.Login(r.Context(), in)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(session)
}
