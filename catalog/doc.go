// Package catalog holds the catalog records (films, series, items, ratings,
// libraries, friendships and users) and the Service that validates input
// before handing it to a Store.
//
// Login is a demo stub: an unknown username is registered with the supplied
// password, known users are checked against a bcrypt hash, and the returned
// token is a random UUID that nothing verifies.
package catalog
