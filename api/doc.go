// Package api exposes the catalog over JSON HTTP endpoints under /api.
//
// Errors are rendered as {"error": message, "code": code}. Validation
// failures answer 400 with the offending field in details, missing records
// 404, bad login 401 and store failures 500 without internals.
package api
