// Package response builds handler responses and typed HTTP errors.
//
// Constructors such as Text, JSON, HTML, Bytes, NoContent and Redirect return
// a *handler.Response ready to be returned from an endpoint:
//
//	return response.JSON(http.StatusOK, user)
//
// HTTPError carries a status, a machine readable code and a message. An
// endpoint or middleware that returns one gets exactly that status and
// message on the wire. Predefined values cover the common statuses:
//
//	return nil, response.ErrNotFound.WithMessage("user not found")
//
// Any other error is rendered as a generic 500 by TextErrorHandler or
// JSONErrorHandler; its text stays in the logs.
package response
