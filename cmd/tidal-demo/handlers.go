package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/integration/database/pg"
	"github.com/dmitrymomot/tidal/middleware"
)

type (
	request  = handler.Request[*App]
	endpoint = handler.EndpointFunc[*App]
)

// countHits increments the shared counter for every routed request.
func countHits() handler.Middleware[*App] {
	return handler.MiddlewareFunc[*App](func(req *request, next handler.Next[*App]) (*handler.Response, error) {
		req.State().hits.Add(1)
		return next(req)
	})
}

func getUser(req *request) (*handler.Response, error) {
	id, err := req.Param("id")
	if err != nil {
		return nil, err
	}
	requestID, _ := middleware.GetRequestID(req)
	return response.JSON(http.StatusOK, map[string]any{
		"id":         id,
		"request_id": requestID,
	})
}

func getFile(req *request) (*handler.Response, error) {
	path, err := req.Param("path")
	if err != nil {
		return nil, err
	}
	return response.String("file: " + path), nil
}

type note struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func createNote(req *request) (*handler.Response, error) {
	var n note
	if err := req.BodyJSON(&n); err != nil {
		if errors.Is(err, handler.ErrDecodeBody) {
			return nil, response.ErrBadRequest.WithError(err)
		}
		return nil, err
	}
	if n.Title == "" {
		return nil, response.ErrUnprocessableEntity.WithDetails(map[string]any{"title": "required"})
	}

	if db := req.State().db; db != nil {
		err := db.QueryRow(req.Context(),
			"INSERT INTO notes (title, body) VALUES ($1, $2) RETURNING id", n.Title, n.Body,
		).Scan(&n.ID)
		if pg.IsDuplicateKeyError(err) {
			return nil, response.ErrConflict.WithMessage("A note with this title already exists")
		}
		if err != nil {
			return nil, fmt.Errorf("insert note: %w", err)
		}
	}
	return response.JSON(http.StatusCreated, n)
}

func getNote(req *request) (*handler.Response, error) {
	db := req.State().db
	if db == nil {
		return nil, response.ErrNotImplemented.WithMessage("Postgres is not configured")
	}
	raw, _ := req.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, response.ErrNotFound
	}

	var n note
	err = db.QueryRow(req.Context(),
		"SELECT id, title, body FROM notes WHERE id = $1", id,
	).Scan(&n.ID, &n.Title, &n.Body)
	if pg.IsNotFoundError(err) {
		return nil, response.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load note %d: %w", id, err)
	}
	return response.JSON(http.StatusOK, n)
}

func getKey(req *request) (*handler.Response, error) {
	cache := req.State().cache
	if cache == nil {
		return nil, response.ErrNotImplemented.WithMessage("Redis is not configured")
	}
	key, _ := req.Param("key")
	val, err := cache.Get(req.Context(), "demo:"+key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, response.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return response.String(val), nil
}

func putKey(req *request) (*handler.Response, error) {
	cache := req.State().cache
	if cache == nil {
		return nil, response.ErrNotImplemented.WithMessage("Redis is not configured")
	}
	key, _ := req.Param("key")
	val, err := req.BodyString()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(req.Context(), "demo:"+key, val, time.Hour).Err(); err != nil {
		return nil, fmt.Errorf("set %q: %w", key, err)
	}
	return handler.NewResponse(http.StatusNoContent), nil
}

// stats is a plain net/http handler mounted as an endpoint.
func stats(app *App) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "hits %d\nuptime %s\n", app.hits.Load(), time.Since(app.started).Round(time.Second))
	})
}
