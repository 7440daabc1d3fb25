// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc)

NewHandler adds the middleware chain used by the server (CORS, panic
recovery, session resolution):

	handler := router.NewHandler(svc, cfg)

# Endpoints

Health:

	GET /health

Polls:

	POST   /polls      - Create poll (signed in)
	GET    /polls      - List public polls (?skip=&limit=)
	GET    /polls/{id} - Poll with options
	PUT    /polls/{id} - Update title/description (creator)
	DELETE /polls/{id} - Delete poll and its options (creator)

Voting and results:

	POST /polls/{id}/vote    - Count one vote for an option
	GET  /polls/{id}/results - Results, analytics and share links

Sessions are read from "Authorization: Bearer <token>" or the session
cookie.
*/
package router
