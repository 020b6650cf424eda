package http

import (
	"encoding/json"
	"net/http"

	"proxy-logs/internal/queries"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type getDataHandler struct {
	queryService    queries.QueryService
	responseHeaders map[string]string
}

func NewGetDataHandler(queryService queries.QueryService, responseHeaders map[string]string) AppHttpHandler {
	return &getDataHandler{
		queryService:    queryService,
		responseHeaders: responseHeaders,
	}
}

// Handle processes GET /get_data requests. Every query parameter is passed through by its
// first value; the location cookie stands in for default_location.
func (h *getDataHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	// configured headers apply to error responses too
	for name, value := range h.responseHeaders {
		w.Header().Set(name, value)
	}

	query := r.URL.Query()
	params := make(map[string]string, len(query)+1)
	for name := range query {
		params[name] = query.Get(name)
	}
	if params[paramLocation] == "" && params[paramDefaultLocation] == "" {
		if location := locationCookie(r); location != "" {
			params[paramDefaultLocation] = location
		}
	}

	result, err := h.queryService.FetchLogData(r.Context(), params)
	if err != nil {
		return err
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(result.Document())
}
