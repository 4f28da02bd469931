package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the session routes behind the request gate. The gate wraps
// the whole router so no protected route can be registered outside it.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	s := r.PathPrefix("/session").Subrouter()
	s.HandleFunc("/login", h.login).Methods(http.MethodPost)
	s.HandleFunc("/logout", h.logout).Methods(http.MethodDelete)
	s.HandleFunc("/signup", h.signup).Methods(http.MethodPost)
	s.HandleFunc("/forgotpassword", h.forgotPassword).Methods(http.MethodPost)
	s.HandleFunc("/resetpassword", h.resetPassword).Methods(http.MethodPost)

	// Catch-all 404, reached only by requests the gate admitted.
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "Request "+r.URL.Path+" not found.")
	})

	return h.requestGate(r)
}
