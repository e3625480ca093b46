package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/nft", func(r chi.Router) {
				r.Post("/", handler(s.postV1Nft))
				r.Get("/items", handler(s.getV1NftItems))
				r.Get("/items/{product_code}", handler(s.getV1NftItem))
				r.Post("/items/view", handler(s.postV1NftItemsView))
				r.Get("/trending", handler(s.getV1NftTrending))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(r.Context(), w, err)
		}
	}
}
