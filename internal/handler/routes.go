package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnthonysMotion/mappr/backend/internal/middleware"
	"github.com/AnthonysMotion/mappr/backend/spec"
)

// maxJSONBody caps JSON request bodies at 1 MiB.
const maxJSONBody = 1 << 20

// Routes mounts every endpoint on a fresh chi router.
// requireAuth is the bearer-token middleware; everything except the health
// check, the star count, and the signup/login pair sits behind it. The
// places proxy is authenticated too so the upstream API key cannot be
// farmed through an open relay.
// Body limits are applied per route: JSON endpoints take maxJSONBody, the
// avatar upload takes its own larger cap.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	limitJSON := middleware.NewMaxBodySizeHandler(maxJSONBody)
	// The avatar part itself is capped at maxAvatarBytes in UploadAvatar;
	// the request cap only adds headroom for the multipart framing.
	limitUpload := middleware.NewMaxBodySizeHandler(maxAvatarBytes + 64<<10)

	r.Get("/healthz", s.GetHealth)
	r.Get("/github/stars", s.GetStars)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck
		w.Write(spec.OpenAPI)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(limitJSON)
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.With(requireAuth).Get("/me", s.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/places", func(r chi.Router) {
			r.Get("/search", s.SearchPlaces)
			r.Get("/details", s.GetPlaceDetails)
			r.Get("/nearby", s.NearbyPlaces)
		})

		r.Route("/profile", func(r chi.Router) {
			r.With(limitJSON).Put("/", s.UpdateProfile)
			r.With(limitUpload).Post("/avatar", s.UploadAvatar)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(limitJSON)
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/timeline", s.GetTimeline)
				r.Get("/events", s.StreamEvents)
				r.Get("/export", s.ExportTrip)

				r.Route("/pins", func(r chi.Router) {
					r.Post("/", s.CreatePin)
					r.Get("/", s.ListPins)
					r.Get("/{pinID}", s.GetPin)
					r.Put("/{pinID}", s.UpdatePin)
					r.Delete("/{pinID}", s.DeletePin)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Post("/", s.CreateCategory)
					r.Get("/", s.ListCategories)
					r.Put("/{categoryID}", s.UpdateCategory)
					r.Delete("/{categoryID}", s.DeleteCategory)
				})

				r.Route("/lists", func(r chi.Router) {
					r.Post("/", s.CreateListItem)
					r.Get("/", s.ListListItems)
					r.Put("/{itemID}", s.UpdateListItem)
					r.Delete("/{itemID}", s.DeleteListItem)
				})

				r.Route("/collaborators", func(r chi.Router) {
					r.Get("/", s.ListCollaborators)
					r.Post("/", s.ShareTrip)
					r.Put("/{collaboratorID}", s.UpdateCollaboratorRole)
					r.Delete("/{collaboratorID}", s.RevokeCollaborator)
				})
			})
		})
	})

	return r
}
