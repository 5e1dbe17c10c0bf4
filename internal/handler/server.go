// Package handler implements the HTTP handlers for the Mappr API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (trip.go, pin.go, places.go, etc.) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/places"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/service"
)

// The service interfaces below are defined here, in the consumer package,
// following the Go convention: "accept interfaces, return concrete types".
// Handler tests inject function-field mocks without touching the database
// or service layer.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, userID uuid.UUID) (domain.Trip, error)
	GetForUser(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, domain.Role, error)
	ListForUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip, userID uuid.UUID) (domain.Trip, error)
	Delete(ctx context.Context, tripID, userID uuid.UUID) error
}

// PinServicer defines the business operations the pin handlers depend on.
type PinServicer interface {
	Create(ctx context.Context, pin domain.Pin, userID uuid.UUID) (domain.Pin, error)
	GetByID(ctx context.Context, tripID, pinID, userID uuid.UUID) (domain.Pin, error)
	ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Pin, error)
	Update(ctx context.Context, pin domain.Pin, userID uuid.UUID) (domain.Pin, error)
	Delete(ctx context.Context, tripID, pinID, userID uuid.UUID) error
}

// CategoryServicer defines the business operations the category handlers depend on.
type CategoryServicer interface {
	Create(ctx context.Context, cat domain.Category, userID uuid.UUID) (domain.Category, error)
	ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Category, error)
	Update(ctx context.Context, cat domain.Category, userID uuid.UUID) (domain.Category, error)
	Delete(ctx context.Context, tripID, catID, userID uuid.UUID) error
}

// CollaboratorServicer defines the sharing operations the collaborator handlers depend on.
type CollaboratorServicer interface {
	ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Collaborator, error)
	Share(ctx context.Context, tripID uuid.UUID, email string, role domain.Role, userID uuid.UUID) (domain.Collaborator, error)
	UpdateRole(ctx context.Context, tripID, collabID uuid.UUID, role domain.Role, userID uuid.UUID) (domain.Collaborator, error)
	Revoke(ctx context.Context, tripID, collabID, userID uuid.UUID) error
}

// ListItemServicer defines the checklist operations the list handlers depend on.
type ListItemServicer interface {
	Create(ctx context.Context, item domain.ListItem, userID uuid.UUID) (domain.ListItem, error)
	ListByTripID(ctx context.Context, tripID, userID uuid.UUID, listType domain.ListType) ([]domain.ListItem, error)
	Update(ctx context.Context, item domain.ListItem, userID uuid.UUID) (domain.ListItem, error)
	Delete(ctx context.Context, tripID, itemID, userID uuid.UUID) error
}

// TimelineServicer assembles the day-by-day itinerary view.
type TimelineServicer interface {
	ForTrip(ctx context.Context, tripID, userID uuid.UUID) (service.Timeline, error)
}

// ExportServicer produces the flat export rows for a trip.
type ExportServicer interface {
	Export(ctx context.Context, tripID, userID uuid.UUID) ([]domain.ExportRow, error)
}

// UserServicer defines the account operations the auth and profile handlers depend on.
type UserServicer interface {
	Signup(ctx context.Context, email, password, displayName string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error)
	SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) (domain.User, string, error)
}

// PlacesClient is the upstream mapping-provider surface the proxy handlers forward to.
type PlacesClient interface {
	Search(ctx context.Context, query string) ([]places.Prediction, error)
	Details(ctx context.Context, placeID string) (map[string]any, error)
	Nearby(ctx context.Context, lat, lng float64) ([]places.NearbyResult, error)
}

// StarsFetcher fetches the project repository's star count.
type StarsFetcher interface {
	Stars(ctx context.Context) (int, error)
}

// AvatarStorer uploads and deletes avatar images in object storage.
type AvatarStorer interface {
	Upload(ctx context.Context, image []byte, contentType, publicID string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips    TripServicer
	pins     PinServicer
	cats     CategoryServicer
	collabs  CollaboratorServicer
	lists    ListItemServicer
	timeline TimelineServicer
	export   ExportServicer
	users    UserServicer

	places  PlacesClient
	stars   StarsFetcher
	avatars AvatarStorer
	events  realtime.Subscriber

	log *slog.Logger
}

// Deps bundles everything a Server needs. Optional collaborators (places,
// stars, avatars, events) may be nil; the corresponding endpoints then
// degrade per their documented behavior.
type Deps struct {
	Trips    TripServicer
	Pins     PinServicer
	Cats     CategoryServicer
	Collabs  CollaboratorServicer
	Lists    ListItemServicer
	Timeline TimelineServicer
	Export   ExportServicer
	Users    UserServicer

	Places  PlacesClient
	Stars   StarsFetcher
	Avatars AvatarStorer
	Events  realtime.Subscriber

	Log *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    d.Trips,
		pins:     d.Pins,
		cats:     d.Cats,
		collabs:  d.Collabs,
		lists:    d.Lists,
		timeline: d.Timeline,
		export:   d.Export,
		users:    d.Users,
		places:   d.Places,
		stars:    d.Stars,
		avatars:  d.Avatars,
		events:   d.Events,
		log:      log,
	}
}
