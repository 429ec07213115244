// Dog HTTP handlers.
//
// This file exposes REST endpoints for dog listings:
//   - POST /dogs               (create, authenticated, write-quota)
//   - GET  /dogs               (filtered public listing)
//   - GET  /dogs/{id}          (detail; hidden/deleted are 404 for non-admins)
//   - GET  /dogs/{id}/my-request (caller's latest request for the dog)
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawpal/pawpal-backend/internal/repo"
	"github.com/pawpal/pawpal-backend/internal/services"
	"github.com/pawpal/pawpal-backend/internal/utils"
)

// Listing page bounds.
const (
	defaultDogLimit = 24
	maxDogLimit     = 50
)

// CreateDogRequest is the JSON payload for creating a listing.
type CreateDogRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=80"`
	Breed       *string  `json:"breed" binding:"omitempty,max=80"`
	AgeYears    *float64 `json:"age_years" binding:"omitempty,gte=0,lte=25"`
	Gender      string   `json:"gender" binding:"omitempty,oneof=male female unknown"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Area        string   `json:"area" binding:"required,min=2,max=120"`
	LocationLat *float64 `json:"location_lat" binding:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng" binding:"omitempty,gte=-180,lte=180"`

	Images []string `json:"images" binding:"required,min=1,max=6,dive,url"`
	Videos []string `json:"videos" binding:"omitempty,max=3,dive,url"`

	HealthSterilised bool    `json:"health_sterilised"`
	HealthVaccinated bool    `json:"health_vaccinated"`
	HealthDewormed   bool    `json:"health_dewormed"`
	MicrochipID      *string `json:"microchip_id" binding:"omitempty,max=80"`

	CompatibilityKids *bool `json:"compatibility_kids"`
	CompatibilityDogs *bool `json:"compatibility_dogs"`
	CompatibilityCats *bool `json:"compatibility_cats"`

	EnergyLevel  *string `json:"energy_level" binding:"omitempty,max=20"`
	Temperament  *string `json:"temperament" binding:"omitempty,max=100"`
	Playfulness  *string `json:"playfulness" binding:"omitempty,max=100"`
	SpecialNeeds *string `json:"special_needs" binding:"omitempty,max=200"`

	PersonalityTagIDs []uint `json:"personality_tag_ids" binding:"omitempty,max=20"`
}

// boolParam parses a query flag; only the literal "true" counts.
func boolParam(c *gin.Context, name string) *bool {
	if c.Query(name) == "true" {
		t := true
		return &t
	}
	return nil
}

// floatParam parses an optional float query parameter; invalid values are
// treated as absent.
func floatParam(c *gin.Context, name string) *float64 {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CreateDog godoc
// @ID          createDog
// @Summary     Create a dog listing
// @Description Creates a listing owned by the authenticated caretaker. New listings start available and visible.
// @Tags        Dogs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateDogRequest  true  "New listing"
//
// @Success     201  {object}  domain.Dog
// @Failure     400  {object}  handlers.ErrorEnvelope  "Validation error"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Missing credentials"
// @Failure     429  {object}  handlers.ErrorEnvelope  "Submission limit reached"
// @Router      /dogs [post]
func (h *Handlers) CreateDog(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	var req CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid listing payload", err.Error())
		return
	}

	dog, err := h.Dogs.Create(c.Request.Context(), cl.AuthUserID, services.DogCreateInput{
		Name:              req.Name,
		Breed:             req.Breed,
		AgeYears:          req.AgeYears,
		Gender:            req.Gender,
		Description:       req.Description,
		Area:              req.Area,
		LocationLat:       req.LocationLat,
		LocationLng:       req.LocationLng,
		Images:            req.Images,
		Videos:            req.Videos,
		HealthSterilised:  req.HealthSterilised,
		HealthVaccinated:  req.HealthVaccinated,
		HealthDewormed:    req.HealthDewormed,
		MicrochipID:       req.MicrochipID,
		CompatibilityKids: req.CompatibilityKids,
		CompatibilityDogs: req.CompatibilityDogs,
		CompatibilityCats: req.CompatibilityCats,
		EnergyLevel:       req.EnergyLevel,
		Temperament:       req.Temperament,
		Playfulness:       req.Playfulness,
		SpecialNeeds:      req.SpecialNeeds,
		PersonalityTagIDs: req.PersonalityTagIDs,
	})
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true, "dog": dog})
}

// dogFilterFromQuery builds the repo filter from the request's query
// string. Status defaults to "available" on the public route; the admin
// route overrides the Include* flags afterwards.
func dogFilterFromQuery(c *gin.Context) repo.DogFilter {
	f := repo.DogFilter{
		Q:      strings.TrimSpace(c.Query("q")),
		Area:   strings.TrimSpace(c.Query("area")),
		Breed:  strings.TrimSpace(c.Query("breed")),
		Gender: c.Query("gender"),
		Energy: strings.TrimSpace(c.Query("energy")),
		Status: c.DefaultQuery("status", "available"),

		CompatKids: boolParam(c, "compat_kids"),
		CompatDogs: boolParam(c, "compat_dogs"),
		CompatCats: boolParam(c, "compat_cats"),

		Lat:      floatParam(c, "lat"),
		Lng:      floatParam(c, "lng"),
		RadiusKm: floatParam(c, "radius_km"),
	}
	if ids := c.QueryArray("tag_ids"); len(ids) > 0 {
		for _, s := range ids {
			if n, err := strconv.ParseUint(s, 10, 32); err == nil {
				f.TagIDs = append(f.TagIDs, uint(n))
			}
		}
		if len(f.TagIDs) > 20 {
			f.TagIDs = f.TagIDs[:20]
		}
	}
	f.Limit = utils.ClampLimit(utils.AtoiDefault(c.Query("limit"), defaultDogLimit), defaultDogLimit, maxDogLimit)
	f.Offset = utils.ClampOffset(utils.AtoiDefault(c.Query("offset"), 0))
	return f
}

// ListDogs godoc
// @ID          listDogs
// @Summary     List dog listings
// @Description Filtered public listing: free-text q over name/area, exact filters, personality-tag overlap, and a lat/lng/radius_km bounding box. Hidden and deleted listings never appear.
// @Tags        Dogs
// @Produce     json
//
// @Param       q          query  string   false "Free-text search over name and area"
// @Param       area       query  string   false "Area substring"
// @Param       breed      query  string   false "Breed substring"
// @Param       gender     query  string   false "male|female|unknown"
// @Param       energy     query  string   false "Energy level"
// @Param       status     query  string   false "Lifecycle status"  default(available)
// @Param       compat_kids query bool     false "Only true filters"
// @Param       tag_ids    query  []int    false "Personality tag ids (overlap)"
// @Param       lat        query  number   false "Latitude of search center"
// @Param       lng        query  number   false "Longitude of search center"
// @Param       radius_km  query  number   false "Radius in km (bounding box)"
// @Param       limit      query  int      false "Page size"  default(24) maximum(50)
// @Param       offset     query  int      false "Page offset" minimum(0)
//
// @Success     200  {object}  handlers.ListEnvelope
// @Router      /dogs [get]
func (h *Handlers) ListDogs(c *gin.Context) {
	f := dogFilterFromQuery(c)
	// "any" clears the default status filter without exposing moderated rows.
	if f.Status == "any" {
		f.Status = ""
	}

	items, total, err := h.Dogs.List(c.Request.Context(), f)
	if err != nil {
		svcError(c, err)
		return
	}
	okList(c, items, f.Limit, f.Offset, total)
}

// GetDog godoc
// @ID          getDog
// @Summary     Get one listing
// @Description Returns the listing with personality tags. Hidden or soft-deleted listings are 404 unless the caller is an admin.
// @Tags        Dogs
// @Produce     json
//
// @Param       id  path  string  true  "Dog ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Dog
// @Failure     404  {object}  handlers.ErrorEnvelope  "Not found"
// @Router      /dogs/{id} [get]
func (h *Handlers) GetDog(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dog id must be a UUID")
		return
	}

	dog, err := h.Dogs.Get(c.Request.Context(), id, isAdmin(c))
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "dog": dog})
}

// MyRequestForDog godoc
// @ID          myRequestForDog
// @Summary     Caller's request for a dog
// @Description Returns the caller's most recent adoption request for the dog, or null when none was filed.
// @Tags        Dogs
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Dog ID (UUID)"  format(uuid)
//
// @Success     200  {object}  map[string]any
// @Failure     401  {object}  handlers.ErrorEnvelope  "Missing credentials"
// @Router      /dogs/{id}/my-request [get]
func (h *Handlers) MyRequestForDog(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dog id must be a UUID")
		return
	}

	req, err := h.Adoptions.MyRequestForDog(c.Request.Context(), cl.AuthUserID, id)
	if err != nil {
		svcError(c, err)
		return
	}
	// req is nil (JSON null) when the caller never filed one.
	ok(c, http.StatusOK, gin.H{"ok": true, "request": req})
}
