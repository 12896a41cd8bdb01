package httpapi

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-lookup-service/internal/session"
	"weather-lookup-service/internal/store"
	"weather-lookup-service/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the session endpoints into the Fiber app. newSession
// constructs a fresh orchestrator wired to the configured providers.
func RegisterRoutes(app *fiber.App, registry *session.Registry, newSession func() *session.Session) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		var req createSessionRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if (req.Latitude == nil) != (req.Longitude == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "latitude and longitude must be supplied together")
		}

		sess := newSession()
		id := registry.Add(sess)

		if req.Latitude != nil {
			coords := weather.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
			if err := sess.Fetch(c.Context(), &coords, nil); err != nil {
				// The failure is published in the session state.
				log.Printf("httpapi: initial fetch for session %s failed: %v", id, err)
			}
		} else {
			sess.Start(c.Context())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    id,
			"state": sess.State(),
		})
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, registry)
		if err != nil {
			return err
		}
		return c.JSON(sess.State())
	})

	v1.Post("/sessions/:id/search", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, registry)
		if err != nil {
			return err
		}

		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Search failures land in the state's error message; retyping is
		// never blocked by them.
		if err := sess.Search(c.Context(), req.Term); err != nil {
			log.Printf("httpapi: search %q failed: %v", req.Term, err)
		}
		return c.JSON(sess.State())
	})

	v1.Post("/sessions/:id/select", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, registry)
		if err != nil {
			return err
		}

		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := sess.SelectCandidate(c.Context(), req.CandidateID); err != nil {
			if errors.Is(err, session.ErrNoSuchCandidate) {
				return fiber.NewError(fiber.StatusNotFound, "candidate not found in current search results")
			}
			// Fetch failures are published in the session state.
			log.Printf("httpapi: fetch for candidate %d failed: %v", req.CandidateID, err)
		}
		return c.JSON(sess.State())
	})

	v1.Post("/sessions/:id/history/:entryId/restore", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, registry)
		if err != nil {
			return err
		}

		entryID, err := strconv.ParseInt(c.Params("entryId"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid history entry id")
		}

		if err := sess.RestoreHistory(entryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no history entry with requested id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to restore history entry")
		}
		return c.JSON(sess.State())
	})

	v1.Get("/sessions/:id/chart", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, registry)
		if err != nil {
			return err
		}
		return c.JSON(weather.ChartSeriesFor(sess.State().CurrentSeries))
	})
}

func lookupSession(c *fiber.Ctx, registry *session.Registry) (*session.Session, error) {
	sess, ok := registry.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return sess, nil
}

type createSessionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type searchRequest struct {
	// An empty term is valid: it clears the candidate list.
	Term string `json:"term" validate:"max=128"`
}

type selectRequest struct {
	CandidateID int64 `json:"candidateId" validate:"required"`
}
