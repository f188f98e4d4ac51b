package httpapi

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// defaultLocationName is used when a forecast is requested for bare coordinates.
const defaultLocationName = "Unknown"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(router fiber.Router, ctrl *app.Controller) {
	v1 := router.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(renderState(ctrl.State()))
	})

	requestForecast := func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st := ctrl.RequestForecast(c.UserContext(), req.Latitude, req.Longitude, req.name())
		return c.JSON(renderState(st))
	}
	v1.Get("/forecast", requestForecast)
	v1.Post("/forecast", requestForecast)

	v1.Post("/forecast/refresh", func(c *fiber.Ctx) error {
		err := ctrl.Refresh(c.UserContext())
		if errors.Is(err, app.ErrNothingToRefresh) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		// Refresh failures are already reflected in the published state.
		return c.JSON(renderState(ctrl.State()))
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		query := c.Query("q")
		results := ctrl.RequestSearch(c.UserContext(), query)
		return c.JSON(fiber.Map{
			"query":   strings.TrimSpace(query),
			"results": results,
		})
	})

	v1.Delete("/locations", func(c *fiber.Ctx) error {
		ctrl.ClearSearchResults()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"favorites": ctrl.Favorites()})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req favoriteBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid favorite body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := ctrl.AddFavorite(c.UserContext(), req.toLocation()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save favorite")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorites": ctrl.Favorites()})
	})

	v1.Get("/favorites/:name", func(c *fiber.Ctx) error {
		name, err := nameParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"name":     name,
			"favorite": ctrl.IsFavorite(name),
		})
	})

	v1.Delete("/favorites/:name", func(c *fiber.Ctx) error {
		name, err := nameParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := ctrl.RemoveFavorite(c.UserContext(), name); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove favorite")
		}
		return c.JSON(fiber.Map{"favorites": ctrl.Favorites()})
	})
}

// forecastQuery identifies the coordinate to fetch, from a JSON body or the query string.
type forecastQuery struct {
	Latitude  float64 `json:"latitude" query:"lat" validate:"latitude"`
	Longitude float64 `json:"longitude" query:"lon" validate:"longitude"`
	Name      string  `json:"name" query:"name" validate:"max=200"`
}

func (q *forecastQuery) bind(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(q); err != nil {
			return errors.New("invalid forecast body")
		}
		return nil
	}

	if c.Query("lat") == "" || c.Query("lon") == "" {
		return errors.New("lat and lon query parameters are required")
	}
	if err := c.QueryParser(q); err != nil {
		return errors.New("lat and lon must be numbers")
	}
	return nil
}

func (q forecastQuery) name() string {
	if n := strings.TrimSpace(q.Name); n != "" {
		return n
	}
	return defaultLocationName
}

// favoriteBody is the payload for pinning a location.
type favoriteBody struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

func (f favoriteBody) toLocation() weather.Location {
	return weather.Location{
		Name:      f.Name,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}

func nameParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || strings.TrimSpace(name) == "" {
		return "", errors.New("invalid favorite name")
	}
	return name, nil
}
