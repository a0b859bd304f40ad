package main

import (
	"bytes"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// overrideRequest is the body of POST /display.
type overrideRequest struct {
	Value   *int   `json:"value"`
	Seconds int    `json:"seconds,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// newWebApp builds the fiber app serving the UI, the status JSON, the
// live preview and the manual override endpoint.
func newWebApp(st *displayState, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/", indexHandler)
	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(st.snapshot(time.Now()))
	})
	app.Get("/preview.svg", func(c *fiber.Ctx) error {
		return servePreview(c, st)
	})
	app.Post("/display", func(c *fiber.Ctx) error {
		return setDisplay(c, st, cfg)
	})
	app.Delete("/display", func(c *fiber.Ctx) error {
		st.clearOverride()
		return c.SendString("Override cleared")
	})

	return app
}

func indexHandler(c *fiber.Ctx) error {
	return c.SendFile("assets/html/index.html")
}

// servePreview renders the last shifted frame pair as an SVG image.
func servePreview(c *fiber.Ctx, st *displayState) error {
	frameA, frameB, minus, celsius := st.lastFrames()

	var buf bytes.Buffer
	renderPreviewSVG(&buf, frameA, frameB, minus, celsius)

	c.Set("Content-Type", "image/svg+xml")
	c.Set("Content-Length", strconv.Itoa(buf.Len()))
	return c.Send(buf.Bytes())
}

// setDisplay applies a manual override. Values are validated against
// the display domain before they can reach the encoder; out-of-range
// values are rejected, never clamped.
func setDisplay(c *fiber.Ctx, st *displayState, cfg Config) error {
	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid JSON")
	}

	if req.Mode == "auto" {
		st.clearOverride()
		return c.SendString("Override cleared")
	}

	if req.Value == nil {
		return c.Status(fiber.StatusBadRequest).SendString("Missing value")
	}
	v := *req.Value
	if v < sevenseg.MinValue || v > sevenseg.MaxValue {
		return c.Status(fiber.StatusBadRequest).
			SendString("Value must be between -99 and 99")
	}

	ttl := time.Duration(cfg.OverrideSeconds) * time.Second
	if req.Seconds > 0 {
		ttl = time.Duration(req.Seconds) * time.Second
	}
	st.setOverride(v, ttl)
	return c.SendString("Display override set")
}

func httpServer(st *displayState, cfg Config) {
	app := newWebApp(st, cfg)
	log.Println("Starting Fiber server on", cfg.Listen)
	log.Fatal(app.Listen(cfg.Listen))
}
