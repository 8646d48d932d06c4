package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray ID in requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber locals key holding the ray ID.
	LocalsKey = "ray_id"
)

// New returns a middleware that assigns every request a ray ID. An incoming header value
// is kept.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
