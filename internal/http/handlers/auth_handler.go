package handlers

import (
	"time"

	"medimart/internal/domain"
	applog "medimart/internal/log"
	"medimart/internal/services"
	"medimart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_email_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email})
	return c.JSON(u)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid name"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid email"})
	}
	if !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password needs 8+ chars with upper, lower and digit"})
	}

	u, err := h.Auth.Register(sid, name, email, req.Password)
	if err != nil {
		if err == services.ErrEmailTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
		}
		return fail(c, "auth.register.error", err)
	}

	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Profile returns the logged-in user (RequireUser puts it in Locals).
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	return c.JSON(u)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid name"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid email"})
	}
	if req.Password != "" && !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password needs 8+ chars with upper, lower and digit"})
	}

	updated, err := h.Auth.UpdateProfile(u.ID, name, email, req.Password)
	if err != nil {
		return fail(c, "auth.profile.update.error", err)
	}
	applog.Audit(c, "auth.profile.update", map[string]any{"user_id": u.ID})
	return c.JSON(updated)
}
