package handlers

import (
	"github.com/gofiber/fiber/v2"

	"usersvc/internal/middleware"
	"usersvc/internal/services"
	"usersvc/internal/validation"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func userNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(middleware.ErrorResponse{
		Error:   "NotFound",
		Message: "User not found",
	})
}

// HandleListUsers returns one page of users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	query, err := validation.ParseListQuery(c.Queries())
	if err != nil {
		return err
	}
	page, err := h.service.ListUsers(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetUser returns a single user addressed by id or uuid.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := validation.ParseIdentifier(c.Params("id"))
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return userNotFound(c)
	}
	return c.JSON(user)
}

// HandleCreateUser creates a user and returns it with 201.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseCreateInput(body)
	if err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser changes the name and/or email of a user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := validation.ParseIdentifier(c.Params("id"))
	if err != nil {
		return err
	}
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseUpdateInput(body)
	if err != nil {
		return err
	}
	user, err := h.service.UpdateUser(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if user == nil {
		return userNotFound(c)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user and answers 204 with an empty body.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := validation.ParseIdentifier(c.Params("id"))
	if err != nil {
		return err
	}
	user, err := h.service.DeleteUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return userNotFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseBody decodes a JSON object body. An empty body counts as an empty object.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if len(c.Body()) == 0 {
		return body, nil
	}
	if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
		return nil, &middleware.HTTPError{
			Status:  fiber.StatusBadRequest,
			Code:    "BadRequest",
			Message: "Request body must be a JSON object",
			Cause:   err,
		}
	}
	return body, nil
}
