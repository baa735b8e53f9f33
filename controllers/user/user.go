package user

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	userModel "parcel-delivery/models/user"
	"parcel-delivery/repository"
	"parcel-delivery/services"
	"parcel-delivery/types"
	userTypes "parcel-delivery/types/user"
	"parcel-delivery/utils"
)

const searchLimit = 10

type UserController struct {
	DB          repository.Store
	Permissions *services.PermissionService
	Logger      *logger.AsyncLogger
	now         func() time.Time
}

func NewUserController(store repository.Store, permissions *services.PermissionService, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		DB:          store,
		Permissions: permissions,
		Logger:      asyncLogger,
		now:         time.Now,
	}
}

func (uc *UserController) logAPIRequest(c *fiber.Ctx) {
	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

func (uc *UserController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	uc.logAPIRequest(c)
	return result
}

func (uc *UserController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status, response := utils.ErrorResponse(err, fallback)
	return uc.sendResponseWithLog(c, status, response)
}

func (uc *UserController) badRequest(c *fiber.Ctx, message string) error {
	return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
	})
}

// Store registers a user on first sign-in. Repeat calls only refresh
// last_log_in and never touch the stored role.
func (uc *UserController) Store(c *fiber.Ctx) error {
	var req userTypes.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return uc.badRequest(c, err.Error())
	}

	ctx := c.UserContext()
	now := uc.now()

	_, err := uc.DB.Users().FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return uc.existingUser(c, req.Email, now)
	case !errors.Is(err, repository.ErrNotFound):
		return uc.sendError(c, err, "Failed to look up user")
	}

	u := userModel.User{
		Email:     req.Email,
		Name:      req.Name,
		Photo:     req.Photo,
		Role:      constants.RoleUser,
		CreatedAt: now,
		LastLogIn: now,
	}
	id, err := uc.DB.Users().Create(ctx, &u)
	if errors.Is(err, repository.ErrDuplicate) {
		// Another sign-in for the same email won the race.
		return uc.existingUser(c, req.Email, now)
	}
	if err != nil {
		return uc.sendError(c, err, "Failed to create user")
	}

	logger.Success("User registered: " + req.Email)
	return uc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "User created successfully",
		Status:  fiber.StatusCreated,
		Data:    fiber.Map{"inserted": true, "insertedId": id.Hex()},
	})
}

func (uc *UserController) existingUser(c *fiber.Ctx, email string, at time.Time) error {
	if err := uc.DB.Users().TouchLastLogin(c.UserContext(), email, at); err != nil {
		return uc.sendError(c, err, "Failed to update last login")
	}
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "User already exists",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"inserted": false},
	})
}

// Search finds users whose email contains ?email=, case-insensitively.
func (uc *UserController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("email"))
	if query == "" {
		return uc.badRequest(c, "Missing email query")
	}

	users, err := uc.DB.Users().SearchByEmail(c.UserContext(), query, searchLimit)
	if err != nil {
		return uc.sendError(c, err, "Failed to search users")
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Users fetched successfully",
		Status:  fiber.StatusOK,
		Data:    users,
	})
}

// Role reports the stored role for :email. Unknown users are plain users.
func (uc *UserController) Role(c *fiber.Ctx) error {
	email := c.Params("email")
	role, err := uc.Permissions.RoleOf(c.UserContext(), email)
	if errors.Is(err, repository.ErrNotFound) {
		role, err = constants.RoleUser, nil
	}
	if err != nil {
		return uc.sendError(c, err, "Failed to get role")
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Role fetched successfully",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"role": role},
	})
}

func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return uc.badRequest(c, "Invalid user ID")
	}

	var req userTypes.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.badRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return uc.badRequest(c, err.Error())
	}
	if !constants.IsAssignableRole(req.Role) {
		return uc.badRequest(c, "Invalid role")
	}

	if err := uc.DB.Users().UpdateRole(c.UserContext(), id, req.Role); err != nil {
		return uc.sendError(c, repository.Named(err, "User"), "Failed to update role")
	}

	logger.Info("Role of user " + id.Hex() + " set to " + req.Role)
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "User role updated to " + req.Role,
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"role": req.Role},
	})
}
