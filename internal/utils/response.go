package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the common structure for successful API responses.
// Data is always serialised, as null when there is nothing to return.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PaginatedResponse is the envelope for list endpoints.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination is the metadata attached to paginated responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ErrorResponse is the envelope for failures. Errors is only set for validation failures.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendPaginated sends a page of items with its pagination metadata.
func SendPaginated(c *fiber.Ctx, message string, data interface{}, pagination Pagination) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Message: message,
	})
}

// SendValidationError sends a 400 response carrying the field errors.
func SendValidationError(c *fiber.Ctx, message string, errors map[string]string) error {
	if message == "" {
		message = "Validation failed"
	}

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}

// SendNotFound sends a 404 response.
func SendNotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return SendError(c, fiber.StatusNotFound, message)
}
