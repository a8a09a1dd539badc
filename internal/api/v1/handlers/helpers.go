package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationFields mengubah error validator menjadi map field -> pesan,
// supaya client dapat detail per-field, bukan satu string panjang.
func validationFields(err error) fiber.Map {
	fields := fiber.Map{}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			fields[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "' validation"
		}
		return fields
	}
	fields["non_field"] = err.Error()
	return fields
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(400).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  400,
	})
}

func validationError(c *fiber.Ctx, err error) error {
	return c.Status(400).JSON(fiber.Map{
		"message": "Validation error",
		"errors":  validationFields(err),
		"success": false,
		"status":  400,
	})
}

// notFound dipakai baik untuk resource yang tidak ada maupun resource milik
// user lain; keduanya sengaja tidak bisa dibedakan dari luar.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(404).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  404,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(500).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  500,
	})
}
