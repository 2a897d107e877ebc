package apiutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreatedResponse is the body of every successful POST.
type CreatedResponse struct {
	Message string `json:"message"`
	Record  any    `json:"record"`
}

func Created(c *fiber.Ctx, message string, record any) error {
	return c.Status(fiber.StatusCreated).JSON(CreatedResponse{Message: message, Record: record})
}

func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}

// NotFound gives "<Entity> not found".
func NotFound(entity string) error {
	return fiber.NewError(fiber.StatusNotFound, entity+" not found")
}

// NonNegative rejects negative amounts.
func NonNegative(fields map[string]float64) error {
	for name, v := range fields {
		if v < 0 {
			return fiber.NewError(fiber.StatusBadRequest, name+" must not be negative")
		}
	}
	return nil
}

// StatusTransition rejects moving a settled record back to pending.
func StatusTransition(from, to string) error {
	settled := func(s string) bool {
		s = strings.ToLower(s)
		return s == "completed" || s == "paid"
	}
	if settled(from) && strings.EqualFold(to, "pending") {
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Status cannot go back from %s to %s", from, to))
	}
	return nil
}

// FormatCode renders prefix plus a sequence padded to three digits: F001.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// NextCode is one past the highest sequence among existing codes with
// prefix; codes that do not parse are ignored.
func NextCode(prefix string, existing []string) string {
	highest := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err == nil && n > highest {
			highest = n
		}
	}
	return FormatCode(prefix, highest+1)
}
