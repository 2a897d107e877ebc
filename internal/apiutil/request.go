// Package apiutil holds the request and response plumbing shared by the
// resource handlers.
package apiutil

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shockerli/cvt"
)

// Rules describe how a JSON body is checked and coerced before it is decoded
// into a model. Number, integer and boolean fields accept loosely typed
// input ("350", "", null) the way form inputs send it; absent and empty
// values become zero.
type Rules struct {
	Required []string
	Numbers  []string
	Ints     []string
	Bools    []string
}

// Missing returns the required fields that are absent, null or blank.
func Missing(body map[string]any, required ...string) []string {
	var missing []string
	for _, f := range required {
		v, ok := body[f]
		if !ok || v == nil {
			missing = append(missing, f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func MissingFieldsError(fields []string) error {
	return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+strings.Join(fields, ", "))
}

// Decode validates the request body against r and decodes it into dst.
// The raw body map is returned for handlers that need to know which
// fields were sent.
func Decode(c *fiber.Ctx, dst any, r Rules) (map[string]any, error) {
	body := map[string]any{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := Normalize(body, r); err != nil {
		return nil, err
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return body, nil
}

// Normalize checks required fields and coerces loose scalars in place.
func Normalize(body map[string]any, r Rules) error {
	if missing := Missing(body, r.Required...); len(missing) > 0 {
		return MissingFieldsError(missing)
	}

	for _, f := range r.Numbers {
		v, err := looseFloat(body[f])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be a number", f))
		}
		body[f] = v
	}
	for _, f := range r.Ints {
		v, err := looseFloat(body[f])
		if err != nil || v != float64(int64(v)) {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be a whole number", f))
		}
		body[f] = int64(v)
	}
	for _, f := range r.Bools {
		raw := body[f]
		if isBlank(raw) {
			body[f] = false
			continue
		}
		v, err := cvt.BoolE(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be true or false", f))
		}
		body[f] = v
	}
	return nil
}

func looseFloat(v any) (float64, error) {
	if isBlank(v) {
		return 0, nil
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	return cvt.Float64E(v)
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// NaturalKey reads a URL-encoded natural key (truck number, employee
// name) from the route.
func NaturalKey(c *fiber.Ctx, param string) (string, error) {
	key, err := url.PathUnescape(c.Params(param))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid "+param)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Missing "+param)
	}
	return key, nil
}

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || n == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+param)
	}
	return uint(n), nil
}

// QueryInt parses an optional integer query value.
func QueryInt(c *fiber.Ctx, key string) (int, bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return 0, false, nil
	}
	n, err := cvt.IntE(s)
	if err != nil {
		return 0, false, fiber.NewError(fiber.StatusBadRequest, key+" must be a number")
	}
	return n, true, nil
}

// Enum matches value case-insensitively against allowed and returns the
// canonical spelling. A blank value gives def.
func Enum(field, value, def string, allowed ...string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a, nil
		}
	}
	return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}
