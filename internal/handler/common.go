package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "trendradar/internal/errors"
)

// respondError renders any error through the taxonomy mapping.
func respondError(c echo.Context, err error) error {
	e := apperrors.MapErrorToHTTP(err)
	return c.JSON(e.StatusCode, e.ToErrorResponse())
}

// respondValidation renders a 400 for bad request input.
func respondValidation(c echo.Context, message string) error {
	e := apperrors.NewHTTPError(http.StatusBadRequest, message, "VALIDATION_ERROR")
	return c.JSON(e.StatusCode, e.ToErrorResponse())
}

// FlexID accepts a JSON number or a numeric string. Clients send trend id
// lists with mixed types; non-numeric strings coerce to zero and match no
// row, which bulk operations tolerate.
type FlexID uint

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*f = FlexID(v)
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexID(n)
	default:
		return fmt.Errorf("invalid id value %v", raw)
	}
	return nil
}

func flexIDs(ids []FlexID) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint(id))
	}
	return out
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
