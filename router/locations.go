package router

import (
	"errors"
	"net/http"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// liveLocationWindow ライブ地図に表示する位置情報の有効期間
const liveLocationWindow = 10 * time.Minute

// PostLocationRequest POST /api/locations/update リクエストボディ
type PostLocationRequest struct {
	Location model.Coordinates `json:"location"`
}

func (r PostLocationRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Location, vd.By(func(v interface{}) error {
			loc := v.(model.Coordinates)
			if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
				return errors.New("invalid coordinates")
			}
			return nil
		})),
	)
}

// PostLocationUpdate POST /api/locations/update
func (h *Handlers) PostLocationUpdate(c echo.Context) error {
	var req PostLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	me := getRequestUser(c)
	if _, err := h.Repo.RecordLocation(me.ID, req.Location); err != nil {
		return herror.InternalServerError(err)
	}

	h.Presence.TouchOnActivity(me.ID)
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// GetLiveLocations GET /api/locations/live
func (h *Handlers) GetLiveLocations(c echo.Context) error {
	locations, err := h.Repo.GetLiveLocations(time.Now().Add(-liveLocationWindow))
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, locations)
}
