package router

import (
	"github.com/gofrs/uuid"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/router/consts"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// bindAndValidate 構造体iにFormDataまたはJsonをデシリアライズします
func bindAndValidate(c echo.Context, i interface{}) error {
	if err := c.Bind(i); err != nil {
		return err
	}
	if err := vd.Validate(i); err != nil {
		if e, ok := err.(vd.InternalError); ok {
			return herror.InternalServerError(e.InternalError())
		}
		return herror.BadRequest(err)
	}
	return nil
}

// getRequestUser リクエストユーザーを返します
func getRequestUser(c echo.Context) *model.User {
	return c.Get(consts.KeyUser).(*model.User)
}

// getParamAsUUID 指定したパスパラメータをuuid.UUIDとして返します
func getParamAsUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, herror.NotFound()
	}
	return id, nil
}
