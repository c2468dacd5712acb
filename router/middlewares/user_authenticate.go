package middlewares

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/consts"
	"github.com/stadtwache/stadtwache/router/extension/ctxkey"
	"github.com/stadtwache/stadtwache/router/extension/herror"
	"github.com/stadtwache/stadtwache/service/authn"
)

const authScheme = "Bearer"

// UserAuthenticate リクエスト認証ミドルウェア
func UserAuthenticate(repo repository.Repository, verifier *authn.Service) echo.MiddlewareFunc {
	var sfUser singleflight.Group

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ah := c.Request().Header.Get(echo.HeaderAuthorization)
			if len(ah) == 0 {
				// WebSocketはAuthorizationヘッダーを送れないためクエリパラメータも許可する
				if t := c.QueryParam("token"); len(t) > 0 {
					ah = authScheme + " " + t
				}
			}
			if len(ah) == 0 {
				return herror.Unauthorized("You are not logged in")
			}

			// Authorizationスキーム検証
			l := len(authScheme)
			if !(len(ah) > l+1 && ah[:l] == authScheme) {
				return herror.Unauthorized("invalid authorization scheme")
			}

			// トークン検証
			uid, err := verifier.VerifyToken(ah[l+1:])
			if err != nil {
				return herror.Unauthorized("invalid token")
			}

			// ユーザー取得
			uI, err, _ := sfUser.Do(uid.String(), func() (interface{}, error) { return repo.GetUser(uid) })
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return herror.Unauthorized("invalid token")
				}
				return herror.InternalServerError(err)
			}
			user := uI.(*model.User)

			// ユーザーアカウント状態を確認
			if !user.IsActive {
				return herror.Forbidden("this account is currently suspended")
			}

			c.Set(consts.KeyUser, user)
			c.Set(consts.KeyUserID, user.ID)
			rctx := context.WithValue(c.Request().Context(), ctxkey.User, user)
			rctx = context.WithValue(rctx, ctxkey.UserID, user.ID)
			c.SetRequest(c.Request().WithContext(rctx)) // WSストリーマーで使う
			return next(c)
		}
	}
}
