// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/models"
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the HTTP-only cookie that carries the access
// token for browser clients. Non-browser clients may send the same
// token as a bearer Authorization header instead.
const SessionCookieName = "access_token"

func VerifySessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		sessionToken := ""
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			sessionToken = cookie.Value
		} else if authHeader := c.Request().Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			sessionToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if sessionToken == "" {
			logger.Error("Session cookie and Authorization header both missing.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Authentication token is required",
			}
		}

		email, err := crypto.VerifyAccessToken(sessionToken)
		if err != nil {
			logger.Error("Access token failed verification: ", err)
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session token, please login again",
			}
		}

		user := models.User{}
		if err := db.Conn.Where("email = ?", email).First(&user).Error; err != nil {
			logger.Error("Token subject has no matching user: ", err)
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session token, please login again",
			}
		}

		c.Set("user", user)
		return next(c)
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(models.User); ok {
		return &user, nil
	}
	return nil, errors.New("no authenticated user found")
}

func GetAuthenticatedUserID(c echo.Context) (uint, error) {
	user, err := GetAuthenticatedUser(c)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
