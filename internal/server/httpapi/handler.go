package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/server/dto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/labstack/echo/v4"
)

var errMalformedBody = services.NewValidationError("malformed JSON body", nil)

func (s *HTTPServer) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) register(c echo.Context) error {
	var in dto.RegisterUserRequest
	if err := c.Bind(&in); err != nil {
		return errMalformedBody
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	result, err := s.svc.Register(c.Request().Context(), in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toResponse(result))
}

func (s *HTTPServer) login(c echo.Context) error {
	var in dto.LoginUserRequest
	if err := c.Bind(&in); err != nil {
		return errMalformedBody
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	result, err := s.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(result))
}

func (s *HTTPServer) verify(c echo.Context) error {
	var in dto.VerifyTokenRequest
	if err := c.Bind(&in); err != nil {
		return errMalformedBody
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	result, err := s.svc.VerifyToken(c.Request().Context(), in.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(result))
}

func toResponse(r *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: r.User, Token: r.Token}
}
