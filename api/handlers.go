package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"lifeos/domain"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, creds Credentials, logger *log.Logger) {
	e.GET("/health", health())
	e.POST("/auth/register", register(creds))
	e.POST("/auth/login", login(creds))

	data := e.Group("/data", requireIdentity(creds))
	data.GET("", getData(store, logger))
	data.POST("", postData(store))
	data.POST("/generate-demo", generateDemo(store, creds))
}

func health() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	}
}

func register(creds Credentials) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := decodeAuthRequest(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password required"})
		}
		name := req.Name
		if name == "" {
			if at := strings.Index(req.Email, "@"); at > 0 {
				name = req.Email[:at]
			} else {
				name = req.Email
			}
		}
		if err := creds.Create(req.Email, req.Password, name); err != nil {
			if errors.Is(err, ErrIdentityExists) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrIdentityExists.Error()})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "registration failed"})
		}
		return c.JSON(http.StatusOK, authResponse{Success: true, User: domain.User{Email: req.Email, Name: name}})
	}
}

func login(creds Credentials) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := decodeAuthRequest(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		user, err := creds.Verify(req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: ErrInvalidCredentials.Error()})
		}
		return c.JSON(http.StatusOK, authResponse{Success: true, User: user})
	}
}

func getData(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics := newDataRequestMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		email := identityFrom(c)

		loadStart := time.Now()
		data, loadErr := store.Load(ctx, email)
		metrics.ObserveLoad(time.Since(loadStart))
		if loadErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(loadErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: loadErr.Error()})
			return err
		}

		// Cache-on-read: persist a freshly computed overview so subsequent
		// loads don't recompute it.
		if data.Overview == nil {
			data.ComputeOverview()
			metrics.SetOverviewComputed(true)
			saveStart := time.Now()
			if saveErr := store.Save(ctx, email, data); saveErr != nil {
				c.Logger().Error(saveErr)
			}
			metrics.ObserveSave(time.Since(saveStart))
		}

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, data)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func postData(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		email := identityFrom(c)

		lr := io.LimitReader(c.Request().Body, dataBodyMaxSize)
		var patch domain.AggregatePatch
		if err := sonic.ConfigStd.NewDecoder(lr).Decode(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}

		data, err := store.Load(ctx, email)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		data.ApplyPatch(patch)

		if err := store.Save(ctx, email, data); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func generateDemo(store Storage, creds Credentials) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		email := identityFrom(c)

		name := ""
		if user, ok := creds.Profile(email); ok {
			name = user.Name
		}
		demo := domain.GenerateDemoData(email, name)

		data, err := store.Load(ctx, email)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		data.Tasks = demo.Tasks
		data.Notes = demo.Notes
		data.Habits = demo.Habits
		data.Goals = demo.Goals
		data.Areas = demo.Areas
		if len(data.DailyReviews) == 0 {
			data.DailyReviews = demo.DailyReviews
		}
		data.ComputeOverview()

		if err := store.Save(ctx, email, data); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, struct {
			Success bool             `json:"success"`
			Data    *domain.UserData `json:"data"`
		}{Success: true, Data: data})
	}
}

func decodeAuthRequest(c echo.Context) (authRequest, error) {
	lr := io.LimitReader(c.Request().Body, authBodyMaxSize)
	var req authRequest
	if err := sonic.ConfigStd.NewDecoder(lr).Decode(&req); err != nil {
		return authRequest{}, err
	}
	return req, nil
}
