// Copyright (c) 2026 Vidora. All rights reserved.

package users

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/sec"
	"github.com/vidora-app/vidora/internal/platform/validate"
)

// multipartMemoryLimit is the in-memory threshold for parsed multipart
// forms; larger parts spill to temporary files.
const multipartMemoryLimit = 10 << 20

// CookiePolicy describes how session cookies are issued.
type CookiePolicy struct {
	// Secure marks cookies as HTTPS-only. Disabled in development.
	Secure bool

	// AccessTTL and RefreshTTL bound the cookie lifetimes to the
	// corresponding token lifetimes.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler exposes the /users HTTP surface.
type Handler struct {
	service *Service
	cookies CookiePolicy
}

// NewHandler wires the users handler.
func NewHandler(service *Service, cookies CookiePolicy) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// Routes assembles the users router.
//
// Registration, login, and refresh are reachable anonymously; everything
// else requires an authenticated principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refreshToken)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/logout", handler.logout)
		protected.Post("/change-password", handler.changePassword)
		protected.Get("/current-user", handler.currentUser)
		protected.Patch("/update-account", handler.updateAccount)
		protected.Patch("/avatar", handler.updateAvatar)
		protected.Patch("/cover-image", handler.updateCoverImage)
		protected.Get("/c/{username}", handler.channelProfile)
		protected.Get("/history", handler.watchHistory)
		protected.Delete("/history/{videoId}", handler.removeFromWatchHistory)
	})

	return router
}

// register handles POST /users/register (multipart form).
//
// The only operation of the API that answers 201 instead of 200.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// Avatar plus optional cover image, both images.
	request.Body = http.MaxBytesReader(writer, request.Body, 2*constants.MaxImageUploadSize)
	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}

	input := RegisterInput{
		Username: request.FormValue(FieldUsername),
		Email:    request.FormValue(FieldEmail),
		FullName: request.FormValue(FieldFullName),
		Password: request.FormValue(FieldPassword),
	}

	avatar, closeAvatar, err := requestutil.FormUpload(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeAvatar()

	coverImage, closeCover, err := requestutil.FormUpload(request, FieldCoverImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeCover()

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, 30).
		Required(FieldEmail, input.Email).
		Required(FieldFullName, input.FullName).
		Required(FieldPassword, input.Password).
		Custom(FieldAvatar, avatar == nil, "This field is required")
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Avatar = avatar
	input.CoverImage = coverImage

	principal, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, principal, "User registered successfully")
}

// login handles POST /users/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		Custom(FieldUsername, input.Username == "" && input.Email == "", "Username or email is required").
		Required(FieldPassword, input.Password).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, session, "User logged in successfully")
}

// logout handles POST /users/logout.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)
	respond.OK(writer, struct{}{}, "User logged out successfully")
}

// refreshToken handles POST /users/refresh-token.
//
// The token is read from the refreshToken cookie when present, falling back
// to the JSON body for non-browser clients.
func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	presented := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		// Body decode is best-effort: an empty body is the same as a
		// missing token and fails below with 401.
		_ = requestutil.DecodeJSON(request, &body)
		presented = body.RefreshToken
	}

	session, err := handler.service.Refresh(request.Context(), presented)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, session, "Access token refreshed successfully")
}

// changePassword handles POST /users/change-password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		Required(FieldOldPassword, body.OldPassword).
		Required(FieldNewPassword, body.NewPassword).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, body.OldPassword, body.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Password changed successfully")
}

// currentUser handles GET /users/current-user.
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal, "Current user fetched successfully")
}

// updateAccount handles PATCH /users/update-account.
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateAccountInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := (&validate.Validator{}).
		Custom(FieldFullName, input.Username == "" && input.Email == "" && input.FullName == "", "At least one field is required")
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Username != "" {
		validator.MaxLen(FieldUsername, input.Username, 30)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := handler.service.UpdateAccount(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal, "Account details updated successfully")
}

// updateAvatar handles PATCH /users/avatar (multipart form).
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, FieldAvatar, handler.service.UpdateAvatar, "Avatar updated successfully")
}

// updateCoverImage handles PATCH /users/cover-image (multipart form).
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, FieldCoverImage, handler.service.UpdateCoverImage, "Cover image updated successfully")
}

// updateImage is the shared multipart flow behind avatar and cover updates.
func (handler *Handler) updateImage(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	update func(ctx context.Context, userID string, upload *media.Upload) (*sec.Principal, error),
	message string,
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadSize)
	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}

	upload, closeUpload, err := requestutil.FormUpload(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()

	if upload == nil {
		respond.Error(writer, request, validate.RequiredError(field, "file is required"))
		return
	}

	principal, err := update(request.Context(), userID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal, message)
}

// setSessionCookies mirrors the issued token pair into HTTP-only cookies.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		MaxAge:   int(handler.cookies.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     "/",
		MaxAge:   int(handler.cookies.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies expires both session cookies.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   handler.cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// channelProfile handles GET /users/c/{username}.
func (handler *Handler) channelProfile(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, "username")
	if err := (&validate.Validator{}).Required(FieldUsername, username).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.ChannelProfile(request.Context(), username, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile, "User channel fetched successfully")
}

// watchHistory handles GET /users/history.
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	history, err := handler.service.WatchHistory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, history, "Watch history fetched successfully")
}

// removeFromWatchHistory handles DELETE /users/history/{videoId}.
func (handler *Handler) removeFromWatchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFromWatchHistory(request.Context(), userID, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Video removed from watch history")
}

