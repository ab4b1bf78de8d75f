package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brainhints/backend/internal/autosave"
	"brainhints/backend/internal/config"
	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/comment"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/faq"
	"brainhints/backend/internal/domain/feedback"
	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/domain/search"
	"brainhints/backend/internal/domain/support"
	"brainhints/backend/internal/domain/user"
	"brainhints/backend/internal/domain/video"
	"brainhints/backend/internal/handlers"
	"brainhints/backend/internal/middleware"
)

type RouterDeps struct {
	Cfg              config.Config
	Verifier         middleware.TokenVerifier
	ArticleSvc       *article.Service
	VideoSvc         *video.Service
	FAQSvc           *faq.Service
	SearchSvc        *search.Service
	CommentSvc       *comment.Service
	FeedbackSvc      *feedback.Service
	SupportSvc       *support.Service
	NotificationsSvc *notifications.Service
	UserSvc          *user.Service
	Autosave         *autosave.Manager
	Media            *handlers.Media
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public reads. A valid token is attached when present so views and feedback can be
	// attributed, but nothing here requires one.
	r.Group(func(pub chi.Router) {
		pub.Use(middleware.OptionalAuth(d.Verifier))
		registerPublicContent(pub, d)
		registerPublicEngagement(pub, d)
	})

	// Signed-in users
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.Verifier))
		registerAccount(pr, d)
		registerEngagement(pr, d)
	})

	// Admin console
	r.Route("/v1/admin", func(ar chi.Router) {
		ar.Use(middleware.WithAuth(d.Verifier))
		ar.Use(middleware.RequireAdmin)
		registerAdminContent(ar, d)
		registerAdminEngagement(ar, d)
		registerDrafts(ar, d)
		if d.Media != nil {
			ar.Post("/media", d.Media.Upload)
			ar.Delete("/media", d.Media.Delete)
			ar.Post("/media/signed-url", d.Media.CreateSignedUploadURL)
			ar.Post("/media/signed-urls", d.Media.CreateSignedUploadURLs)
			ar.Delete("/media/object", d.Media.DeleteObject)
		}
	})

	return r
}

func registerAccount(pr chi.Router, d RouterDeps) {
	pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		out, err := d.UserSvc.Me(r.Context(), identity(au))
		if err != nil {
			failErr(w, r, err, mapUserError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Put("/v1/me/profile", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in user.UpdateProfileInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.UserSvc.UpdateProfile(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapUserError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Post("/v1/me/device", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in user.RegisterDeviceInput
		if !decode(w, r, &in) {
			return
		}
		if err := d.UserSvc.RegisterDevice(r.Context(), au.UID, in.Token); err != nil {
			failErr(w, r, err, mapUserError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})
}

func identity(au *middleware.AuthUser) user.Identity {
	if au == nil {
		return user.Identity{}
	}
	return user.Identity{UID: au.UID, Email: au.Email, Name: au.Name, Picture: au.Picture, Admin: au.Admin}
}

// callerUID is empty for anonymous requests.
func callerUID(r *http.Request) string {
	if au, ok := middleware.GetAuthUser(r.Context()); ok {
		return au.UID
	}
	return ""
}

func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// contentRef reads ?contentType=&contentId=.
func contentRef(r *http.Request) (content.Ref, bool) {
	t, ok := content.ParseType(r.URL.Query().Get("contentType"))
	ref := content.Ref{Type: t, ID: strings.TrimSpace(r.URL.Query().Get("contentId"))}
	return ref, ok && ref.Valid()
}
