package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/faq"
	"brainhints/backend/internal/domain/search"
	"brainhints/backend/internal/domain/video"
	"brainhints/backend/internal/middleware"
)

func registerPublicContent(pub chi.Router, d RouterDeps) {
	// ===== Articles =====
	pub.Get("/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArticleSvc.ListPublished(r.Context())
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
			kept := out[:0]
			for _, a := range out {
				if strings.EqualFold(a.Category, c) {
					kept = append(kept, a)
				}
			}
			out = kept
		}
		WriteJSON(w, 200, map[string]any{"articles": out})
	})

	pub.Get("/v1/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArticleSvc.GetPublished(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pub.Post("/v1/articles/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		counted, err := d.ArticleSvc.RecordView(r.Context(), chi.URLParam(r, "id"), callerUID(r))
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, map[string]any{"counted": counted})
	})

	// ===== Videos =====
	pub.Get("/v1/videos", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.VideoSvc.ListPublished(r.Context())
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
			kept := out[:0]
			for _, v := range out {
				if strings.EqualFold(v.Category, c) {
					kept = append(kept, v)
				}
			}
			out = kept
		}
		WriteJSON(w, 200, map[string]any{"videos": out})
	})

	pub.Get("/v1/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.VideoSvc.GetPublished(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pub.Post("/v1/videos/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		counted, err := d.VideoSvc.RecordView(r.Context(), chi.URLParam(r, "id"), callerUID(r))
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, map[string]any{"counted": counted})
	})

	// ===== FAQs =====
	pub.Get("/v1/faqs", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.FAQSvc.List(r.Context(), content.StatusPublished, r.URL.Query().Get("category"))
		if err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 200, map[string]any{"faqs": out})
	})

	// ===== Search & browse =====
	pub.Get("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out, err := d.SearchSvc.Search(r.Context(), search.Query{
			Q:        q.Get("q"),
			Type:     content.Type(strings.ToLower(strings.TrimSpace(q.Get("type")))),
			Category: q.Get("category"),
			Limit:    queryInt(r, "limit", 0),
		})
		if err != nil {
			failErr(w, r, err, mapSearchError)
			return
		}
		WriteJSON(w, 200, map[string]any{"results": out, "total": len(out)})
	})

	pub.Get("/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.SearchSvc.Categories(r.Context())
		if err != nil {
			failErr(w, r, err, mapSearchError)
			return
		}
		WriteJSON(w, 200, map[string]any{"categories": out})
	})
}

func registerAdminContent(ar chi.Router, d RouterDeps) {
	// ===== Articles =====
	ar.Get("/articles", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out, err := d.ArticleSvc.List(r.Context(), article.ListFilter{
			Status:   content.Status(q.Get("status")),
			Category: q.Get("category"),
			Limit:    queryInt(r, "limit", 0),
		})
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, map[string]any{"articles": out})
	})

	ar.Post("/articles", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in article.ArticleInput
		if !decode(w, r, &in) {
			return
		}
		name := au.Name
		if name == "" {
			name = au.Email
		}
		out, err := d.ArticleSvc.Create(r.Context(), article.Author{UID: au.UID, Name: name}, in)
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 201, out)
	})

	ar.Get("/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArticleSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Put("/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in article.ArticleInput
		if !decode(w, r, &in) {
			return
		}
		id := chi.URLParam(r, "id")
		out, err := d.ArticleSvc.Update(r.Context(), id, in)
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		// an explicit save supersedes any pending auto-save
		if d.Autosave != nil {
			d.Autosave.Cancel(draftKey("article", id))
		}
		WriteJSON(w, 200, out)
	})

	ar.Delete("/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.ArticleSvc.Delete(r.Context(), id); err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		if d.Autosave != nil {
			d.Autosave.Cancel(draftKey("article", id))
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})

	ar.Post("/articles/{id}/publish", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArticleSvc.Publish(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Post("/articles/{id}/unpublish", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArticleSvc.Unpublish(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Post("/articles/{id}/schedule", func(w http.ResponseWriter, r *http.Request) {
		var in article.ScheduleInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.ArticleSvc.Schedule(r.Context(), chi.URLParam(r, "id"), in.ScheduledAt)
		if err != nil {
			failErr(w, r, err, mapArticleError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Videos =====
	ar.Get("/videos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out, err := d.VideoSvc.List(r.Context(), video.ListFilter{
			Status:   content.Status(q.Get("status")),
			Category: q.Get("category"),
			Limit:    queryInt(r, "limit", 0),
		})
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, map[string]any{"videos": out})
	})

	ar.Post("/videos", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in video.VideoInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.VideoSvc.Create(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 201, out)
	})

	ar.Get("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.VideoSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Put("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in video.VideoInput
		if !decode(w, r, &in) {
			return
		}
		id := chi.URLParam(r, "id")
		out, err := d.VideoSvc.Update(r.Context(), id, in)
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		if d.Autosave != nil {
			d.Autosave.Cancel(draftKey("video", id))
		}
		WriteJSON(w, 200, out)
	})

	ar.Delete("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.VideoSvc.Delete(r.Context(), id); err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		if d.Autosave != nil {
			d.Autosave.Cancel(draftKey("video", id))
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})

	ar.Post("/videos/{id}/publish", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.VideoSvc.Publish(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Post("/videos/{id}/unpublish", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.VideoSvc.Unpublish(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Post("/videos/{id}/schedule", func(w http.ResponseWriter, r *http.Request) {
		var in video.ScheduleInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.VideoSvc.Schedule(r.Context(), chi.URLParam(r, "id"), in.ScheduledAt)
		if err != nil {
			failErr(w, r, err, mapVideoError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== FAQs =====
	ar.Get("/faqs", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out, err := d.FAQSvc.List(r.Context(), content.Status(q.Get("status")), q.Get("category"))
		if err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 200, map[string]any{"faqs": out})
	})

	ar.Post("/faqs", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in faq.FAQInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.FAQSvc.Create(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 201, out)
	})

	ar.Get("/faqs/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.FAQSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Put("/faqs/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in faq.FAQInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.FAQSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Delete("/faqs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := d.FAQSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			failErr(w, r, err, mapFAQError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})
}
