package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"brainhints/backend/internal/domain/comment"
	"brainhints/backend/internal/domain/feedback"
	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/domain/support"
	"brainhints/backend/internal/middleware"
)

const missingRef = "contentType (article|video|faq) and contentId are required"

func registerPublicEngagement(pub chi.Router, d RouterDeps) {
	pub.Get("/v1/comments", func(w http.ResponseWriter, r *http.Request) {
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		out, err := d.CommentSvc.ListThreads(r.Context(), ref)
		if err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 200, map[string]any{"comments": out})
	})

	pub.Get("/v1/comments/count", func(w http.ResponseWriter, r *http.Request) {
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		n, err := d.CommentSvc.Count(r.Context(), ref)
		if err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 200, map[string]any{"count": n})
	})

	pub.Get("/v1/feedback/summary", func(w http.ResponseWriter, r *http.Request) {
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		out, err := d.FeedbackSvc.Summary(r.Context(), ref)
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// site feedback form; anonymous visitors allowed
	pub.Post("/v1/site-feedback", func(w http.ResponseWriter, r *http.Request) {
		var in feedback.SubmitSiteInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.FeedbackSvc.SubmitSite(r.Context(), callerUID(r), in)
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 201, out)
	})
}

func registerEngagement(pr chi.Router, d RouterDeps) {
	// ===== Comments =====
	pr.Post("/v1/comments", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in comment.CreateCommentInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.CommentSvc.Create(r.Context(), commentAuthor(au), in)
		if err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 201, out)
	})

	pr.Patch("/v1/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in comment.UpdateCommentInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.CommentSvc.Update(r.Context(), au.UID, chi.URLParam(r, "id"), in)
		if err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Delete("/v1/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		if err := d.CommentSvc.Delete(r.Context(), commentAuthor(au), chi.URLParam(r, "id")); err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})

	pr.Post("/v1/comments/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		liked, err := d.CommentSvc.ToggleLike(r.Context(), au.UID, chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapCommentError)
			return
		}
		WriteJSON(w, 200, map[string]any{"liked": liked})
	})

	// ===== Content feedback =====
	pr.Post("/v1/feedback", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in feedback.SubmitContentInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.FeedbackSvc.Submit(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Get("/v1/feedback/mine", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		out, err := d.FeedbackSvc.Mine(r.Context(), au.UID, ref)
		if feedback.IsErrNotFound(err) {
			WriteJSON(w, 200, map[string]any{"feedback": nil})
			return
		}
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, map[string]any{"feedback": out})
	})

	pr.Delete("/v1/feedback", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		if err := d.FeedbackSvc.Delete(r.Context(), au.UID, ref); err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})

	// ===== Support tickets =====
	pr.Post("/v1/support/tickets", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in support.CreateTicketInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.SupportSvc.Create(r.Context(), requester(au), in)
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 201, out)
	})

	pr.Get("/v1/support/tickets", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		out, err := d.SupportSvc.ListMine(r.Context(), au.UID)
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 200, map[string]any{"tickets": out})
	})

	pr.Get("/v1/support/tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		out, err := d.SupportSvc.Get(r.Context(), requester(au), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Post("/v1/support/tickets/{id}/responses", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in support.AddResponseInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.SupportSvc.AddResponse(r.Context(), requester(au), chi.URLParam(r, "id"), in)
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Notifications =====
	pr.Get("/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		unreadOnly := r.URL.Query().Get("unreadOnly") == "true"
		out, err := d.NotificationsSvc.GetNotifications(r.Context(), au.UID, unreadOnly, queryInt(r, "limit", 50))
		if err != nil {
			failErr(w, r, err, mapNotificationsError)
			return
		}
		WriteJSON(w, 200, out)
	})

	pr.Post("/v1/notifications/read", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in notifications.MarkReadInput
		if !decode(w, r, &in) {
			return
		}
		n, err := d.NotificationsSvc.MarkRead(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapNotificationsError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true, "updated": n})
	})

	pr.Delete("/v1/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		if err := d.NotificationsSvc.DeleteNotification(r.Context(), au.UID, chi.URLParam(r, "id")); err != nil {
			failErr(w, r, err, mapNotificationsError)
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true})
	})
}

func registerAdminEngagement(ar chi.Router, d RouterDeps) {
	ar.Get("/feedback/content", func(w http.ResponseWriter, r *http.Request) {
		ref, ok := contentRef(r)
		if !ok {
			Fail(w, 400, missingRef)
			return
		}
		out, err := d.FeedbackSvc.ListForContent(r.Context(), ref)
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, map[string]any{"feedback": out, "summary": feedback.Summarize(ref, out)})
	})

	ar.Get("/feedback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out, err := d.FeedbackSvc.ListSite(r.Context(), feedback.SiteFilter{
			Status: q.Get("status"),
			Type:   q.Get("type"),
			Limit:  queryInt(r, "limit", 0),
		})
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, map[string]any{"feedback": out})
	})

	ar.Post("/feedback/{id}/review", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		out, err := d.FeedbackSvc.MarkReviewed(r.Context(), au.UID, chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapFeedbackError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Get("/support/tickets", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.SupportSvc.ListAll(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 200, map[string]any{"tickets": out})
	})

	ar.Patch("/support/tickets/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var in support.UpdateStatusInput
		if !decode(w, r, &in) {
			return
		}
		out, err := d.SupportSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			failErr(w, r, err, mapSupportError)
			return
		}
		WriteJSON(w, 200, out)
	})

	ar.Post("/notifications", func(w http.ResponseWriter, r *http.Request) {
		au, _ := middleware.GetAuthUser(r.Context())
		var in notifications.CreateNotificationInput
		if !decode(w, r, &in) {
			return
		}
		id, err := d.NotificationsSvc.CreateNotification(r.Context(), au.UID, in)
		if err != nil {
			failErr(w, r, err, mapNotificationsError)
			return
		}
		WriteJSON(w, 201, map[string]any{"id": id})
	})
}

func commentAuthor(au *middleware.AuthUser) comment.Author {
	return comment.Author{UID: au.UID, Name: au.Name, PhotoURL: au.Picture, Admin: au.Admin}
}

func requester(au *middleware.AuthUser) support.Requester {
	return support.Requester{UID: au.UID, Email: au.Email, Name: au.Name, Admin: au.Admin}
}
