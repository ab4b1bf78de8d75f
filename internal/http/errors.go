package http

import (
	"brainhints/backend/internal/autosave"
	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/comment"
	"brainhints/backend/internal/domain/faq"
	"brainhints/backend/internal/domain/feedback"
	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/domain/search"
	"brainhints/backend/internal/domain/support"
	"brainhints/backend/internal/domain/user"
	"brainhints/backend/internal/domain/video"
)

func mapArticleError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case article.IsErrUnauthorized(err):
		return 403, err.Error()
	case article.IsErrNotFound(err):
		return 404, err.Error()
	case article.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapVideoError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case video.IsErrUnauthorized(err):
		return 403, err.Error()
	case video.IsErrNotFound(err):
		return 404, err.Error()
	case video.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapFAQError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case faq.IsErrUnauthorized(err):
		return 403, err.Error()
	case faq.IsErrNotFound(err):
		return 404, err.Error()
	case faq.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapCommentError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case comment.IsErrUnauthorized(err):
		return 403, err.Error()
	case comment.IsErrNotFound(err):
		return 404, err.Error()
	case comment.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapFeedbackError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case feedback.IsErrUnauthorized(err):
		return 403, err.Error()
	case feedback.IsErrNotFound(err):
		return 404, err.Error()
	case feedback.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapSupportError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case support.IsErrUnauthorized(err):
		return 403, err.Error()
	case support.IsErrNotFound(err):
		return 404, err.Error()
	case support.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNotificationsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case notifications.IsErrNotFound(err):
		return 404, err.Error()
	case notifications.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapUserError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case user.IsErrUnauthorized(err):
		return 401, err.Error()
	case user.IsErrNotFound(err):
		return 404, err.Error()
	case user.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapSearchError(err error) (int, string) {
	if search.IsErrBadRequest(err) {
		return 400, err.Error()
	}
	return 500, "search failed"
}

// mapDraftError covers auto-save manager errors plus whatever the savers return on flush.
func mapDraftError(err error) (int, string) {
	switch {
	case autosave.IsErrUnknownKind(err):
		return 404, err.Error()
	case autosave.IsErrClosed(err):
		return 503, err.Error()
	case article.IsErrNotFound(err), video.IsErrNotFound(err):
		return 404, err.Error()
	case article.IsErrBadRequest(err), video.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}
