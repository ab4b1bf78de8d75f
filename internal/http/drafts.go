package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brainhints/backend/internal/autosave"
	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/video"
)

type articleDraft struct {
	AutoSave *bool `json:"autoSave,omitempty"`
	article.Snapshot
}

type videoDraft struct {
	AutoSave *bool `json:"autoSave,omitempty"`
	video.Snapshot
}

func draftKey(kind, id string) string { return autosave.Key(kind, id) }

// RegisterDraftSavers wires the editors' auto-save snapshots to their services.
func RegisterDraftSavers(m *autosave.Manager, articles *article.Service, videos *video.Service) {
	if articles != nil {
		m.Register("article", func(ctx context.Context, d autosave.Draft) error {
			snap, ok := d.Data.(article.Snapshot)
			if !ok {
				return fmt.Errorf("unexpected article draft %T", d.Data)
			}
			return articles.SaveDraft(ctx, d.ID, snap)
		})
	}
	if videos != nil {
		m.Register("video", func(ctx context.Context, d autosave.Draft) error {
			snap, ok := d.Data.(video.Snapshot)
			if !ok {
				return fmt.Errorf("unexpected video draft %T", d.Data)
			}
			return videos.SaveDraft(ctx, d.ID, snap)
		})
	}
}

func registerDrafts(ar chi.Router, d RouterDeps) {
	if d.Autosave == nil {
		return
	}

	// Touch: the editor reports a change; the save happens once it has been quiet for the delay.
	ar.Post("/drafts/{kind}/{id}", func(w http.ResponseWriter, r *http.Request) {
		kind, id := chi.URLParam(r, "kind"), chi.URLParam(r, "id")

		var draft autosave.Draft
		switch kind {
		case "article":
			var in articleDraft
			if !decode(w, r, &in) {
				return
			}
			in.Snapshot.Trim()
			draft = autosave.Draft{Kind: kind, ID: id, Title: in.Title, Disabled: off(in.AutoSave), Data: in.Snapshot}
		case "video":
			var in videoDraft
			if !decode(w, r, &in) {
				return
			}
			in.Snapshot.Trim()
			draft = autosave.Draft{Kind: kind, ID: id, Title: in.Title, Disabled: off(in.AutoSave), Data: in.Snapshot}
		default:
			Fail(w, 404, "unknown draft kind: "+kind)
			return
		}

		if err := d.Autosave.Touch(draft); err != nil {
			failErr(w, r, err, mapDraftError)
			return
		}
		WriteJSON(w, 202, map[string]any{"pending": true, "key": draft.Key()})
	})

	ar.Post("/drafts/{kind}/{id}/flush", func(w http.ResponseWriter, r *http.Request) {
		key := draftKey(chi.URLParam(r, "kind"), chi.URLParam(r, "id"))
		saved, err := d.Autosave.Flush(r.Context(), key)
		if err != nil {
			failErr(w, r, err, mapDraftError)
			return
		}
		WriteJSON(w, 200, map[string]any{"saved": saved})
	})

	ar.Delete("/drafts/{kind}/{id}", func(w http.ResponseWriter, r *http.Request) {
		key := draftKey(chi.URLParam(r, "kind"), chi.URLParam(r, "id"))
		WriteJSON(w, 200, map[string]any{"cancelled": d.Autosave.Cancel(key)})
	})
}

// off reports an explicit autoSave:false; omitted means enabled.
func off(flag *bool) bool {
	return flag != nil && !*flag
}
