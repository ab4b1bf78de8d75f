package comment

import "sort"

// BuildThreads assembles a flat comment list into one-level threads.
// Top-level comments come newest first and replies oldest first. A deleted comment stays as a
// blanked placeholder while it still has visible replies; otherwise it is dropped. Replies whose
// parent is missing are promoted to top level.
func BuildThreads(comments []Comment) []Thread {
	byID := make(map[string]bool, len(comments))
	for _, c := range comments {
		if c.ParentID == "" {
			byID[c.ID] = true
		}
	}

	roots := []Comment{}
	replies := map[string][]Comment{}
	for _, c := range comments {
		if c.ParentID != "" && byID[c.ParentID] {
			if !c.Deleted {
				replies[c.ParentID] = append(replies[c.ParentID], c)
			}
			continue
		}
		roots = append(roots, c)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	out := make([]Thread, 0, len(roots))
	for _, root := range roots {
		kids := replies[root.ID]
		if root.Deleted && len(kids) == 0 {
			continue
		}
		sort.SliceStable(kids, func(i, j int) bool {
			return kids[i].CreatedAt.Before(kids[j].CreatedAt)
		})
		t := newThread(root)
		t.Replies = make([]Thread, 0, len(kids))
		for _, k := range kids {
			t.Replies = append(t.Replies, newThread(k))
		}
		out = append(out, t)
	}
	return out
}

func newThread(c Comment) Thread {
	if c.Deleted {
		c.Message = ""
		c.AuthorName = ""
		c.AuthorPhotoURL = ""
		c.Likes = []string{}
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return Thread{Comment: c, LikeCount: len(c.Likes), Replies: []Thread{}}
}
